package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAudioExtension(t *testing.T) {
	assert.True(t, IsAudioExtension("clip.MP3"))
	assert.True(t, IsAudioExtension("voice.webm"))
	assert.False(t, IsAudioExtension("notes.txt"))
	assert.False(t, IsAudioExtension("noext"))
}

func TestValidateMimeType(t *testing.T) {
	mime, err := ValidateMimeType(bytes.NewReader([]byte("ID3\x03\x00\x00\x00\x00")), AllowedAudioMimeTypes)
	assert.NoError(t, err)
	assert.Equal(t, "audio/mpeg", mime)

	_, err = ValidateMimeType(bytes.NewReader([]byte("%PDF-1.4 fake")), AllowedAudioMimeTypes)
	assert.ErrorIs(t, err, ErrUnsupportedAudio)
}

func TestAudioContentType(t *testing.T) {
	assert.Equal(t, "audio/mp4", AudioContentType("a.m4a"))
	assert.Equal(t, "application/octet-stream", AudioContentType("a.bin"))
}
