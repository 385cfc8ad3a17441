package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "video", "codec_name": "png"},
			{"codec_type": "audio", "codec_name": "opus", "sample_rate": "48000"}
		],
		"format": {"duration": "12.480000", "size": "20480", "format_name": "matroska,webm"}
	}`

	info, err := parseProbeOutput(out, 1)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, info.Duration, 1e-9)
	assert.Equal(t, "opus", info.Codec)
	assert.Equal(t, 48000, info.SampleRate)
	assert.Equal(t, int64(20480), info.Size)
	assert.Equal(t, "matroska", info.Format)
}

func TestParseProbeOutputMissingFields(t *testing.T) {
	info, err := parseProbeOutput(`{"streams": [], "format": {}}`, 99)
	require.NoError(t, err)
	assert.Zero(t, info.Duration)
	assert.Equal(t, int64(99), info.Size)
	assert.Equal(t, "unknown", info.Format)

	_, err = parseProbeOutput("not json", 0)
	assert.Error(t, err)
}
