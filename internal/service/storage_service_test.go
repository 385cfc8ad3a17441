package service

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"smartenglish_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalProvider(t *testing.T) *LocalStorageProvider {
	t.Helper()
	return &LocalStorageProvider{
		Root:       t.TempDir(),
		SigningKey: []byte("signing-key"),
		BaseURL:    "/api/files/",
	}
}

func TestLocalSignedURLRoundTrip(t *testing.T) {
	p := newLocalProvider(t)
	ctx := context.Background()
	key := "recordings/1/clip.mp3"

	require.NoError(t, p.Upload(ctx, key, strings.NewReader("data"), 4, "audio/mpeg"))

	raw, err := p.SignedURL(ctx, key, time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/api/files/"+key, u.Path)

	q := u.Query()
	assert.NoError(t, p.Verify(key, q.Get("expires"), q.Get("sig")))
	assert.ErrorIs(t, p.Verify("recordings/1/other.mp3", q.Get("expires"), q.Get("sig")), util.ErrInvalidSignature)
	assert.ErrorIs(t, p.Verify(key, "abc", q.Get("sig")), util.ErrInvalidSignature)
}

func TestLocalSignedURLExpired(t *testing.T) {
	p := newLocalProvider(t)
	ctx := context.Background()
	key := "recordings/2/old.mp3"
	require.NoError(t, p.Upload(ctx, key, strings.NewReader("x"), 1, "audio/mpeg"))

	raw, err := p.SignedURL(ctx, key, -time.Minute)
	require.NoError(t, err)
	u, _ := url.Parse(raw)
	assert.ErrorIs(t, p.Verify(key, u.Query().Get("expires"), u.Query().Get("sig")), util.ErrInvalidSignature)
}

func TestLocalSignedURLMissingObject(t *testing.T) {
	p := newLocalProvider(t)
	_, err := p.SignedURL(context.Background(), "recordings/9/missing.mp3", time.Minute)
	assert.Error(t, err)
}

func TestLocalPathStaysInRoot(t *testing.T) {
	p := newLocalProvider(t)
	path := p.Path("../../etc/passwd")
	assert.True(t, strings.HasPrefix(path, p.Root+string(filepath.Separator)))
}

func TestLocalDeleteMissingIsNoop(t *testing.T) {
	p := newLocalProvider(t)
	assert.NoError(t, p.Delete(context.Background(), "nope.mp3"))

	key := "a/b.mp3"
	require.NoError(t, p.Upload(context.Background(), key, strings.NewReader("x"), 1, "audio/mpeg"))
	require.NoError(t, p.Delete(context.Background(), key))
	_, err := os.Stat(p.Path(key))
	assert.True(t, os.IsNotExist(err))
}

func TestStorageServiceExpiryReload(t *testing.T) {
	s := NewStorageServiceWithProvider(newLocalProvider(t), 15*time.Minute)
	assert.Equal(t, 15*time.Minute, s.Expiry())
	s.SetExpiry(time.Hour)
	assert.Equal(t, time.Hour, s.Expiry())
	assert.NotNil(t, s.Local())
}
