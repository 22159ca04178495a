package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReadImageFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Photo.JPG")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-ish"), 0o600))

	data, mediaType, err := ReadImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-ish"), data)
	assert.Equal(t, "image/jpeg", mediaType)

	_, _, err = ReadImageFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestDeclaredMediaType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/png", DeclaredMediaType("a/b/c.png"))
	assert.Equal(t, "image/jpeg", DeclaredMediaType("c.jpeg"))
	assert.Equal(t, "image/gif", DeclaredMediaType("c.gif"))
	assert.Equal(t, "", DeclaredMediaType("noext"))
}

func TestDataURIRoundTrip(t *testing.T) {
	t.Parallel()

	uri := PNGDataURI("aGVsbG8=")
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", uri)

	data, mediaType, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, []byte("hello"), data)
}

func TestDecodeDataURIRejects(t *testing.T) {
	t.Parallel()

	for _, uri := range []string{"", "http://x", "data:image/png,plain", "data:image/png;base64"} {
		_, _, err := DecodeDataURI(uri)
		assert.ErrorIs(t, err, ErrNotDataURI, uri)
	}

	_, _, err := DecodeDataURI("data:image/png;base64,!!!")
	assert.Error(t, err)
}

func TestTrace(t *testing.T) {
	t.Parallel()

	done := Trace(zap.NewNop(), "noop")
	done()
}
