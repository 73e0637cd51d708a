package imagefile

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pixelPNG, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("device unplugged") }

func TestDataURL(t *testing.T) {
	t.Run("png -> image/png data url", func(t *testing.T) {
		got, err := DataURL(bytes.NewReader(pixelPNG))
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pixelPNG), got)
	})

	t.Run("text -> media type without params", func(t *testing.T) {
		got, err := DataURL(strings.NewReader("hello"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "data:text/plain;base64,"), got)
	})

	t.Run("read failure -> ErrReadFailed", func(t *testing.T) {
		_, err := DataURL(brokenReader{})
		assert.ErrorIs(t, err, ErrReadFailed)
	})
}

func TestReadFileAndCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel.png")
	require.NoError(t, os.WriteFile(path, pixelPNG, 0o600))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"))

	res := <-Capture(path)
	require.NoError(t, res.Err)
	assert.Equal(t, got, res.DataURL)

	t.Run("missing file -> ErrReadFailed", func(t *testing.T) {
		res := <-Capture(filepath.Join(t.TempDir(), "gone.png"))
		assert.ErrorIs(t, res.Err, ErrReadFailed)
		assert.Empty(t, res.DataURL)
	})
}
