package canvas

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawcanvas/fileop"
)

// swapBack reinterprets RGBA bytes as BGRA.
func swapBack(rgba []byte) []byte {
	out := make([]byte, len(rgba))
	for i := 0; i < len(rgba); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = rgba[i+2], rgba[i+1], rgba[i], rgba[i+3]
	}
	return out
}

func scene(t *testing.T) *Canvas {
	t.Helper()
	c, err := New(9, 7)
	require.NoError(t, err)
	c.Fill(Background)
	c.DrawRect(Rect{X: 1, Y: 1, W: 3, H: 2}, Foreground)
	c.DrawRect(Rect{X: 6, Y: 4, W: 10, H: 10}, Color{R: 0x10, G: 0x80, B: 0xF0})
	c.DrawRect(Rect{X: -1, Y: 5, W: 2, H: 1}, Color{R: 0xAA})
	return c
}

func TestWriteRGBARoundTrip(t *testing.T) {
	c := scene(t)

	var buf bytes.Buffer
	n, err := c.WriteRGBA(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9*7*4), n)
	assert.Equal(t, c.Pix(), swapBack(buf.Bytes()))
	assert.Equal(t, buf.Bytes(), c.RGBA().Pix)

	// first pixel is the background, in R, G, B, A order
	assert.Equal(t, []byte{0x3A, 0x22, 0xBD, 0xFF}, buf.Bytes()[:4])
}

type shortWriter struct{ limit int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return w.limit, errors.New("disk full")
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestWriteRGBAError(t *testing.T) {
	c := scene(t)
	n, err := c.WriteRGBA(&shortWriter{limit: 40})
	assert.Error(t, err)
	assert.Equal(t, int64(40), n)
}

func TestDumpRGBA(t *testing.T) {
	c := scene(t)
	path := filepath.Join(t.TempDir(), "canvas-rgba.data")

	require.NoError(t, c.DumpRGBA(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 9*7*4)
	assert.Equal(t, c.Pix(), swapBack(data))
}

func TestDumpRGBAOverwrites(t *testing.T) {
	c := scene(t)
	path := filepath.Join(t.TempDir(), "out.data")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{1}, 10000), 0o644))

	require.NoError(t, c.DumpRGBA(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(9*7*4), info.Size())
}

func TestDumpRGBAFailure(t *testing.T) {
	c := scene(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "out.data")

	err := c.DumpRGBA(path)
	assert.ErrorIs(t, err, fileop.ErrIO)
	assert.NoFileExists(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDumpReleased(t *testing.T) {
	c := scene(t)
	c.Release()

	path := filepath.Join(t.TempDir(), "out.data")
	assert.ErrorIs(t, c.DumpRGBA(path), ErrReleased)
	assert.NoFileExists(t, path)

	_, err := c.WriteRGBA(&bytes.Buffer{})
	assert.ErrorIs(t, err, ErrReleased)
}
