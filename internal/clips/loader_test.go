package clips

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadRGBAImage(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 10, 8))
	src.SetRGBA(2, 3, color.RGBA{200, 40, 10, 255})
	path := writePNG(t, dir, src)

	out, err := Load(zerolog.Nop(), path, dir)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Bounds().Dx())
	assert.Equal(t, 8, out.Bounds().Dy())
	assert.Equal(t, color.RGBA{200, 40, 10, 255}, out.RGBAAt(2, 3))
}

func TestLoadNormalizesPaletted(t *testing.T) {
	dir := t.TempDir()
	tempDir := t.TempDir()

	pal := image.NewPaletted(image.Rect(0, 0, 6, 6), color.Palette{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{10, 220, 30, 255},
	})
	pal.SetColorIndex(1, 1, 1)

	path := filepath.Join(dir, "src.gif")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, gif.Encode(f, pal, nil))
	require.NoError(t, f.Close())

	out, err := Load(zerolog.Nop(), path, tempDir)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{10, 220, 30, 255}, out.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(0, 0))

	// the normalization copy must not survive the call
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(zerolog.Nop(), filepath.Join(t.TempDir(), "nope.png"), "")
	assert.Error(t, err)
}

func TestLoadRejectsCorruptData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("this is not an image"), 0644))

	_, err := Load(zerolog.Nop(), path, dir)
	assert.ErrorContains(t, err, "decode")
}
