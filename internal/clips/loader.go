package clips

import (
	"fmt"
	"image"
	"image/png"
	"os"

	// Source-image formats accepted by the sequence.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/keagan/slidecast/internal/canvas"
	"github.com/keagan/slidecast/pkg/util"
	"github.com/rs/zerolog"
)

// Load decodes a still image into an RGBA frame. Sources in non-native
// color models (paletted, YCbCr, CMYK) are normalized through a temporary
// PNG copy in tempDir; the copy is removed before Load returns on every
// path.
func Load(logger zerolog.Logger, path, tempDir string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		return canvas.ToRGBA(img), nil
	}

	logger.Debug().
		Str("path", path).
		Str("format", format).
		Msg("normalizing source through temporary copy")

	normalized, err := normalizeViaTemp(img, tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize image %s: %w", path, err)
	}
	return normalized, nil
}

// normalizeViaTemp round-trips the image through a PNG file so downstream
// stages always start from the same 8-bit RGBA baseline.
func normalizeViaTemp(img image.Image, tempDir string) (*image.RGBA, error) {
	f, err := util.TempFile(tempDir, "slidecast-norm-", ".png")
	if err != nil {
		return nil, err
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(f, canvas.ToRGBA(img)); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	rf, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer rf.Close()

	decoded, err := png.Decode(rf)
	if err != nil {
		return nil, err
	}
	return canvas.ToRGBA(decoded), nil
}
