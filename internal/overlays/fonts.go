package overlays

import (
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontSet resolves a usable font face from a prioritized candidate list,
// falling back to the built-in unstyled face when nothing resolves. A
// missing font never fails an overlay.
type FontSet struct {
	logger     zerolog.Logger
	candidates []string
	size       float64

	once sync.Once
	face font.Face
}

// NewFontSet prepares lazy font resolution over the candidate paths.
func NewFontSet(logger zerolog.Logger, candidates []string, size float64) *FontSet {
	if size <= 0 {
		size = 48
	}
	return &FontSet{
		logger:     logger.With().Str("component", "fonts").Logger(),
		candidates: candidates,
		size:       size,
	}
}

// Face returns the resolved face, loading it on first use.
func (fs *FontSet) Face() font.Face {
	fs.once.Do(func() {
		for _, path := range fs.candidates {
			face, err := loadFace(path, fs.size)
			if err != nil {
				fs.logger.Debug().Str("path", path).Err(err).Msg("font candidate unusable")
				continue
			}
			fs.logger.Debug().Str("path", path).Msg("font resolved")
			fs.face = face
			return
		}
		fs.logger.Warn().Msg("no font candidate resolved, using built-in face")
		fs.face = basicfont.Face7x13
	})
	return fs.face
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Measure returns the pixel width and height of the rendered text.
func (fs *FontSet) Measure(text string) (int, int) {
	face := fs.Face()
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	return w, h
}

// DrawText renders text with its baseline at (x, y).
func (fs *FontSet) DrawText(dst *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: fs.Face(),
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
