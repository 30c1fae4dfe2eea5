package clips

import (
	"image"
	"image/color"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	f := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetRGBA(x, y, c)
		}
	}
	return f
}

func TestClipAccessors(t *testing.T) {
	frame := solidFrame(32, 24, color.RGBA{255, 0, 0, 255})
	c := New(32, 24, 2.5, func(float64) *image.RGBA { return frame })

	assert.Equal(t, 32, c.Width())
	assert.Equal(t, 24, c.Height())
	assert.Equal(t, 2.5, c.Duration())
	assert.Same(t, frame, c.FrameAt(1))
}

func TestFrameAtClampsTime(t *testing.T) {
	var sampled []float64
	c := New(4, 4, 3, func(tm float64) *image.RGBA {
		sampled = append(sampled, tm)
		return solidFrame(4, 4, color.RGBA{})
	})

	c.FrameAt(-5)
	c.FrameAt(1.5)
	c.FrameAt(99)

	require.Len(t, sampled, 3)
	assert.Equal(t, 0.0, sampled[0])
	assert.Equal(t, 1.5, sampled[1])
	assert.Equal(t, 3.0, sampled[2])
}

func TestDeriveKeepsShape(t *testing.T) {
	base := New(16, 9, 2, func(float64) *image.RGBA {
		return solidFrame(16, 9, color.RGBA{0, 255, 0, 255})
	})
	derived := base.Derive(func(tm float64) *image.RGBA {
		return solidFrame(16, 9, color.RGBA{0, 0, 255, 255})
	})

	assert.Equal(t, base.Width(), derived.Width())
	assert.Equal(t, base.Height(), derived.Height())
	assert.Equal(t, base.Duration(), derived.Duration())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, derived.FrameAt(0).RGBAAt(0, 0))
}

func TestClosePropagatesToParent(t *testing.T) {
	base := New(4, 4, 1, func(float64) *image.RGBA { return solidFrame(4, 4, color.RGBA{}) })
	derived := base.Derive(base.Frame())
	again := derived.Derive(derived.Frame())

	again.Close()

	assert.True(t, again.Closed())
	assert.True(t, derived.Closed())
	assert.True(t, base.Closed())
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(4, 4, 1, func(float64) *image.RGBA { return solidFrame(4, 4, color.RGBA{}) })
	c.Close()
	assert.NotPanics(t, c.Close)
}

func TestClosedClipRendersBlack(t *testing.T) {
	c := New(4, 4, 1, func(float64) *image.RGBA {
		return solidFrame(4, 4, color.RGBA{255, 255, 255, 255})
	})
	c.Close()

	frame := c.FrameAt(0.5)
	require.Equal(t, 4, frame.Bounds().Dx())
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, frame.RGBAAt(1, 1))
}

func TestGuardFallsBackOnPanic(t *testing.T) {
	fallback := solidFrame(4, 4, color.RGBA{255, 0, 0, 255})

	guarded := Guard(zerolog.Nop(), "test",
		func(float64) *image.RGBA { panic("boom") },
		func(float64) *image.RGBA { return fallback },
	)

	var got *image.RGBA
	assert.NotPanics(t, func() { got = guarded(1) })
	assert.Same(t, fallback, got)
}

func TestGuardPassesThroughOnSuccess(t *testing.T) {
	frame := solidFrame(4, 4, color.RGBA{0, 255, 0, 255})
	guarded := Guard(zerolog.Nop(), "test",
		func(float64) *image.RGBA { return frame },
		func(float64) *image.RGBA { t.Fatal("fallback must not run"); return nil },
	)
	assert.Same(t, frame, guarded(0))
}
