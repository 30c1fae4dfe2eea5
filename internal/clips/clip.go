// Package clips defines the time-indexed frame producer that one image's
// on-screen segment compiles into, plus the loader that turns a source file
// into its first frame.
package clips

import (
	"image"
	"sync"

	"github.com/keagan/slidecast/internal/canvas"
	"github.com/rs/zerolog"
)

// FrameFunc produces the frame visible at time t (seconds from clip start).
type FrameFunc func(t float64) *image.RGBA

// Clip is a fixed-dimension, fixed-duration frame producer. Effects,
// overlays and transitions layer on by deriving a clip with a wrapped
// FrameFunc; the derivation chain shares one underlying resource release.
type Clip struct {
	width    int
	height   int
	duration float64
	frame    FrameFunc

	parent  *Clip
	release sync.Once
	closed  bool
}

// New creates a clip of exactly w x h pixels lasting duration seconds.
func New(w, h int, duration float64, frame FrameFunc) *Clip {
	return &Clip{width: w, height: h, duration: duration, frame: frame}
}

// Derive returns a clip with the same dimensions and duration but a new
// frame producer. Closing the derived clip closes the whole chain.
func (c *Clip) Derive(frame FrameFunc) *Clip {
	return &Clip{
		width:    c.width,
		height:   c.height,
		duration: c.duration,
		frame:    frame,
		parent:   c,
	}
}

func (c *Clip) Width() int        { return c.width }
func (c *Clip) Height() int       { return c.height }
func (c *Clip) Duration() float64 { return c.duration }

// Frame returns the raw frame producer, for wrapping by a later stage.
func (c *Clip) Frame() FrameFunc { return c.frame }

// FrameAt samples the clip at t, clamping t into [0, duration).
func (c *Clip) FrameAt(t float64) *image.RGBA {
	if t < 0 {
		t = 0
	}
	if t >= c.duration {
		t = c.duration
	}
	if c.closed {
		return canvas.NewCanvas(c.width, c.height)
	}
	return c.frame(t)
}

// Close releases the clip's resources. Safe to call more than once; only
// the first call takes effect, and it propagates down the derivation chain.
func (c *Clip) Close() {
	c.release.Do(func() {
		c.closed = true
		c.frame = nil
		if c.parent != nil {
			c.parent.Close()
		}
	})
}

// Closed reports whether Close has run.
func (c *Clip) Closed() bool { return c.closed }

// Guard wraps a stage's frame producer with a recover that falls back to
// the frame from before that stage. Cosmetic stages are written as if they
// cannot fail; this is the one place the degrade-to-identity rule lives.
func Guard(logger zerolog.Logger, stage string, wrapped, fallback FrameFunc) FrameFunc {
	return func(t float64) (frame *image.RGBA) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn().
					Str("stage", stage).
					Float64("t", t).
					Interface("cause", r).
					Msg("stage failed, rendering frame without it")
				frame = fallback(t)
			}
		}()
		return wrapped(t)
	}
}
