// Package effects maps effect names to whole-duration clip transformations.
// Each effect is a closed-form function of t over [0, duration); no effect
// reads another clip's state. Unknown names are identity, never errors.
package effects

import (
	"image"
	"math"
	"sort"

	"github.com/keagan/slidecast/internal/canvas"
	"github.com/keagan/slidecast/internal/clips"
	"github.com/rs/zerolog"
)

// Handler derives a transformed clip from the input clip.
type Handler func(c *clips.Clip) *clips.Clip

// Registry dispatches effect names to handlers.
type Registry struct {
	logger   zerolog.Logger
	handlers map[string]Handler
}

// NewRegistry builds a registry with every built-in effect registered.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		logger:   logger.With().Str("component", "effects").Logger(),
		handlers: make(map[string]Handler),
	}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a named effect.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Names returns the registered effect names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply dispatches by name. "None" and unknown names return the clip
// unchanged; a handler that fails per-frame degrades to the untouched frame
// via the guard, so an effect can never abort a render.
func (r *Registry) Apply(name string, c *clips.Clip) *clips.Clip {
	if name == "" || name == "None" {
		return c
	}
	h, ok := r.handlers[name]
	if !ok {
		r.logger.Warn().Str("effect", name).Msg("unknown effect, skipping")
		return c
	}

	prev := c.Frame()
	derived := h(c)
	return derived.Derive(clips.Guard(r.logger, "effect:"+name, derived.Frame(), prev))
}

// perFrame lifts a (frame, t) transform into a clip derivation.
func perFrame(c *clips.Clip, fn func(frame *image.RGBA, t float64) *image.RGBA) *clips.Clip {
	prev := c.Frame()
	return c.Derive(func(t float64) *image.RGBA {
		return fn(prev(t), t)
	})
}

func (r *Registry) registerBuiltins() {
	r.Register("Zoom In", func(c *clips.Clip) *clips.Clip {
		return perFrame(c, func(f *image.RGBA, t float64) *image.RGBA {
			return canvas.ScaleFrame(f, 1+0.1*t)
		})
	})
	r.Register("Zoom Out", func(c *clips.Clip) *clips.Clip {
		return perFrame(c, func(f *image.RGBA, t float64) *image.RGBA {
			return canvas.ScaleFrame(f, 1.1-0.1*t)
		})
	})

	// Pans scroll the content at constant velocity over the full frame
	// extent across the clip's duration.
	r.Register("Pan Left to Right", pan(1, 0))
	r.Register("Pan Right to Left", pan(-1, 0))
	r.Register("Pan Top to Bottom", pan(0, 1))
	r.Register("Pan Bottom to Top", pan(0, -1))

	r.Register("Brightness Pulse", func(c *clips.Clip) *clips.Clip {
		return perFrame(c, func(f *image.RGBA, t float64) *image.RGBA {
			return canvas.Brightness(f, 1+0.3*math.Sin(2*math.Pi*t))
		})
	})

	r.Register("Rotate Clockwise", rotate(15))
	r.Register("Rotate Counter-Clockwise", rotate(-15))

	// Stateless filters: identical for every frame regardless of t.
	r.Register("Sepia", stateless(canvas.Sepia))
	r.Register("Grayscale", stateless(canvas.Grayscale))
	r.Register("Blur", stateless(func(f *image.RGBA) *image.RGBA {
		return canvas.Blur(f, 2)
	}))
	r.Register("Mirror X", stateless(canvas.MirrorX))
	r.Register("Mirror Y", stateless(canvas.MirrorY))
	r.Register("Color Boost", stateless(func(f *image.RGBA) *image.RGBA {
		return canvas.Saturate(f, 1.5)
	}))
	r.Register("Vignette", stateless(func(f *image.RGBA) *image.RGBA {
		return canvas.Vignette(f, 0.7, 1.5)
	}))
}

func pan(dx, dy int) Handler {
	return func(c *clips.Clip) *clips.Clip {
		w, h := c.Width(), c.Height()
		d := c.Duration()
		return perFrame(c, func(f *image.RGBA, t float64) *image.RGBA {
			progress := 0.0
			if d > 0 {
				progress = t / d
			}
			return canvas.Translate(f,
				int(math.Round(progress*float64(dx*w))),
				int(math.Round(progress*float64(dy*h))))
		})
	}
}

func rotate(degPerSecond float64) Handler {
	return func(c *clips.Clip) *clips.Clip {
		return perFrame(c, func(f *image.RGBA, t float64) *image.RGBA {
			return canvas.Rotate(f, degPerSecond*t)
		})
	}
}

func stateless(fn func(*image.RGBA) *image.RGBA) Handler {
	return func(c *clips.Clip) *clips.Clip {
		return perFrame(c, func(f *image.RGBA, _ float64) *image.RGBA {
			return fn(f)
		})
	}
}
