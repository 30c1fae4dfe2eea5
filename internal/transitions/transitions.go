// Package transitions maps transition names to time-windowed clip
// transformations anchored at the start or end edge of a clip. Outside the
// window the clip renders unmodified; inside it a clamped progress value
// drives opacity, translation, scale, rotation, or a wipe mask.
package transitions

import (
	"image"
	"sort"

	"github.com/keagan/slidecast/internal/canvas"
	"github.com/keagan/slidecast/internal/clips"
	"github.com/keagan/slidecast/pkg/util"
	"github.com/rs/zerolog"
)

// Edge selects which end of the clip the transition window is anchored to.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Handler applies a transition over a window of the given clip.
type Handler func(c *clips.Clip, window float64, edge Edge) *clips.Clip

// frameTransform renders the frame at progress p. p is 1 outside the
// window, approaches 0 at the outer boundary of the clip.
type frameTransform func(frame *image.RGBA, p float64, w, h int) *image.RGBA

// Registry dispatches transition names to handlers.
type Registry struct {
	logger zerolog.Logger
	start  map[string]frameTransform
	end    map[string]frameTransform
}

// NewRegistry builds a registry with every built-in transition registered.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		logger: logger.With().Str("component", "transitions").Logger(),
		start:  make(map[string]frameTransform),
		end:    make(map[string]frameTransform),
	}
	r.registerBuiltins()
	return r
}

// StartNames returns the registered start-edge transition names.
func (r *Registry) StartNames() []string { return sortedKeys(r.start) }

// EndNames returns the registered end-edge transition names.
func (r *Registry) EndNames() []string { return sortedKeys(r.end) }

func sortedKeys(m map[string]frameTransform) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply dispatches by name. "None" and unknown names are identity. The
// window is clamped to the clip duration so progress can never invert or
// divide by zero; per-frame failures degrade to the pre-transition frame.
func (r *Registry) Apply(name string, c *clips.Clip, window float64, edge Edge) *clips.Clip {
	if name == "" || name == "None" {
		return c
	}

	table := r.start
	if edge == EdgeEnd {
		table = r.end
	}
	tf, ok := table[name]
	if !ok {
		r.logger.Warn().Str("transition", name).Msg("unknown transition, skipping")
		return c
	}

	duration := c.Duration()
	if window > duration {
		window = duration
	}
	if window <= 0 {
		return c
	}

	prev := c.Frame()
	w, h := c.Width(), c.Height()
	wrapped := func(t float64) *image.RGBA {
		p := progress(t, duration, window, edge)
		if p >= 1 {
			return prev(t)
		}
		return tf(prev(t), p, w, h)
	}
	return c.Derive(clips.Guard(r.logger, "transition:"+name, wrapped, prev))
}

// progress maps t to [0,1]: 0 at the clip's outer boundary, 1 once the
// window has fully played out. Clamped on both sides.
func progress(t, duration, window float64, edge Edge) float64 {
	if edge == EdgeStart {
		return util.Clamp01(t / window)
	}
	return util.Clamp01((duration - t) / window)
}

func (r *Registry) registerBuiltins() {
	r.start["Fade In"] = fade
	r.end["Fade Out"] = fade

	r.start["Slide In Left"] = slide(-1, 0)
	r.start["Slide In Right"] = slide(1, 0)
	r.start["Slide In Top"] = slide(0, -1)
	r.start["Slide In Bottom"] = slide(0, 1)
	r.end["Slide Out Left"] = slide(-1, 0)
	r.end["Slide Out Right"] = slide(1, 0)
	r.end["Slide Out Top"] = slide(0, -1)
	r.end["Slide Out Bottom"] = slide(0, 1)

	r.start["Wipe In Left"] = wipe(canvas.AxisX, canvas.DirForward)
	r.start["Wipe In Right"] = wipe(canvas.AxisX, canvas.DirReverse)
	r.start["Wipe In Top"] = wipe(canvas.AxisY, canvas.DirForward)
	r.start["Wipe In Bottom"] = wipe(canvas.AxisY, canvas.DirReverse)
	r.end["Wipe Out Left"] = wipe(canvas.AxisX, canvas.DirForward)
	r.end["Wipe Out Right"] = wipe(canvas.AxisX, canvas.DirReverse)
	r.end["Wipe Out Top"] = wipe(canvas.AxisY, canvas.DirForward)
	r.end["Wipe Out Bottom"] = wipe(canvas.AxisY, canvas.DirReverse)

	r.start["Rotate In"] = spin
	r.end["Rotate Out"] = spin

	r.start["Expand In"] = grow
	r.end["Shrink Out"] = grow
}

// fade scales all color channels toward black as p approaches 0.
func fade(frame *image.RGBA, p float64, _, _ int) *image.RGBA {
	return canvas.Brightness(frame, p)
}

// slide translates the content off-frame by (1-p) of its extent in the
// given direction.
func slide(dx, dy int) frameTransform {
	return func(frame *image.RGBA, p float64, w, h int) *image.RGBA {
		return canvas.Translate(frame,
			int(float64(dx*w)*(1-p)),
			int(float64(dy*h)*(1-p)))
	}
}

// wipe reveals a growing region from one edge via the shared time mask.
func wipe(axis canvas.Axis, dir canvas.Direction) frameTransform {
	return func(frame *image.RGBA, p float64, w, h int) *image.RGBA {
		return canvas.ApplyMask(frame, canvas.TimeMask(p, w, h, axis, dir))
	}
}

// spin rotates a full revolution as the window plays: 360*(1-p) degrees.
func spin(frame *image.RGBA, p float64, _, _ int) *image.RGBA {
	return canvas.Rotate(frame, 360*(1-p))
}

// grow scales with progress, floored so a frame never collapses to zero.
func grow(frame *image.RGBA, p float64, _, _ int) *image.RGBA {
	return canvas.ScaleFrame(frame, p)
}
