// Package overlays maps overlay names to decorative compositing passes
// applied after an effect and before transitions, so fades and wipes cover
// the overlay too. Overlays are cosmetic: any failing pass degrades to the
// unmodified frame and the render continues.
package overlays

import (
	"image"
	"image/color"
	"math/rand"
	"sort"
	"time"

	"github.com/keagan/slidecast/internal/canvas"
	"github.com/keagan/slidecast/internal/clips"
	"github.com/rs/zerolog"
)

// Params carries the per-clip inputs an overlay pass can use.
type Params struct {
	// Text is the user-supplied string for text-bearing overlays.
	Text string
	// Duration is the owning clip's duration, for animation envelopes.
	Duration float64
	// Rand is the shared randomness source for stochastic textures.
	// Reproducibility across renders is only guaranteed if the caller
	// injects a seeded generator.
	Rand *rand.Rand
	// Fonts resolves text rendering.
	Fonts *FontSet
}

// Handler is one compositing pass: a function of the frame and clip time.
type Handler func(frame *image.RGBA, t float64, p Params) *image.RGBA

// Registry dispatches overlay names to handlers.
type Registry struct {
	logger   zerolog.Logger
	handlers map[string]Handler
	fonts    *FontSet
	rng      *rand.Rand
}

// NewRegistry builds a registry with every built-in overlay registered.
// rng may be nil, in which case a time-seeded generator is used.
func NewRegistry(logger zerolog.Logger, fonts *FontSet, rng *rand.Rand) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Registry{
		logger:   logger.With().Str("component", "overlays").Logger(),
		handlers: make(map[string]Handler),
		fonts:    fonts,
		rng:      rng,
	}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a named overlay.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Names returns the registered overlay names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply dispatches by name. "None" and unknown names return the clip
// unchanged; per-frame failures fall back to the frame from before the
// overlay stage.
func (r *Registry) Apply(name string, c *clips.Clip, text string) *clips.Clip {
	if name == "" || name == "None" {
		return c
	}
	h, ok := r.handlers[name]
	if !ok {
		r.logger.Warn().Str("overlay", name).Msg("unknown overlay, skipping")
		return c
	}

	params := Params{
		Text:     text,
		Duration: c.Duration(),
		Rand:     r.rng,
		Fonts:    r.fonts,
	}
	prev := c.Frame()
	wrapped := func(t float64) *image.RGBA {
		return h(prev(t), t, params)
	}
	return c.Derive(clips.Guard(r.logger, "overlay:"+name, wrapped, prev))
}

func (r *Registry) registerBuiltins() {
	// Static-parameter overlays: pure functions of the frame.
	r.Register("Watermark", watermark)
	r.Register("Text Caption", textCaption)
	r.Register("Border", border)
	r.Register("Frame", decorativeFrame)
	r.Register("Sepia Tone", func(f *image.RGBA, _ float64, _ Params) *image.RGBA {
		return canvas.Sepia(f)
	})
	r.Register("Black and White", func(f *image.RGBA, _ float64, _ Params) *image.RGBA {
		return canvas.Grayscale(f)
	})
	r.Register("Film Noir", filmNoir)
	r.Register("Vintage", vintage)
	r.Register("Dust and Scratches", dustAndScratches)
	r.Register("Film Grain", filmGrain)

	// Animated overlays: functions of frame and t.
	r.Register("Animated Particles", animatedParticles)
	r.Register("Dynamic Text", dynamicText)
	r.Register("Animated Gradient", animatedGradient)
	r.Register("Animated Frame", animatedFrame)
}

// transparentLayer allocates a fully transparent layer matching the frame.
func transparentLayer(frame *image.RGBA) *image.RGBA {
	b := frame.Bounds()
	return image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
}

// watermark draws a small translucent text tag in the bottom-right corner.
func watermark(frame *image.RGBA, _ float64, p Params) *image.RGBA {
	text := p.Text
	if text == "" {
		text = "slidecast"
	}
	b := frame.Bounds()
	tw, th := p.Fonts.Measure(text)
	pad := 24

	x := b.Dx() - tw - pad
	y := b.Dy() - pad

	layer := transparentLayer(frame)
	box := image.Rect(x-8, y-th-8, x+tw+8, y+8)
	fillLayer(layer, box, color.RGBA{0, 0, 0, 110})
	p.Fonts.DrawText(layer, text, x, y, color.RGBA{255, 255, 255, 200})
	return canvas.CompositeOverlay(frame, layer)
}

// textCaption draws a centered caption band near the bottom edge.
func textCaption(frame *image.RGBA, _ float64, p Params) *image.RGBA {
	text := p.Text
	if text == "" {
		return frame
	}
	b := frame.Bounds()
	tw, th := p.Fonts.Measure(text)

	x := (b.Dx() - tw) / 2
	y := b.Dy() - b.Dy()/8

	layer := transparentLayer(frame)
	box := image.Rect(x-16, y-th-12, x+tw+16, y+12)
	fillLayer(layer, box, color.RGBA{0, 0, 0, 160})
	p.Fonts.DrawText(layer, text, x, y, color.RGBA{255, 255, 255, 255})
	return canvas.CompositeOverlay(frame, layer)
}

// border strokes a plain white frame edge.
func border(frame *image.RGBA, _ float64, _ Params) *image.RGBA {
	layer := transparentLayer(frame)
	strokeBorder(layer, 8, color.RGBA{255, 255, 255, 255})
	return canvas.CompositeOverlay(frame, layer)
}

// decorativeFrame draws a wide dark frame with a thin inner accent line.
func decorativeFrame(frame *image.RGBA, _ float64, _ Params) *image.RGBA {
	layer := transparentLayer(frame)
	strokeBorder(layer, 24, color.RGBA{20, 16, 12, 255})
	strokeBorderInset(layer, 28, 4, color.RGBA{212, 175, 55, 255})
	return canvas.CompositeOverlay(frame, layer)
}

func filmNoir(frame *image.RGBA, _ float64, _ Params) *image.RGBA {
	out := canvas.Grayscale(frame)
	out = canvas.Contrast(out, 0.4)
	return canvas.Vignette(out, 0.8, 1.5)
}

func vintage(frame *image.RGBA, _ float64, p Params) *image.RGBA {
	out := canvas.Sepia(frame)
	out = canvas.Vignette(out, 0.6, 1.2)
	return sprinkleGrain(out, p.Rand, 18, out.Bounds().Dx()*out.Bounds().Dy()/40)
}

// dustAndScratches draws fresh random speckles and scratch lines per frame.
// The stochastic texture is intentional; a fixed pattern would read as a
// dirty lens instead of aged film.
func dustAndScratches(frame *image.RGBA, _ float64, p Params) *image.RGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	layer := transparentLayer(frame)

	for i := 0; i < 80; i++ {
		x := p.Rand.Intn(w)
		y := p.Rand.Intn(h)
		size := 1 + p.Rand.Intn(3)
		fillLayer(layer, image.Rect(x, y, x+size, y+size), color.RGBA{230, 230, 220, 150})
	}

	scratches := 2 + p.Rand.Intn(3)
	for i := 0; i < scratches; i++ {
		x := p.Rand.Intn(w)
		top := p.Rand.Intn(h / 2)
		length := h/4 + p.Rand.Intn(h/2)
		fillLayer(layer, image.Rect(x, top, x+1, top+length), color.RGBA{210, 210, 205, 110})
	}

	return canvas.CompositeOverlay(frame, layer)
}

func filmGrain(frame *image.RGBA, _ float64, p Params) *image.RGBA {
	b := frame.Bounds()
	return sprinkleGrain(canvas.Clone(frame), p.Rand, 24, b.Dx()*b.Dy()/12)
}

// sprinkleGrain perturbs n random pixels by up to amplitude in each channel.
func sprinkleGrain(frame *image.RGBA, rng *rand.Rand, amplitude, n int) *image.RGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	for i := 0; i < n; i++ {
		x := b.Min.X + rng.Intn(w)
		y := b.Min.Y + rng.Intn(h)
		c := frame.RGBAAt(x, y)
		d := rng.Intn(2*amplitude+1) - amplitude
		c.R = addClamped(c.R, d)
		c.G = addClamped(c.G, d)
		c.B = addClamped(c.B, d)
		frame.SetRGBA(x, y, c)
	}
	return frame
}

func addClamped(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

func fillLayer(layer *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(layer.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			layer.SetRGBA(x, y, c)
		}
	}
}

// strokeBorder paints a border of the given width along the layer edges.
func strokeBorder(layer *image.RGBA, width int, c color.RGBA) {
	b := layer.Bounds()
	w, h := b.Dx(), b.Dy()
	fillLayer(layer, image.Rect(0, 0, w, width), c)
	fillLayer(layer, image.Rect(0, h-width, w, h), c)
	fillLayer(layer, image.Rect(0, 0, width, h), c)
	fillLayer(layer, image.Rect(w-width, 0, w, h), c)
}

// strokeBorderInset paints a border inset from the edges.
func strokeBorderInset(layer *image.RGBA, inset, width int, c color.RGBA) {
	b := layer.Bounds()
	w, h := b.Dx(), b.Dy()
	fillLayer(layer, image.Rect(inset, inset, w-inset, inset+width), c)
	fillLayer(layer, image.Rect(inset, h-inset-width, w-inset, h-inset), c)
	fillLayer(layer, image.Rect(inset, inset, inset+width, h-inset), c)
	fillLayer(layer, image.Rect(w-inset-width, inset, w-inset, h-inset), c)
}
