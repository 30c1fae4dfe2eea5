package overlays

import (
	"image"
	"image/color"
	"math"

	"github.com/keagan/slidecast/internal/canvas"
	"github.com/keagan/slidecast/pkg/util"
)

const particleCount = 40

// animatedParticles drifts a fixed set of particles linearly with t,
// wrapping at the canvas edges. Particle seeds are derived from the
// particle index so the motion is continuous across frames.
func animatedParticles(frame *image.RGBA, t float64, _ Params) *image.RGBA {
	b := frame.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	layer := transparentLayer(frame)

	for i := 0; i < particleCount; i++ {
		// low-discrepancy seeds keep the field evenly spread
		x0 := math.Mod(float64(i)*0.618034, 1) * w
		y0 := math.Mod(float64(i)*0.754877, 1) * h
		vx := 18 + 22*math.Mod(float64(i)*0.382, 1)
		vy := 30 + 35*math.Mod(float64(i)*0.291, 1)

		x := int(math.Mod(x0+vx*t, w))
		y := int(math.Mod(y0+vy*t, h))
		size := 2 + i%3
		fillLayer(layer, image.Rect(x, y, x+size, y+size), color.RGBA{255, 255, 255, 190})
	}

	return canvas.CompositeOverlay(frame, layer)
}

// dynamicText fades the text in and out over fixed windows and bounces it
// on a sinusoidal vertical path.
func dynamicText(frame *image.RGBA, t float64, p Params) *image.RGBA {
	text := p.Text
	if text == "" {
		return frame
	}
	const fadeWindow = 0.75

	envelope := 1.0
	if p.Duration > 0 {
		envelope = util.Clamp01(math.Min(t/fadeWindow, (p.Duration-t)/fadeWindow))
	}
	if envelope <= 0 {
		return frame
	}

	b := frame.Bounds()
	tw, _ := p.Fonts.Measure(text)
	x := (b.Dx() - tw) / 2
	y := b.Dy()/2 + int(20*math.Sin(2*math.Pi*t))

	layer := transparentLayer(frame)
	alpha := uint8(envelope * 255)
	p.Fonts.DrawText(layer, text, x, y, color.RGBA{255, 255, 255, alpha})
	return canvas.CompositeOverlay(frame, layer)
}

// animatedGradient washes a vertical gradient over the frame whose two end
// colors cycle via phase-shifted sinusoids of t.
func animatedGradient(frame *image.RGBA, t float64, _ Params) *image.RGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	layer := transparentLayer(frame)

	top := sinusoidColor(t, 0)
	bottom := sinusoidColor(t, math.Pi)
	const washAlpha = 70

	for y := 0; y < h; y++ {
		f := float64(y) / float64(maxOf(1, h-1))
		c := color.RGBA{
			R: lerpByte(top.R, bottom.R, f),
			G: lerpByte(top.G, bottom.G, f),
			B: lerpByte(top.B, bottom.B, f),
			A: washAlpha,
		}
		for x := 0; x < w; x++ {
			layer.SetRGBA(x, y, c)
		}
	}

	return canvas.CompositeOverlay(frame, layer)
}

// sinusoidColor cycles RGB channels on sinusoids 120 degrees apart.
func sinusoidColor(t, phase float64) color.RGBA {
	angle := 2 * math.Pi * 0.2 * t
	channel := func(shift float64) uint8 {
		return uint8(127.5 * (1 + math.Sin(angle+phase+shift)))
	}
	return color.RGBA{
		R: channel(0),
		G: channel(2 * math.Pi / 3),
		B: channel(4 * math.Pi / 3),
		A: 255,
	}
}

// animatedFrame pulses the border width sinusoidally and cycles its color
// through a hue rotation.
func animatedFrame(frame *image.RGBA, t float64, _ Params) *image.RGBA {
	width := int(12 + 8*math.Sin(2*math.Pi*0.8*t))
	if width < 2 {
		width = 2
	}
	hue := math.Mod(120*t, 360)
	c := canvas.HSVToRGB(hue, 1, 1)

	layer := transparentLayer(frame)
	strokeBorder(layer, width, c)
	return canvas.CompositeOverlay(frame, layer)
}

func lerpByte(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f)
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
