package canvas

import (
	"image"
	"image/color"
	"math"
)

// Grayscale converts the frame using Rec. 601 luma weights.
func Grayscale(frame *image.RGBA) *image.RGBA {
	b := frame.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			g := uint8(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B))
			dst.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: c.A})
		}
	}
	return dst
}

// Sepia applies the standard sepia matrix.
func Sepia(frame *image.RGBA) *image.RGBA {
	b := frame.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			r, g, bl := float64(c.R), float64(c.G), float64(c.B)
			dst.SetRGBA(x, y, color.RGBA{
				R: clampByte(0.393*r + 0.769*g + 0.189*bl),
				G: clampByte(0.349*r + 0.686*g + 0.168*bl),
				B: clampByte(0.272*r + 0.534*g + 0.131*bl),
				A: c.A,
			})
		}
	}
	return dst
}

// Tint multiplies each channel by an independent factor.
func Tint(frame *image.RGBA, rm, gm, bm float64) *image.RGBA {
	b := frame.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			dst.SetRGBA(x, y, color.RGBA{
				R: clampByte(float64(c.R) * rm),
				G: clampByte(float64(c.G) * gm),
				B: clampByte(float64(c.B) * bm),
				A: c.A,
			})
		}
	}
	return dst
}

// Brightness scales all color channels uniformly.
func Brightness(frame *image.RGBA, m float64) *image.RGBA {
	return Tint(frame, m, m, m)
}

// Contrast adjusts contrast around mid-gray. factor 0 is identity.
func Contrast(frame *image.RGBA, factor float64) *image.RGBA {
	f := 1 + factor
	b := frame.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			dst.SetRGBA(x, y, color.RGBA{
				R: clampByte((float64(c.R)-128)*f + 128),
				G: clampByte((float64(c.G)-128)*f + 128),
				B: clampByte((float64(c.B)-128)*f + 128),
				A: c.A,
			})
		}
	}
	return dst
}

// Blur applies a separable box blur. Three passes approximate a Gaussian
// closely enough for a cosmetic softening filter.
func Blur(frame *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return Clone(frame)
	}
	out := frame
	for i := 0; i < 3; i++ {
		out = boxBlurPass(out, radius, true)
		out = boxBlurPass(out, radius, false)
	}
	return out
}

func boxBlurPass(frame *image.RGBA, radius int, horizontal bool) *image.RGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(b)
	window := 2*radius + 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a int
			for k := -radius; k <= radius; k++ {
				sx, sy := x, y
				if horizontal {
					sx = clampInt(x+k, 0, w-1)
				} else {
					sy = clampInt(y+k, 0, h-1)
				}
				c := frame.RGBAAt(b.Min.X+sx, b.Min.Y+sy)
				r += int(c.R)
				g += int(c.G)
				bl += int(c.B)
				a += int(c.A)
			}
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{
				R: uint8(r / window),
				G: uint8(g / window),
				B: uint8(bl / window),
				A: uint8(a / window),
			})
		}
	}
	return dst
}

// Vignette darkens the frame toward its corners. strength in [0,1] sets how
// dark the corners get; exponent shapes the falloff like RadialVignetteMask.
func Vignette(frame *image.RGBA, strength, exponent float64) *image.RGBA {
	b := frame.Bounds()
	mask := RadialVignetteMask(b.Dx(), b.Dy(), exponent)
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			m := float64(mask.AlphaAt(x-b.Min.X, y-b.Min.Y).A) / 255
			f := (1 - strength) + strength*m
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(c.R) * f),
				G: uint8(float64(c.G) * f),
				B: uint8(float64(c.B) * f),
				A: c.A,
			})
		}
	}
	return dst
}

// HSVToRGB converts hue [0,360), saturation and value [0,1] using the
// piecewise-linear segment formulation.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	xp := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, xp, 0
	case h < 120:
		r, g, b = xp, c, 0
	case h < 180:
		r, g, b = 0, c, xp
	case h < 240:
		r, g, b = 0, xp, c
	case h < 300:
		r, g, b = xp, 0, c
	default:
		r, g, b = c, 0, xp
	}

	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate scales color saturation by factor about each pixel's luma.
func Saturate(frame *image.RGBA, factor float64) *image.RGBA {
	b := frame.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			l := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			dst.SetRGBA(x, y, color.RGBA{
				R: clampByte(l + (float64(c.R)-l)*factor),
				G: clampByte(l + (float64(c.G)-l)*factor),
				B: clampByte(l + (float64(c.B)-l)*factor),
				A: c.A,
			})
		}
	}
	return dst
}
