// Package canvas provides deterministic per-frame image operations. Every
// function is a pure transform: inputs are never mutated and outputs are
// freshly allocated frames.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/keagan/slidecast/pkg/util"
	"github.com/nfnt/resize"
)

// Axis selects the direction a time mask grows along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Direction selects which edge a time mask grows from.
type Direction int

const (
	// DirForward grows from the left (AxisX) or top (AxisY) edge.
	DirForward Direction = iota
	// DirReverse grows from the right (AxisX) or bottom (AxisY) edge.
	DirReverse
)

// ToRGBA converts any image to an RGBA frame anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Clone returns a deep copy of the frame.
func Clone(frame *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(frame.Bounds())
	copy(dst.Pix, frame.Pix)
	return dst
}

// NewCanvas allocates a solid-black frame of the given size.
func NewCanvas(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return dst
}

// Letterbox scales img to fit inside targetW x targetH preserving aspect
// ratio and centers it on a black canvas of exactly the target size. This is
// the single place output dimensions are forced, so every frame downstream
// of it is safe to concatenate.
func Letterbox(img image.Image, targetW, targetH int) *image.RGBA {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 || targetW <= 0 || targetH <= 0 {
		return NewCanvas(maxInt(1, targetW), maxInt(1, targetH))
	}

	scale := math.Min(float64(targetW)/float64(srcW), float64(targetH)/float64(srcH))
	newW := maxInt(1, int(math.Round(float64(srcW)*scale)))
	newH := maxInt(1, int(math.Round(float64(srcH)*scale)))

	scaled := img
	if newW != srcW || newH != srcH {
		scaled = resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
	}

	dst := NewCanvas(targetW, targetH)
	x := (targetW - newW) / 2
	y := (targetH - newH) / 2
	draw.Draw(dst, image.Rect(x, y, x+newW, y+newH), scaled, scaled.Bounds().Min, draw.Over)
	return dst
}

// CompositeOverlay alpha-blends an RGBA layer over the frame. The layer's
// own alpha decides visibility; the frame is treated as fully opaque.
func CompositeOverlay(frame, layer *image.RGBA) *image.RGBA {
	dst := Clone(frame)
	draw.Draw(dst, dst.Bounds(), layer, layer.Bounds().Min, draw.Over)
	return dst
}

// RadialVignetteMask builds a single-channel mask: 255 at the center,
// decaying linearly to 0 at half the shorter dimension. exponent != 1
// sharpens (>1) or softens (<1) the falloff; exponent <= 0 means linear.
func RadialVignetteMask(w, h int, exponent float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	cx := float64(w) / 2
	cy := float64(h) / 2
	maxR := math.Min(cx, cy)
	if maxR <= 0 {
		return mask
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			v := util.Clamp01(1 - d/maxR)
			if exponent > 0 && exponent != 1 {
				v = math.Pow(v, exponent)
			}
			mask.SetAlpha(x, y, color.Alpha{A: uint8(v*255 + 0.5)})
		}
	}
	return mask
}

// TimeMask builds a binary mask whose opaque region covers a fraction p of
// the frame along the given axis, growing from the edge selected by dir.
// All wipe transitions are expressed through this one mask.
func TimeMask(p float64, w, h int, axis Axis, dir Direction) *image.Alpha {
	p = util.Clamp01(p)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	var opaque image.Rectangle
	switch axis {
	case AxisX:
		edge := int(math.Round(p * float64(w)))
		if dir == DirForward {
			opaque = image.Rect(0, 0, edge, h)
		} else {
			opaque = image.Rect(w-edge, 0, w, h)
		}
	case AxisY:
		edge := int(math.Round(p * float64(h)))
		if dir == DirForward {
			opaque = image.Rect(0, 0, w, edge)
		} else {
			opaque = image.Rect(0, h-edge, w, h)
		}
	}

	draw.Draw(mask, opaque, image.NewUniform(color.Alpha{A: 255}), image.Point{}, draw.Src)
	return mask
}

// ApplyMask keeps frame pixels where the mask is opaque and paints the rest
// black. The mask is treated as binary at the 50% threshold.
func ApplyMask(frame *image.RGBA, mask *image.Alpha) *image.RGBA {
	b := frame.Bounds()
	dst := NewCanvas(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A >= 128 {
				dst.SetRGBA(x, y, frame.RGBAAt(x, y))
			}
		}
	}
	return dst
}

// FillRect paints a solid rectangle onto a copy of the frame.
func FillRect(frame *image.RGBA, r image.Rectangle, c color.Color) *image.RGBA {
	dst := Clone(frame)
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
	return dst
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
