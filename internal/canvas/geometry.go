package canvas

import (
	"image"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
)

// MinScale is the floor applied to geometric scale factors so a frame never
// degenerates to zero size.
const MinScale = 0.01

// ScaleFrame resizes the content by factor about the frame center while
// keeping the output dimensions identical to the input. Content larger than
// the frame is center-cropped; smaller content is centered on black.
func ScaleFrame(frame *image.RGBA, factor float64) *image.RGBA {
	if factor < MinScale {
		factor = MinScale
	}
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if factor == 1 {
		return Clone(frame)
	}

	newW := maxInt(1, int(math.Round(float64(w)*factor)))
	newH := maxInt(1, int(math.Round(float64(h)*factor)))
	scaled := ToRGBA(resize.Resize(uint(newW), uint(newH), frame, resize.Bilinear))

	dst := NewCanvas(w, h)
	if newW >= w && newH >= h {
		// center crop
		sx := (newW - w) / 2
		sy := (newH - h) / 2
		draw.Draw(dst, dst.Bounds(), scaled, image.Pt(sx, sy), draw.Src)
	} else {
		x := (w - newW) / 2
		y := (h - newH) / 2
		draw.Draw(dst, image.Rect(x, y, x+newW, y+newH), scaled, image.Point{}, draw.Over)
	}
	return dst
}

// Translate shifts the frame content by (dx, dy) pixels over black.
func Translate(frame *image.RGBA, dx, dy int) *image.RGBA {
	b := frame.Bounds()
	dst := NewCanvas(b.Dx(), b.Dy())
	target := image.Rect(dx, dy, dx+b.Dx(), dy+b.Dy())
	draw.Draw(dst, target.Intersect(dst.Bounds()), frame, image.Pt(maxInt(0, -dx), maxInt(0, -dy)), draw.Over)
	return dst
}

// Rotate rotates the content about the frame center by angleDeg (positive is
// clockwise), filling uncovered regions with black. Inverse mapping with
// nearest-neighbor sampling.
func Rotate(frame *image.RGBA, angleDeg float64) *image.RGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := NewCanvas(w, h)

	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	cx := float64(w) / 2
	cy := float64(h) / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// rotate the destination point back into source space
			fx := float64(x) - cx
			fy := float64(y) - cy
			sx := int(math.Round(fx*cos + fy*sin + cx))
			sy := int(math.Round(-fx*sin + fy*cos + cy))
			if sx >= 0 && sx < w && sy >= 0 && sy < h {
				dst.SetRGBA(x, y, frame.RGBAAt(b.Min.X+sx, b.Min.Y+sy))
			}
		}
	}
	return dst
}

// MirrorX flips the frame horizontally.
func MirrorX(frame *image.RGBA) *image.RGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(x, y, frame.RGBAAt(b.Min.X+w-1-x, b.Min.Y+y))
		}
	}
	return dst
}

// MirrorY flips the frame vertically.
func MirrorY(frame *image.RGBA) *image.RGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(x, y, frame.RGBAAt(b.Min.X+x, b.Min.Y+h-1-y))
		}
	}
	return dst
}
