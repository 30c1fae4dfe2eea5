package pipeline

import (
	"image"
	"sync"

	"github.com/keagan/slidecast/internal/clips"
)

// Timeline is the ordered concatenation of clips. Total duration is the
// exact sum of clip durations; clips never overlap or reorder.
type Timeline struct {
	clips   []*clips.Clip
	offsets []float64
	total   float64
	width   int
	height  int

	closeOnce sync.Once
}

// NewTimeline assembles clips in input order. Every clip must share the
// dimensions of the first; a mismatch is reported with both sizes rather
// than letting the encoder produce garbage.
func NewTimeline(list []*clips.Clip) (*Timeline, error) {
	t := &Timeline{clips: list}
	if len(list) == 0 {
		return t, nil
	}

	t.width = list[0].Width()
	t.height = list[0].Height()
	t.offsets = make([]float64, len(list))

	for i, c := range list {
		if c.Width() != t.width || c.Height() != t.height {
			return nil, &DimensionError{
				Index: i,
				GotW:  c.Width(), GotH: c.Height(),
				WantW: t.width, WantH: t.height,
			}
		}
		t.offsets[i] = t.total
		t.total += c.Duration()
	}
	return t, nil
}

// Duration returns the timeline's total duration in seconds.
func (t *Timeline) Duration() float64 { return t.total }

// Width returns the shared frame width.
func (t *Timeline) Width() int { return t.width }

// Height returns the shared frame height.
func (t *Timeline) Height() int { return t.height }

// FrameAt samples the timeline at global time gt. A clip owns the
// half-open interval [offset, offset+duration), so a concatenation
// boundary belongs to the later clip.
func (t *Timeline) FrameAt(gt float64) *image.RGBA {
	idx := len(t.clips) - 1
	for i := 1; i < len(t.clips); i++ {
		if gt < t.offsets[i] {
			idx = i - 1
			break
		}
	}
	c := t.clips[idx]
	return c.FrameAt(gt - t.offsets[idx])
}

// FrameCount returns the number of frames the timeline spans at fps.
func (t *Timeline) FrameCount(fps int) int {
	return int(t.total*float64(fps) + 0.5)
}

// Close releases every clip. Safe to call multiple times; each clip is
// released exactly once.
func (t *Timeline) Close() {
	t.closeOnce.Do(func() {
		for _, c := range t.clips {
			c.Close()
		}
	})
}
