package pipeline

import (
	"errors"
	"fmt"
)

// ProgressFunc receives render progress as a percentage in [0,100] plus a
// human-readable message. It is invoked from the rendering goroutine;
// callers marshal to their own UI context.
type ProgressFunc func(percent int, message string)

// ErrNoImages is returned before any resource is acquired when the
// sequence is empty.
var ErrNoImages = errors.New("no images in sequence")

// BuildError identifies which image aborted the render and at what stage.
type BuildError struct {
	Index int
	Path  string
	Stage string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("image %d (%s): %s failed: %v", e.Index, e.Path, e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// DimensionError reports a concatenation invariant violation. Letterboxing
// forces every clip to the canvas size, so hitting this is a programming
// error; it is still detected and reported with the offending sizes.
type DimensionError struct {
	Index      int
	GotW, GotH int
	WantW      int
	WantH      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("clip %d has dimensions %dx%d, want %dx%d",
		e.Index, e.GotW, e.GotH, e.WantW, e.WantH)
}

// reporter tracks step-counted progress. Percent never decreases even when
// fractional encode estimates interleave with whole steps.
type reporter struct {
	fn    ProgressFunc
	step  int
	total int
	last  int
}

func newReporter(fn ProgressFunc, totalSteps int) *reporter {
	return &reporter{fn: fn, total: totalSteps}
}

// advance completes one step and reports it.
func (r *reporter) advance(msg string) {
	r.step++
	r.emit(float64(r.step)/float64(r.total), msg)
}

// partial reports fractional progress inside the current step.
func (r *reporter) partial(fraction float64, msg string) {
	f := (float64(r.step) + fraction) / float64(r.total)
	r.emit(f, msg)
}

func (r *reporter) emit(fraction float64, msg string) {
	if r.fn == nil {
		return
	}
	percent := int(fraction * 100)
	if percent > 100 {
		percent = 100
	}
	if percent < r.last {
		percent = r.last
	}
	r.last = percent
	r.fn(percent, msg)
}
