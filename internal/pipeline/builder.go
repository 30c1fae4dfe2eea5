package pipeline

import (
	"fmt"
	"image"

	"github.com/keagan/slidecast/internal/canvas"
	"github.com/keagan/slidecast/internal/clips"
	"github.com/keagan/slidecast/internal/sequence"
	"github.com/keagan/slidecast/internal/transitions"
)

// buildClip compiles one sequence entry into a clip. The stage order is
// fixed: load, normalize, letterbox and duration are fatal when they fail;
// effect, overlay and transitions are cosmetic and degrade to identity
// inside their registries.
func (r *Renderer) buildClip(item *sequence.ImageSpec, index, canvasW, canvasH int) (*clips.Clip, error) {
	if err := item.Validate(); err != nil {
		return nil, &BuildError{Index: index, Path: item.SourcePath, Stage: "validate", Err: err}
	}

	// Loading covers decode plus color-space normalization; both produce
	// BuildError because a clip with no valid frame cannot proceed.
	source, err := clips.Load(r.logger, item.SourcePath, r.cfg.TempDir)
	if err != nil {
		return nil, &BuildError{Index: index, Path: item.SourcePath, Stage: "load", Err: err}
	}

	base, err := letterboxStage(source, canvasW, canvasH)
	if err != nil {
		return nil, &BuildError{Index: index, Path: item.SourcePath, Stage: "letterbox", Err: err}
	}

	item.ClampTransitions()

	clip := clips.New(canvasW, canvasH, item.Duration, func(_ float64) *image.RGBA {
		return base
	})

	clip = r.effects.Apply(item.Effect, clip)
	clip = r.overlays.Apply(item.OverlayEffect, clip, item.OverlayText)
	clip = r.transitions.Apply(item.StartTransition, clip, item.StartTransitionDuration, transitions.EdgeStart)
	clip = r.transitions.Apply(item.EndTransition, clip, item.EndTransitionDuration, transitions.EdgeEnd)

	return clip, nil
}

// letterboxStage forces the source onto the target canvas, converting any
// panic from a degenerate input into a fatal build error.
func letterboxStage(source *image.RGBA, w, h int) (base *image.RGBA, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("letterboxing panicked: %v", rec)
		}
	}()

	base = canvas.Letterbox(source, w, h)
	if got := base.Bounds(); got.Dx() != w || got.Dy() != h {
		return nil, fmt.Errorf("letterbox produced %dx%d, want %dx%d", got.Dx(), got.Dy(), w, h)
	}
	return base, nil
}
