// Package pipeline orchestrates a whole render: per-image clip builds, the
// timeline assembly, and the single encode pass, with step-counted
// progress reporting and all-or-nothing failure semantics.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/keagan/slidecast/internal/clips"
	"github.com/keagan/slidecast/internal/config"
	"github.com/keagan/slidecast/internal/effects"
	"github.com/keagan/slidecast/internal/ffmpeg"
	"github.com/keagan/slidecast/internal/overlays"
	"github.com/keagan/slidecast/internal/sequence"
	"github.com/keagan/slidecast/internal/transitions"
	"github.com/keagan/slidecast/pkg/util"
	"github.com/rs/zerolog"
)

// Renderer drives the render pipeline. One renderer may serve many
// renders, but renders against the same output path must not run
// concurrently.
type Renderer struct {
	logger      zerolog.Logger
	cfg         *config.Config
	effects     *effects.Registry
	transitions *transitions.Registry
	overlays    *overlays.Registry
	encoder     *ffmpeg.Executor
}

// New creates a renderer with all registries populated. rng seeds the
// stochastic overlays and may be nil. When no ffmpeg binary resolves the
// renderer falls back to the built-in MJPEG encoder.
func New(logger zerolog.Logger, cfg *config.Config, rng *rand.Rand) *Renderer {
	componentLogger := logger.With().Str("component", "pipeline").Logger()

	fonts := overlays.NewFontSet(logger, cfg.Fonts.Candidates, cfg.Fonts.Size)

	encoder, err := ffmpeg.New(logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
	if err != nil {
		componentLogger.Warn().Err(err).Msg("ffmpeg unavailable, renders will use the MJPEG fallback")
		encoder = nil
	}

	return &Renderer{
		logger:      componentLogger,
		cfg:         cfg,
		effects:     effects.NewRegistry(logger),
		transitions: transitions.NewRegistry(logger),
		overlays:    overlays.NewRegistry(logger, fonts, rng),
		encoder:     encoder,
	}
}

// Render compiles the sequence into a video at outputPath and returns the
// path actually written (the extension changes to .avi on the MJPEG
// fallback). The call is synchronous; callers keep their own UI responsive
// by running it in a worker goroutine. progress may be nil.
func (r *Renderer) Render(ctx context.Context, items []*sequence.ImageSpec, settings sequence.RenderSettings,
	outputPath string, progress ProgressFunc) (string, error) {

	// validation happens before any resource allocation
	if len(items) == 0 {
		return "", ErrNoImages
	}
	if err := settings.Validate(); err != nil {
		return "", err
	}

	canvasW, canvasH := settings.Dimensions()
	bitrate := settings.BitrateKbps()

	rep := newReporter(progress, 2*len(items)+3)
	rep.advance("preparing render")

	r.logger.Info().
		Int("images", len(items)).
		Int("width", canvasW).
		Int("height", canvasH).
		Int("fps", settings.FrameRate).
		Int("bitrate_kbps", bitrate).
		Str("output", outputPath).
		Msg("starting render")

	built := make([]*clips.Clip, 0, len(items))
	closeBuilt := func() {
		for _, c := range built {
			c.Close()
		}
	}

	for i, item := range items {
		// cooperative cancellation point between clip builds
		select {
		case <-ctx.Done():
			closeBuilt()
			return "", ctx.Err()
		default:
		}

		clip, err := r.buildClip(item, i, canvasW, canvasH)
		if err != nil {
			closeBuilt()
			return "", err
		}
		rep.advance(fmt.Sprintf("processed image %d of %d", i+1, len(items)))

		built = append(built, clip)
		rep.advance(fmt.Sprintf("added image %d to timeline", i+1))
	}

	timeline, err := NewTimeline(built)
	if err != nil {
		closeBuilt()
		return "", err
	}
	defer timeline.Close()
	rep.advance("timeline assembled")

	finalPath, encodeErr := r.encode(ctx, timeline, settings, outputPath, rep)
	if encodeErr != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// Partial writes happen: a usable artifact beats a clean error.
		if util.NonEmptyFile(finalPath) {
			r.logger.Warn().Err(encodeErr).Str("output", finalPath).
				Msg("encoder reported an error but produced a non-empty file, treating as success")
		} else {
			return "", fmt.Errorf("encoding failed: %w", encodeErr)
		}
	}

	rep.advance("render complete")
	r.logger.Info().Str("output", finalPath).Float64("duration", timeline.Duration()).Msg("render finished")
	return finalPath, nil
}

// encode streams every timeline frame through the encoder while a
// background estimator reports progress. The estimator is signaled and
// joined before encode returns on every path.
func (r *Renderer) encode(ctx context.Context, timeline *Timeline, settings sequence.RenderSettings,
	outputPath string, rep *reporter) (string, error) {

	totalFrames := timeline.FrameCount(settings.FrameRate)
	frameIndex := 0
	source := func() (*image.RGBA, bool) {
		if frameIndex >= totalFrames {
			return nil, false
		}
		t := float64(frameIndex) / float64(settings.FrameRate)
		frameIndex++
		return timeline.FrameAt(t), true
	}

	// The estimate is a heuristic, not encoder feedback: roughly half a
	// second of encode time per second of timeline, weighted by quality.
	expected := timeline.Duration() * 0.5 * settings.QualityMultiplier()
	stop := r.startEstimator(rep, expected)
	defer stop()

	if r.encoder == nil {
		finalPath := replaceExt(outputPath, ".avi")
		r.logger.Info().Str("output", finalPath).Msg("encoding with MJPEG fallback")
		return finalPath, ffmpeg.EncodeMJPEG(ffmpeg.EncodeOptions{
			Output:    finalPath,
			Width:     timeline.Width(),
			Height:    timeline.Height(),
			FrameRate: settings.FrameRate,
		}, source)
	}

	return outputPath, r.encoder.EncodeRawVideo(ctx, ffmpeg.EncodeOptions{
		Output:      outputPath,
		Width:       timeline.Width(),
		Height:      timeline.Height(),
		FrameRate:   settings.FrameRate,
		BitrateKbps: settings.BitrateKbps(),
		Preset:      r.cfg.FFmpeg.Preset,
	}, source)
}

// startEstimator launches the periodic progress estimator and returns a
// stop function that signals it and waits for it to exit. The estimator
// touches no clip or timeline state; it only reads the wall clock.
func (r *Renderer) startEstimator(rep *reporter, expectedSeconds float64) func() {
	if expectedSeconds <= 0 {
		expectedSeconds = 1
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		start := time.Now()
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				f := time.Since(start).Seconds() / expectedSeconds
				if f > 0.95 {
					f = 0.95
				}
				rep.partial(f, "encoding video")
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
