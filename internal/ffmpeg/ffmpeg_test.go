package ffmpeg

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newExecutor resolves a real ffmpeg binary or skips the test.
func newExecutor(t *testing.T) *Executor {
	t.Helper()
	e, err := New(zerolog.Nop(), "", 2)
	if err != nil {
		t.Skip("ffmpeg not available:", err)
	}
	return e
}

func frames(n, w, h int) FrameSource {
	i := 0
	return func() (*image.RGBA, bool) {
		if i >= n {
			return nil, false
		}
		i++
		frame := image.NewRGBA(image.Rect(0, 0, w, h))
		c := color.RGBA{uint8(i * 40), uint8(255 - i*30), 128, 255}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				frame.SetRGBA(x, y, c)
			}
		}
		return frame, true
	}
}

func TestNewWithMissingOverride(t *testing.T) {
	_, err := New(zerolog.Nop(), "/definitely/not/ffmpeg", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEncodeRawVideoValidatesOptions(t *testing.T) {
	e := &Executor{logger: zerolog.Nop(), ffmpegPath: "ffmpeg"}

	err := e.EncodeRawVideo(context.Background(), EncodeOptions{Width: 0, Height: 10, FrameRate: 30}, nil)
	assert.ErrorContains(t, err, "frame size")

	err = e.EncodeRawVideo(context.Background(), EncodeOptions{Width: 10, Height: 10, FrameRate: 0}, nil)
	assert.ErrorContains(t, err, "frame rate")
}

func TestEncodeRawVideo(t *testing.T) {
	e := newExecutor(t)
	out := filepath.Join(t.TempDir(), "clip.mp4")

	err := e.EncodeRawVideo(context.Background(), EncodeOptions{
		Output:      out,
		Width:       64,
		Height:      48,
		FrameRate:   8,
		BitrateKbps: 500,
	}, frames(8, 64, 48))
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestEncodeRawVideoCancellation(t *testing.T) {
	e := newExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.EncodeRawVideo(ctx, EncodeOptions{
		Output:      filepath.Join(t.TempDir(), "clip.mp4"),
		Width:       64,
		Height:      48,
		FrameRate:   8,
		BitrateKbps: 500,
	}, frames(8, 64, 48))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeRawVideoFrameSizeMismatch(t *testing.T) {
	e := newExecutor(t)

	err := e.EncodeRawVideo(context.Background(), EncodeOptions{
		Output:      filepath.Join(t.TempDir(), "clip.mp4"),
		Width:       64,
		Height:      48,
		FrameRate:   8,
		BitrateKbps: 500,
	}, frames(2, 32, 32))
	assert.Error(t, err)
}

func TestEncodeMJPEG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "clip.avi")

	err := EncodeMJPEG(EncodeOptions{
		Output:    out,
		Width:     64,
		Height:    48,
		FrameRate: 8,
	}, frames(5, 64, 48))
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLocateUsesOverride(t *testing.T) {
	// any existing file satisfies an explicit override
	fake := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755))

	e, err := New(zerolog.Nop(), fake, 0)
	require.NoError(t, err)
	assert.Equal(t, fake, e.Path())
}
