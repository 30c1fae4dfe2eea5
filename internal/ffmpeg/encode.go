package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"os/exec"

	"github.com/icza/mjpeg"
)

// EncodeRawVideo streams RGBA frames from source into a single libx264
// encode writing opts.Output. The whole timeline is encoded in one pass;
// there is no intermediate per-clip file.
func (e *Executor) EncodeRawVideo(ctx context.Context, opts EncodeOptions, source FrameSource) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FrameRate <= 0 {
		return fmt.Errorf("invalid frame rate %d", opts.FrameRate)
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	args := []string{"-y", "-hide_banner", "-loglevel", "info"}
	if e.threads > 0 {
		args = append(args, "-threads", fmt.Sprintf("%d", e.threads))
	}
	args = append(args,
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-framerate", fmt.Sprintf("%d", opts.FrameRate),
		"-i", "pipe:0",
		"-c:v", DefaultVideoCodec,
		"-b:v", fmt.Sprintf("%dk", opts.BitrateKbps),
		"-preset", preset,
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-an",
		opts.Output,
	)

	e.logger.Debug().Strs("args", args).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		e.streamStderr(stderr)
	}()

	var writeErr error
	frameSize := opts.Width * opts.Height * 4
	for {
		frame, ok := source()
		if !ok {
			break
		}
		if len(frame.Pix) != frameSize {
			writeErr = fmt.Errorf("frame size mismatch: got %d bytes, want %d", len(frame.Pix), frameSize)
			break
		}
		if _, err := stdin.Write(frame.Pix); err != nil {
			writeErr = fmt.Errorf("failed to write frame: %w", err)
			break
		}
	}
	closeErr := stdin.Close()

	<-stderrDone
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if waitErr != nil {
		return fmt.Errorf("ffmpeg encode failed: %w", waitErr)
	}
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close encoder input: %w", closeErr)
	}

	e.logger.Debug().Str("output", opts.Output).Msg("encode completed")
	return nil
}

// EncodeMJPEG writes a Motion-JPEG AVI from the frame source. It is the
// fallback when no ffmpeg binary is available; the artifact plays widely
// but is much larger than H.264.
func EncodeMJPEG(opts EncodeOptions, source FrameSource) error {
	writer, err := mjpeg.New(opts.Output, int32(opts.Width), int32(opts.Height), int32(opts.FrameRate))
	if err != nil {
		return fmt.Errorf("failed to create mjpeg writer: %w", err)
	}

	for {
		frame, ok := source()
		if !ok {
			break
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: 90}); err != nil {
			writer.Close()
			return fmt.Errorf("failed to encode frame: %w", err)
		}
		if err := writer.AddFrame(buf.Bytes()); err != nil {
			writer.Close()
			return fmt.Errorf("failed to add frame: %w", err)
		}
	}

	return writer.Close()
}
