package ffmpeg

import "image"

// EncodeOptions configures one encode pass.
type EncodeOptions struct {
	Output      string
	Width       int
	Height      int
	FrameRate   int
	BitrateKbps int
	Preset      string
}

// FrameSource yields consecutive frames; ok is false when the stream ends.
// Every frame must be exactly Width x Height pixels.
type FrameSource func() (frame *image.RGBA, ok bool)

// Default encoding settings
const (
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
)
