package util

import (
	"fmt"
	"time"
)

// FormatDuration converts time.Duration to ffmpeg timestamp format
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}

// FormatClock formats seconds as MM:SS for display.
func FormatClock(seconds float64) string {
	m := int(seconds) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// EstimatedFileSizeMB estimates output size from duration and bitrate.
func EstimatedFileSizeMB(durationSeconds float64, bitrateKbps int) float64 {
	bytesPerSecond := float64(bitrateKbps) * 1000 / 8
	return durationSeconds * bytesPerSecond / (1024 * 1024)
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
