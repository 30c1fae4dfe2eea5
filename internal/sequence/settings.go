package sequence

import "fmt"

// RenderSettings is the single value object for a whole render.
type RenderSettings struct {
	AspectRatio string `yaml:"aspect_ratio"`
	FrameRate   int    `yaml:"frame_rate"`
	Quality     string `yaml:"quality"`
	// Overlap is read from the interface but transitions are drawn within
	// each clip's own duration; cross-clip blending is a non-goal.
	Overlap float64 `yaml:"transition_overlap"`
}

// Aspect ratio presets, name -> exact pixel dimensions.
var aspectRatios = map[string][2]int{
	"16:9": {1920, 1080},
	"4:3":  {1440, 1080},
	"1:1":  {1080, 1080},
	"9:16": {1080, 1920},
	"21:9": {2560, 1080},
}

// Quality presets, name -> target bitrate in kbps.
var qualityPresets = map[string]int{
	"Low":       1000,
	"Medium":    2000,
	"High":      5000,
	"Very High": 10000,
}

// AspectRatioNames lists the preset names in display order.
func AspectRatioNames() []string {
	return []string{"16:9", "4:3", "1:1", "9:16", "21:9"}
}

// QualityNames lists the preset names in display order.
func QualityNames() []string {
	return []string{"Low", "Medium", "High", "Very High"}
}

// Dimensions resolves the aspect ratio preset to pixel dimensions,
// defaulting to 16:9 for unknown names.
func (s RenderSettings) Dimensions() (int, int) {
	if d, ok := aspectRatios[s.AspectRatio]; ok {
		return d[0], d[1]
	}
	return 1920, 1080
}

// BitrateKbps resolves the quality preset, defaulting to High.
func (s RenderSettings) BitrateKbps() int {
	if b, ok := qualityPresets[s.Quality]; ok {
		return b
	}
	return 5000
}

// QualityMultiplier weights the encode-time estimate by quality preset.
func (s RenderSettings) QualityMultiplier() float64 {
	switch s.Quality {
	case "Low":
		return 0.5
	case "Medium":
		return 0.75
	case "Very High":
		return 1.5
	default:
		return 1.0
	}
}

// Validate rejects unusable settings.
func (s RenderSettings) Validate() error {
	if s.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", s.FrameRate)
	}
	return nil
}

// DefaultRenderSettings mirrors the original product defaults.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		AspectRatio: "16:9",
		FrameRate:   30,
		Quality:     "High",
		Overlap:     0.5,
	}
}
