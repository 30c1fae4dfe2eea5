package sequence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk project file: the whole sequence plus the render
// settings, serialized as YAML.
type Manifest struct {
	Settings RenderSettings `yaml:"settings"`
	Images   []*ImageSpec   `yaml:"images"`
}

// LoadManifest reads a project file and rebuilds the sequence.
func LoadManifest(path string) (*Manager, RenderSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, RenderSettings{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	manifest := Manifest{Settings: DefaultRenderSettings()}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, RenderSettings{}, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m := NewManager()
	for i, item := range manifest.Images {
		if item.SourcePath == "" {
			return nil, RenderSettings{}, fmt.Errorf("manifest image %d has no source", i)
		}
		applyEntryDefaults(item)
		item.ClampTransitions()
		m.items = append(m.items, item)
	}
	return m, manifest.Settings, nil
}

// SaveManifest writes the sequence and settings to a project file.
func SaveManifest(path string, m *Manager, settings RenderSettings) error {
	manifest := Manifest{Settings: settings, Images: m.All()}
	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEntryDefaults fills zero-valued fields on a manifest entry so a
// hand-written manifest can omit most keys.
func applyEntryDefaults(item *ImageSpec) {
	defaults := NewImageSpec(item.SourcePath)
	if item.ID == "" {
		item.ID = defaults.ID
	}
	if item.Duration == 0 {
		item.Duration = defaults.Duration
	}
	if item.StartTransition == "" {
		item.StartTransition = "None"
	}
	if item.EndTransition == "" {
		item.EndTransition = "None"
	}
	if item.StartTransition != "None" && item.StartTransitionDuration == 0 {
		item.StartTransitionDuration = defaults.StartTransitionDuration
	}
	if item.EndTransition != "None" && item.EndTransitionDuration == 0 {
		item.EndTransitionDuration = defaults.EndTransitionDuration
	}
	if item.Effect == "" {
		item.Effect = "None"
	}
	if item.OverlayEffect == "" {
		item.OverlayEffect = "None"
	}
}
