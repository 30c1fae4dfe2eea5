// Package sequence owns the ordered slideshow sequence: per-image parameter
// records and the operations that create, edit, reorder and remove them.
package sequence

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/keagan/slidecast/pkg/util"
)

// ImageSpec is one entry in the slideshow sequence. Position in the
// sequence is the only ordering key.
type ImageSpec struct {
	ID         string `yaml:"id"`
	SourcePath string `yaml:"source"`

	// Duration is the on-screen time in seconds. Transitions are drawn
	// inside this window, not added to it.
	Duration float64 `yaml:"duration"`

	StartTransition         string  `yaml:"start_transition"`
	StartTransitionDuration float64 `yaml:"start_transition_duration"`
	EndTransition           string  `yaml:"end_transition"`
	EndTransitionDuration   float64 `yaml:"end_transition_duration"`

	Effect        string `yaml:"effect"`
	OverlayEffect string `yaml:"overlay_effect"`
	OverlayText   string `yaml:"overlay_text,omitempty"`
}

// Defaults mirror the original product defaults for a newly added image.
func NewImageSpec(path string) *ImageSpec {
	return &ImageSpec{
		ID:                      uuid.NewString(),
		SourcePath:              path,
		Duration:                3.0,
		StartTransition:         "Fade In",
		StartTransitionDuration: 1.0,
		EndTransition:           "Fade Out",
		EndTransitionDuration:   1.0,
		Effect:                  "None",
		OverlayEffect:           "None",
	}
}

// Filename returns the base name for display purposes.
func (s *ImageSpec) Filename() string {
	return filepath.Base(s.SourcePath)
}

// ClampTransitions enforces that neither transition window exceeds the
// clip duration. Violating combinations are clamped, never left to corrupt
// timing downstream.
func (s *ImageSpec) ClampTransitions() {
	if s.StartTransitionDuration > s.Duration {
		s.StartTransitionDuration = s.Duration
	}
	if s.EndTransitionDuration > s.Duration {
		s.EndTransitionDuration = s.Duration
	}
	if s.StartTransitionDuration < 0 {
		s.StartTransitionDuration = 0
	}
	if s.EndTransitionDuration < 0 {
		s.EndTransitionDuration = 0
	}
}

// Validate rejects specs that cannot produce a sane clip.
func (s *ImageSpec) Validate() error {
	if s.SourcePath == "" {
		return fmt.Errorf("image has no source path")
	}
	if s.Duration <= 0 {
		return fmt.Errorf("image %s: duration must be positive, got %v", s.Filename(), s.Duration)
	}
	return nil
}

// Manager holds the ordered sequence and is its only mutator.
type Manager struct {
	items []*ImageSpec
}

// NewManager creates an empty sequence manager.
func NewManager() *Manager {
	return &Manager{items: make([]*ImageSpec, 0)}
}

// Add validates the path and appends a new entry with default settings.
func (m *Manager) Add(path string) (*ImageSpec, error) {
	if !util.IsImageFile(path) {
		return nil, fmt.Errorf("not a supported image file: %s", path)
	}
	item := NewImageSpec(path)
	m.items = append(m.items, item)
	return item, nil
}

// Remove deletes the entry at index i.
func (m *Manager) Remove(i int) error {
	if i < 0 || i >= len(m.items) {
		return fmt.Errorf("index %d out of range", i)
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

// MoveUp swaps the entry at i with its predecessor.
func (m *Manager) MoveUp(i int) error {
	if i <= 0 || i >= len(m.items) {
		return fmt.Errorf("cannot move item %d up", i)
	}
	m.items[i-1], m.items[i] = m.items[i], m.items[i-1]
	return nil
}

// MoveDown swaps the entry at i with its successor.
func (m *Manager) MoveDown(i int) error {
	if i < 0 || i >= len(m.items)-1 {
		return fmt.Errorf("cannot move item %d down", i)
	}
	m.items[i], m.items[i+1] = m.items[i+1], m.items[i]
	return nil
}

// Get returns the entry at index i, or nil.
func (m *Manager) Get(i int) *ImageSpec {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	return m.items[i]
}

// Len returns the sequence length.
func (m *Manager) Len() int { return len(m.items) }

// All returns the ordered sequence.
func (m *Manager) All() []*ImageSpec { return m.items }

// BulkSettings carries the parameters a global apply pushes to every entry.
type BulkSettings struct {
	Duration                float64
	StartTransition         string
	StartTransitionDuration float64
	EndTransition           string
	EndTransitionDuration   float64
	Effect                  string
	OverlayEffect           string
}

// ApplyToAll copies the bulk settings onto every entry, clamping transition
// windows per entry afterwards.
func (m *Manager) ApplyToAll(b BulkSettings) {
	for _, item := range m.items {
		if b.Duration > 0 {
			item.Duration = b.Duration
		}
		if b.StartTransition != "" {
			item.StartTransition = b.StartTransition
			item.StartTransitionDuration = b.StartTransitionDuration
		}
		if b.EndTransition != "" {
			item.EndTransition = b.EndTransition
			item.EndTransitionDuration = b.EndTransitionDuration
		}
		if b.Effect != "" {
			item.Effect = b.Effect
		}
		if b.OverlayEffect != "" {
			item.OverlayEffect = b.OverlayEffect
		}
		item.ClampTransitions()
	}
}

// TotalDuration sums every entry's on-screen time. Transitions live inside
// entry durations, so this is also the timeline duration.
func (m *Manager) TotalDuration() float64 {
	var total float64
	for _, item := range m.items {
		total += item.Duration
	}
	return total
}
