package sequence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")

	m := NewManager()
	a, _ := m.Add(touchImage(t, dir, "a.png"))
	b, _ := m.Add(touchImage(t, dir, "b.png"))
	a.Duration = 2.5
	a.Effect = "Zoom In"
	b.OverlayEffect = "Watermark"
	b.OverlayText = "hello"

	settings := RenderSettings{AspectRatio: "9:16", FrameRate: 24, Quality: "Medium", Overlap: 0.5}
	require.NoError(t, SaveManifest(path, m, settings))

	loaded, loadedSettings, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loadedSettings)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, 2.5, loaded.Get(0).Duration)
	assert.Equal(t, "Zoom In", loaded.Get(0).Effect)
	assert.Equal(t, "Watermark", loaded.Get(1).OverlayEffect)
	assert.Equal(t, "hello", loaded.Get(1).OverlayText)
}

func TestLoadManifestFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	doc := `images:
  - source: photos/one.jpg
  - source: photos/two.jpg
    duration: 1.25
    start_transition: Fade In
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	m, settings, err := LoadManifest(path)
	require.NoError(t, err)

	// settings section omitted entirely -> product defaults
	assert.Equal(t, DefaultRenderSettings(), settings)

	one := m.Get(0)
	assert.NotEmpty(t, one.ID)
	assert.Equal(t, 3.0, one.Duration)
	assert.Equal(t, "None", one.StartTransition)
	assert.Equal(t, "None", one.EndTransition)
	assert.Equal(t, "None", one.Effect)
	assert.Equal(t, "None", one.OverlayEffect)

	two := m.Get(1)
	assert.Equal(t, 1.25, two.Duration)
	assert.Equal(t, "Fade In", two.StartTransition)
	// explicit transition with no window gets the default window, clamped
	assert.Equal(t, 1.0, two.StartTransitionDuration)
}

func TestLoadManifestRejectsMissingSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("images:\n  - duration: 2\n"), 0644))

	_, _, err := LoadManifest(path)
	assert.ErrorContains(t, err, "no source")
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadManifestBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("images: [unterminated"), 0644))

	_, _, err := LoadManifest(path)
	assert.ErrorContains(t, err, "parse")
}
