package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "16:9", cfg.Output.AspectRatio)
	assert.Equal(t, 30, cfg.Output.FrameRate)
	assert.Equal(t, "High", cfg.Output.Quality)
	assert.Equal(t, 3.0, cfg.Defaults.Duration)
	assert.Equal(t, "Fade In", cfg.Defaults.StartTransition)
	assert.Equal(t, "medium", cfg.FFmpeg.Preset)
	assert.NotEmpty(t, cfg.Fonts.Candidates)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slidecast.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Output.AspectRatio = "9:16"
	cfg.Output.Quality = "Very High"
	cfg.Defaults.Duration = 5
	cfg.FFmpeg.Threads = 8
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9:16", loaded.Output.AspectRatio)
	assert.Equal(t, "Very High", loaded.Output.Quality)
	assert.Equal(t, 5.0, loaded.Defaults.Duration)
	assert.Equal(t, 8, loaded.FFmpeg.Threads)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slidecast.yaml")
	require.NoError(t, writeFile(path, "output:\n  quality: Low\n"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Low", cfg.Output.Quality)
	// untouched sections keep their defaults
	assert.Equal(t, 30, cfg.Output.FrameRate)
	assert.Equal(t, "Fade Out", cfg.Defaults.EndTransition)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slidecast.yaml")
	require.NoError(t, writeFile(path, "output: [oops"))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestContextCarrier(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	cfg.Output.Quality = "Low"

	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))

	// a bare context still yields usable defaults
	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, "High", fallback.Output.Quality)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
