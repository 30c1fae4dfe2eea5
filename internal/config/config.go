package config

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	TempDir string `yaml:"temp_dir"`

	// Output settings
	Output OutputConfig `yaml:"output"`

	// Per-image defaults applied when a sequence entry doesn't override them
	Defaults DefaultsConfig `yaml:"defaults"`

	// FFmpeg settings
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`

	// Overlay text rendering
	Fonts FontConfig `yaml:"fonts"`
}

type OutputConfig struct {
	AspectRatio string  `yaml:"aspect_ratio"`
	FrameRate   int     `yaml:"frame_rate"`
	Quality     string  `yaml:"quality"`
	Overlap     float64 `yaml:"transition_overlap"`
}

type DefaultsConfig struct {
	Duration                float64 `yaml:"duration"`
	StartTransition         string  `yaml:"start_transition"`
	StartTransitionDuration float64 `yaml:"start_transition_duration"`
	EndTransition           string  `yaml:"end_transition"`
	EndTransitionDuration   float64 `yaml:"end_transition_duration"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
	Preset     string `yaml:"preset"`
}

type FontConfig struct {
	// Candidates are tried in order before falling back to the built-in face.
	Candidates []string `yaml:"candidates"`
	Size       float64  `yaml:"size"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Write renders the configuration as YAML to w.
func (c *Config) Write(w io.Writer) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func defaultConfig() *Config {
	return &Config{
		TempDir: os.TempDir(),
		Output: OutputConfig{
			AspectRatio: "16:9",
			FrameRate:   30,
			Quality:     "High",
			Overlap:     0.5,
		},
		Defaults: DefaultsConfig{
			Duration:                3.0,
			StartTransition:         "Fade In",
			StartTransitionDuration: 1.0,
			EndTransition:           "Fade Out",
			EndTransitionDuration:   1.0,
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "",
			Threads:    4,
			Preset:     "medium",
		},
		Fonts: FontConfig{
			Candidates: []string{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
				"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
				"/usr/share/fonts/TTF/DejaVuSans.ttf",
				"/Library/Fonts/Arial.ttf",
				"/System/Library/Fonts/Helvetica.ttc",
				"C:\\Windows\\Fonts\\arial.ttf",
			},
			Size: 48,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./slidecast.yaml",
		"./slidecast.yml",
		filepath.Join(os.Getenv("HOME"), ".slidecast", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
