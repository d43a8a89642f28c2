// Package config loads chart output settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
	"github.com/Masterhazi/quicklearnkit/src/render"
)

var ErrInvalid = errors.New("invalid config")

// Settings controls how charts are rendered and where they go.
type Settings struct {
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Backend    string            `yaml:"backend"`
	Format     string            `yaml:"format"`
	OutDir     string            `yaml:"out_dir"`
	Prefix     string            `yaml:"prefix"`
	LogLevel   string            `yaml:"log_level"`
	ShowValues plotting.Toggle   `yaml:"show_values"`
	Formats    map[string]string `yaml:"formats"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Width:    render.DefaultWidth,
		Height:   render.DefaultHeight,
		Backend:  render.BackendRaster,
		Format:   "png",
		OutDir:   "charts",
		Prefix:   "chart",
		LogLevel: "info",
	}
}

// Load reads and validates a YAML settings file.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML on top of Default; zero values keep the defaults.
func Parse(b []byte) (Settings, error) {
	var in Settings
	if err := yaml.Unmarshal(b, &in); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	s := Default()
	if in.Width > 0 {
		s.Width = in.Width
	}
	if in.Height > 0 {
		s.Height = in.Height
	}
	if in.Backend != "" {
		s.Backend = strings.ToLower(in.Backend)
	}
	if in.Format != "" {
		s.Format = strings.ToLower(strings.TrimPrefix(in.Format, "."))
	}
	if in.OutDir != "" {
		s.OutDir = in.OutDir
	}
	if in.Prefix != "" {
		s.Prefix = in.Prefix
	}
	if in.LogLevel != "" {
		s.LogLevel = in.LogLevel
	}
	s.ShowValues = in.ShowValues
	s.Formats = in.Formats
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the backend/format pair and every value format. Each chart kind may be
// named once in formats, either as "bar" or "bar_plot".
func (s Settings) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if _, err := s.Renderer(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	seen := make(map[plotting.Kind]string, len(s.Formats))
	for kind, f := range s.Formats {
		k, ok := plotting.ParseKind(kind)
		if !ok {
			return fmt.Errorf("%w: formats: unknown chart kind %q", ErrInvalid, kind)
		}
		if prev, dup := seen[k]; dup {
			return fmt.Errorf("%w: formats: %q and %q both set the %s format", ErrInvalid, prev, kind, k)
		}
		seen[k] = kind
		if _, err := plotting.ParseFormat(f); err != nil {
			return fmt.Errorf("%w: formats.%s: %v", ErrInvalid, kind, err)
		}
	}
	return nil
}

// Renderer builds the renderer the settings describe.
func (s Settings) Renderer() (render.Renderer, error) {
	return render.New(s.Backend, s.Format, s.Width, s.Height)
}

// FormatFor returns the configured label format for k, or the built-in default.
func (s Settings) FormatFor(k plotting.Kind) string {
	for kind, f := range s.Formats {
		if pk, ok := plotting.ParseKind(kind); ok && pk == k {
			return f
		}
	}
	return plotting.DefaultFormat(k)
}

// Apply installs the configured formats as the figure defaults.
func (s Settings) Apply(fig *plotting.Figure) error {
	for _, k := range plotting.Kinds {
		if err := fig.SetDefaultFormat(k, s.FormatFor(k)); err != nil {
			return err
		}
	}
	return nil
}
