package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
)

func TestParse_OverridesAndDefaults(t *testing.T) {
	s, err := Parse([]byte(`
width: 900
backend: Vector
format: .SVG
show_values: yes
formats:
  bar: "{:,.0f}"
  hist_plot: "{:.1f}"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Width != 900 || s.Height != 340 {
		t.Fatalf("size = %dx%d", s.Width, s.Height)
	}
	if s.Backend != "vector" || s.Format != "svg" {
		t.Fatalf("backend/format = %s/%s", s.Backend, s.Format)
	}
	if s.OutDir != "charts" || s.Prefix != "chart" || s.LogLevel != "info" {
		t.Fatalf("defaults lost: %+v", s)
	}
	if !s.ShowValues.Enabled() {
		t.Fatalf("show_values: yes should enable values")
	}
	if got := s.FormatFor(plotting.KindBar); got != "{:,.0f}" {
		t.Fatalf("bar format = %q", got)
	}
	if got := s.FormatFor(plotting.KindHist); got != "{:.1f}" {
		t.Fatalf("hist format = %q", got)
	}
	if got := s.FormatFor(plotting.KindLine); got != "{:.2f}" {
		t.Fatalf("line format should fall back to default, got %q", got)
	}
}

func TestParse_ShowValuesTokens(t *testing.T) {
	cases := []struct {
		in   string
		want plotting.Toggle
	}{
		{"show_values: Y", plotting.On},
		{"show_values: true", plotting.On},
		{"show_values: 1", plotting.On},
		{"show_values: no", plotting.Off},
		{"show_values: maybe", plotting.Off},
		{"width: 10", plotting.Off},
	}
	for _, c := range cases {
		s, err := Parse([]byte(c.in))
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.in, err)
		}
		if s.ShowValues != c.want {
			t.Fatalf("Parse(%q).ShowValues = %v want %v", c.in, s.ShowValues, c.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	bad := []string{
		"backend: plotly",
		"format: bmp",
		"backend: raster\nformat: pdf",
		"formats:\n  pie: \"{:.1f}\"",
		"formats:\n  bar: \"{:.1q}\"",
		"width: [1, 2]",
		"formats:\n  bar: \"{:.1f}\"\n  bar_plot: \"{:.2f}\"",
		"formats:\n  hist: \"{:.0f}\"\n  histplot: \"{:.0f}\"",
	}
	for _, in := range bad {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("Parse(%q) err = %v, want ErrInvalid", in, err)
		}
	}
}

func TestParse_DuplicateKindFormats(t *testing.T) {
	_, err := Parse([]byte("formats:\n  bar: \"{:.1f}\"\n  bar_plot: \"{:.2f}\"\n"))
	if !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), "both set the bar format") {
		t.Fatalf("duplicate bar formats err = %v", err)
	}
}

func TestLoad_FileAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qlk.yaml")
	if err := os.WriteFile(path, []byte("formats:\n  bar: \"{:.3f}\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	fig := plotting.NewFigure(nil)
	if err := s.Apply(fig); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := fig.DefaultFormat(plotting.KindBar); got != "{:.3f}" {
		t.Fatalf("figure bar default = %q", got)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestDefault_Renderer(t *testing.T) {
	r, err := Default().Renderer()
	if err != nil {
		t.Fatalf("Renderer: %v", err)
	}
	if r.Ext() != "png" {
		t.Fatalf("default ext = %q", r.Ext())
	}
}
