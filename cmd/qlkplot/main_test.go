package main

import (
	"bytes"
	"errors"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
	"github.com/Masterhazi/quicklearnkit/src/render"
)

// writeDataset writes a small CSV with a text and two numeric columns.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	data := "category,value,step\nA,10,1\nB,20,2\nA,30,3\nB,40,4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func decodeWidth(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img.Bounds().Dx()
}

func TestRun_BarWithLabels(t *testing.T) {
	var out bytes.Buffer
	outDir := t.TempDir()
	c := cli{
		file:       writeDataset(t),
		kind:       "bar_plot",
		x:          "category",
		y:          "value",
		showValues: plotting.On,
		showSet:    true,
		format:     "{:.0f}",
		out:        outDir,
		labels:     true,
		stdout:     &out,
	}
	if err := c.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"20", "30", filepath.Join(outDir, "chart_001_bar.png")} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if w := decodeWidth(t, filepath.Join(outDir, "chart_001_bar.png")); w != render.DefaultWidth {
		t.Fatalf("width = %d want %d", w, render.DefaultWidth)
	}
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	if err := (cli{stdout: &out}).run(); err == nil {
		t.Fatalf("missing -file should fail")
	}
	c := cli{file: writeDataset(t), kind: "pie", out: t.TempDir(), stdout: &out}
	if err := c.run(); err == nil || !strings.Contains(err.Error(), "pie") {
		t.Fatalf("unknown kind error = %v", err)
	}
	c = cli{file: writeDataset(t), kind: "hist", x: "category", out: t.TempDir(), stdout: &out}
	if err := c.run(); err == nil {
		t.Fatalf("hist over a text column should fail")
	}
}

func TestRun_ConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "qlk.yaml")
	outDir := t.TempDir()
	yml := "width: 640\nheight: 320\nprefix: run\nshow_values: yes\nout_dir: " + outDir + "\n"
	if err := os.WriteFile(cfg, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var out bytes.Buffer
	c := cli{file: writeDataset(t), kind: "count", x: "category", configPath: cfg, labels: true, stdout: &out}
	if err := c.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	path := filepath.Join(outDir, "run_001_count.png")
	if w := decodeWidth(t, path); w != 640 {
		t.Fatalf("width = %d want 640", w)
	}
	if !strings.Contains(out.String(), "value") {
		t.Fatalf("annotation table missing:\n%s", out.String())
	}
}

func TestScreenshotsMode_AllKinds(t *testing.T) {
	var out bytes.Buffer
	outDir := filepath.Join(t.TempDir(), "shots")
	c := cli{file: writeDataset(t), screenshots: outDir, bins: 10, showValues: plotting.On, showSet: true, stdout: &out}
	if err := c.run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, k := range plotting.Kinds {
		path := filepath.Join(outDir, string(k)+".png")
		if w := decodeWidth(t, path); w != render.DefaultWidth {
			t.Fatalf("%s width = %d want %d", k, w, render.DefaultWidth)
		}
		if !strings.Contains(out.String(), path) {
			t.Fatalf("path %s not reported", path)
		}
	}
}

func TestScreenshotsMode_UsesBins(t *testing.T) {
	var out bytes.Buffer
	c := cli{file: writeDataset(t), screenshots: t.TempDir(), bins: 0, stdout: &out}
	if err := c.run(); !errors.Is(err, plotting.ErrBadBins) {
		t.Fatalf("bins=0 err = %v, want ErrBadBins", err)
	}
}

func TestParseFlags_ShowValues(t *testing.T) {
	cases := []struct {
		args []string
		want plotting.Toggle
		set  bool
	}{
		{[]string{"-file", "d.csv", "-show-values", "no"}, plotting.Off, true},
		{[]string{"-show-values", "maybe", "-kind", "hist"}, plotting.Off, true},
		{[]string{"-show-values", "yes"}, plotting.On, true},
		{[]string{"-show-values=Y"}, plotting.On, true},
		{[]string{"-file", "d.csv"}, plotting.Off, false},
	}
	for _, tc := range cases {
		c, err := parseFlags(tc.args, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parseFlags(%v): %v", tc.args, err)
		}
		if c.showValues != tc.want || c.showSet != tc.set {
			t.Fatalf("parseFlags(%v) show-values = %v set=%v, want %v set=%v", tc.args, c.showValues, c.showSet, tc.want, tc.set)
		}
	}
	c, err := parseFlags([]string{"-show-values", "no", "-kind", "count", "-bins", "4"}, &bytes.Buffer{})
	if err != nil || c.kind != "count" || c.bins != 4 {
		t.Fatalf("flags after show-values: %+v %v", c, err)
	}
}

func TestParseFlags_RejectsStrayArguments(t *testing.T) {
	if _, err := parseFlags([]string{"-file", "d.csv", "extra"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("stray argument should fail")
	}
	if _, err := parseFlags([]string{"-show-values"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("-show-values without a token should fail")
	}
}
