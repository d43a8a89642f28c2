package plotting

import (
	"bytes"
	"strings"
	"testing"
)

func swapLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = newBaseLogger(&buf)
	prev := GetLogLevel()
	t.Cleanup(func() {
		baseLogger = saved
		setLevel(prev)
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := swapLogger(t)
	SetLogLevel("info")

	msg := "bar chart labels use {:.1%} (25.0% of total)"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(25.0% of total)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestSetLogLevel_FiltersAndIgnoresUnknown(t *testing.T) {
	buf := swapLogger(t)
	SetLogLevel("warn")
	SetLogLevel("loud")
	if GetLogLevel() != LevelWarn {
		t.Fatalf("unknown level should be ignored, got %v", GetLogLevel())
	}
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown 2") {
		t.Fatalf("unexpected output: %s", out)
	}
}
