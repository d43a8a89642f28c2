package plotting

import (
	"errors"
	"math"
	"testing"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		format string
		v      float64
		want   string
	}{
		{"{:.0f}", 20, "20"},
		{"{:.2f}", 3.14159, "3.14"},
		{"{:,.0f}", 1234567, "1,234,567"},
		{"{:,.2f}", -1234.5, "-1,234.50"},
		{"{:+.1f}", 2, "+2.0"},
		{"{:.1%}", 0.25, "25.0%"},
		{"{:.3e}", 12340, "1.234e+04"},
		{"{}", 2, "2.0"},
		{"{}", 2.5, "2.5"},
		{"{:8.2f}", 3.14159, "    3.14"},
		{"{:.1f} ms", 3, "3.0 ms"},
		{"n={:.0f}", 7, "n=7"},
		{"%.2f", 1.5, "1.50"},
		{"{:.1f}", math.NaN(), "nan"},
		{"{:.1f}", math.Inf(-1), "-inf"},
		{"static", 42, "static"},
	}
	for _, c := range cases {
		got, err := FormatValue(c.format, c.v)
		if err != nil {
			t.Fatalf("FormatValue(%q, %v): %v", c.format, c.v, err)
		}
		if got != c.want {
			t.Fatalf("FormatValue(%q, %v) = %q, want %q", c.format, c.v, got, c.want)
		}
	}
}

func TestParseFormat_Rejects(t *testing.T) {
	for _, s := range []string{"{:.2q}", "{:.2f", "{} {}", "%z", "{:,.2e}"} {
		if _, err := ParseFormat(s); !errors.Is(err, ErrBadFormat) {
			t.Fatalf("ParseFormat(%q) err = %v, want ErrBadFormat", s, err)
		}
	}
}

func TestValueFormat_String(t *testing.T) {
	if got := MustParseFormat("{:.2f}").String(); got != "{:.2f}" {
		t.Fatalf("String() = %q", got)
	}
}
