package plotting

import (
	"fmt"
	"strings"
)

// Toggle is an on/off switch that also accepts the loose yes/no tokens older call sites pass.
type Toggle int8

const (
	Off Toggle = iota
	On
)

var truthy = map[string]bool{
	"yes":  true,
	"y":    true,
	"true": true,
	"1":    true,
}

// ParseToggle maps "yes", "y", "true" and "1" (any case) to On and everything else to Off,
// including padded tokens such as " yes ". It never fails.
func ParseToggle(s string) Toggle {
	if truthy[strings.ToLower(s)] {
		return On
	}
	return Off
}

// ToggleOf applies ParseToggle to the printed form of v, so true, 1 and "Y" all switch on.
// Floats print with a fraction ("1.0"), so they are always Off.
func ToggleOf(v interface{}) Toggle {
	switch t := v.(type) {
	case Toggle:
		return t
	case nil, float32, float64:
		return Off
	}
	return ParseToggle(fmt.Sprint(v))
}

// Enabled reports whether the toggle is on.
func (t Toggle) Enabled() bool { return t == On }

func (t Toggle) String() string {
	if t == On {
		return "yes"
	}
	return "no"
}

// Set implements flag.Value.
func (t *Toggle) Set(s string) error {
	*t = ParseToggle(s)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Toggle) UnmarshalText(b []byte) error {
	*t = ParseToggle(string(b))
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Toggle) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
