package plotting

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var ErrBadFormat = errors.New("bad value format")

// ValueFormat is a compiled label format.
//
// Two notations are accepted: the brace form used by the original helpers
// ("{:.2f}", "{:,.0f}", "{:+.1f}", "{:.1%}", "{:.3e}", "{}", optionally with literal text
// around the placeholder such as "{:.1f} ms"), and plain Go verbs ("%.2f").
type ValueFormat struct {
	raw    string
	prefix string
	suffix string
	goVerb bool
	plain  bool // no placeholder at all; the text is printed as is

	sign  string
	width int
	comma bool
	prec  int
	verb  byte
}

var braceSpec = regexp.MustCompile(`^(?::([+\- ]?)(\d*)(,?)(?:\.(\d+))?([fFeEgGd%]?))?$`)

// ParseFormat compiles a format string.
func ParseFormat(s string) (ValueFormat, error) {
	vf := ValueFormat{raw: s, prec: -1}
	open := strings.IndexByte(s, '{')
	if open < 0 {
		if strings.Contains(s, "%") {
			out := fmt.Sprintf(s, 1.0)
			if strings.Contains(out, "%!") {
				return ValueFormat{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
			}
			vf.goVerb = true
			return vf, nil
		}
		vf.plain = true
		return vf, nil
	}
	end := strings.IndexByte(s[open:], '}')
	if end < 0 {
		return ValueFormat{}, fmt.Errorf("%w: unterminated placeholder in %q", ErrBadFormat, s)
	}
	end += open
	if strings.ContainsAny(s[end+1:], "{}") || strings.ContainsAny(s[:open], "}") {
		return ValueFormat{}, fmt.Errorf("%w: only one placeholder allowed in %q", ErrBadFormat, s)
	}
	m := braceSpec.FindStringSubmatch(s[open+1 : end])
	if m == nil {
		return ValueFormat{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	vf.prefix, vf.suffix = s[:open], s[end+1:]
	vf.sign = m[1]
	if m[2] != "" {
		vf.width, _ = strconv.Atoi(m[2])
	}
	vf.comma = m[3] == ","
	if m[4] != "" {
		vf.prec, _ = strconv.Atoi(m[4])
	}
	if m[5] != "" {
		vf.verb = m[5][0]
	}
	if vf.comma && (vf.verb == 'e' || vf.verb == 'E') {
		return ValueFormat{}, fmt.Errorf("%w: thousands separator not allowed with exponent in %q", ErrBadFormat, s)
	}
	return vf, nil
}

// MustParseFormat is ParseFormat for constant formats.
func MustParseFormat(s string) ValueFormat {
	vf, err := ParseFormat(s)
	if err != nil {
		panic(err)
	}
	return vf
}

// String returns the source text of the format.
func (vf ValueFormat) String() string { return vf.raw }

// Format renders v.
func (vf ValueFormat) Format(v float64) string {
	switch {
	case vf.plain:
		return vf.raw
	case vf.goVerb:
		return fmt.Sprintf(vf.raw, v)
	}
	body := vf.number(v)
	if vf.width > 0 && len(body) < vf.width {
		body = strings.Repeat(" ", vf.width-len(body)) + body
	}
	return vf.prefix + body + vf.suffix
}

func (vf ValueFormat) number(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	if math.IsInf(v, 1) {
		return vf.signFor(v) + "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	neg := math.Signbit(v) && v != 0
	a := math.Abs(v)
	var s string
	switch vf.verb {
	case 'f', 'F':
		s = strconv.FormatFloat(a, 'f', vf.precOr(6), 64)
	case 'e', 'E':
		s = strconv.FormatFloat(a, vf.verb, vf.precOr(6), 64)
	case 'g', 'G':
		s = strconv.FormatFloat(a, vf.verb, vf.precOr(6), 64)
	case '%':
		s = strconv.FormatFloat(a*100, 'f', vf.precOr(6), 64)
	case 'd':
		s = strconv.FormatFloat(math.Round(a), 'f', 0, 64)
	default:
		if vf.prec >= 0 {
			s = strconv.FormatFloat(a, 'g', vf.prec, 64)
		} else {
			s = strconv.FormatFloat(a, 'f', -1, 64)
			if !strings.ContainsAny(s, ".e") {
				s += ".0"
			}
		}
	}
	if vf.comma {
		s = groupThousands(s)
	}
	if vf.verb == '%' {
		s += "%"
	}
	if neg {
		return "-" + s
	}
	return vf.signFor(v) + s
}

func (vf ValueFormat) precOr(def int) int {
	if vf.prec >= 0 {
		return vf.prec
	}
	return def
}

func (vf ValueFormat) signFor(v float64) string {
	if v < 0 {
		return ""
	}
	switch vf.sign {
	case "+":
		return "+"
	case " ":
		return " "
	}
	return ""
}

// groupThousands inserts separators into the integer digits of an unsigned decimal string.
func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return s
	}
	return humanize.Comma(n) + frac
}

// FormatValue parses format and renders v in one step.
func FormatValue(format string, v float64) (string, error) {
	vf, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return vf.Format(v), nil
}
