package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind tells whether a column holds numbers or free text.
type Kind int

const (
	Numeric Kind = iota
	Text
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNotNumeric      = errors.New("column is not numeric")
	ErrNoNumericColumn = errors.New("no numeric column")
	ErrLengthMismatch  = errors.New("column length mismatch")
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Column is one named column. Missing numeric cells are NaN, missing text cells are "".
type Column struct {
	Name string
	Kind Kind
	Num  []float64
	Str  []string
}

// Len returns the number of cells.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Num)
	}
	return len(c.Str)
}

// Missing reports whether cell i holds no value.
func (c *Column) Missing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Num[i])
	}
	return c.Str[i] == ""
}

// Label renders cell i as a category name.
func (c *Column) Label(i int) string {
	if c.Kind == Numeric {
		if math.IsNaN(c.Num[i]) {
			return ""
		}
		return formatLevel(c.Num[i])
	}
	return c.Str[i]
}

func formatLevel(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Frame is an ordered set of equally long named columns.
// The chart builder never mutates a Frame.
type Frame struct {
	names []string
	cols  map[string]*Column
	rows  int
}

// New returns an empty frame.
func New() *Frame {
	return &Frame{cols: map[string]*Column{}}
}

// AddNumeric appends a numeric column. The slice is not copied.
func (f *Frame) AddNumeric(name string, vals []float64) error {
	return f.add(&Column{Name: name, Kind: Numeric, Num: vals})
}

// AddText appends a text column. The slice is not copied.
func (f *Frame) AddText(name string, vals []string) error {
	return f.add(&Column{Name: name, Kind: Text, Str: vals})
}

func (f *Frame) add(c *Column) error {
	if _, ok := f.cols[c.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
	}
	if len(f.names) > 0 && c.Len() != f.rows {
		return fmt.Errorf("%w: %q has %d rows, frame has %d", ErrLengthMismatch, c.Name, c.Len(), f.rows)
	}
	f.rows = c.Len()
	f.names = append(f.names, c.Name)
	f.cols[c.Name] = c
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Column looks a column up by name.
func (f *Frame) Column(name string) (*Column, error) {
	c, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return c, nil
}

// Numeric returns the values of a numeric column.
func (f *Frame) Numeric(name string) ([]float64, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Numeric {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, name)
	}
	return c.Num, nil
}

// NumericNames lists the numeric columns in insertion order.
func (f *Frame) NumericNames() []string {
	var out []string
	for _, n := range f.names {
		if f.cols[n].Kind == Numeric {
			out = append(out, n)
		}
	}
	return out
}

// FirstNumeric returns the name of the first numeric column.
func (f *Frame) FirstNumeric() (string, error) {
	for _, n := range f.names {
		if f.cols[n].Kind == Numeric {
			return n, nil
		}
	}
	return "", ErrNoNumericColumn
}
