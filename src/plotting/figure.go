package plotting

import (
	"fmt"
	"math"
	"time"

	"github.com/Masterhazi/quicklearnkit/src/dataset"
)

// barWidth is the share of a category slot a bar occupies.
const barWidth = 0.8

// Display receives every chart built with showing enabled.
type Display interface {
	Show(c *Chart) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(c *Chart) error

// Show implements Display.
func (f DisplayFunc) Show(c *Chart) error { return f(c) }

// Discard is a display that drops every chart.
var Discard Display = DisplayFunc(func(*Chart) error { return nil })

// Options are the per-call settings shared by all constructors.
type Options struct {
	Title      string
	ShowValues Toggle
	// Format for value labels; empty selects the figure default for the chart kind.
	Format string
	// NoShow skips the display. The zero value shows the chart immediately.
	NoShow  bool
	Caption string
}

var defaultFormats = map[Kind]string{
	KindBar:     "{:.1f}",
	KindLine:    "{:.2f}",
	KindScatter: "{:.2f}",
	KindBox:     "{:.2f}",
	KindHist:    "{:.0f}",
}

// DefaultFormat returns the built-in label format for a chart kind.
func DefaultFormat(k Kind) string { return defaultFormats[k] }

// Figure is the chart context: every chart it builds is shown on its display.
// Separate figures share nothing.
type Figure struct {
	display Display
	formats map[Kind]string
}

// NewFigure returns a figure showing charts on d; a nil d discards them.
func NewFigure(d Display) *Figure {
	if d == nil {
		d = Discard
	}
	return &Figure{display: d, formats: map[Kind]string{}}
}

// SetDisplay replaces the display.
func (f *Figure) SetDisplay(d Display) {
	if d == nil {
		d = Discard
	}
	f.display = d
}

// SetDefaultFormat overrides the label format used when Options.Format is empty.
func (f *Figure) SetDefaultFormat(k Kind, format string) error {
	if _, err := ParseFormat(format); err != nil {
		return err
	}
	f.formats[k] = format
	return nil
}

// DefaultFormat returns the label format this figure uses for k.
func (f *Figure) DefaultFormat(k Kind) string {
	if s, ok := f.formats[k]; ok {
		return s
	}
	return defaultFormats[k]
}

func (f *Figure) valueFormat(k Kind, opts Options) (ValueFormat, error) {
	s := opts.Format
	if s == "" {
		s = f.DefaultFormat(k)
	}
	return ParseFormat(s)
}

// Plot dispatches to the constructor for k. Columns the kind does not use are ignored;
// bins only matters for histograms.
func (f *Figure) Plot(k Kind, df *dataset.Frame, x, y string, bins int, opts Options) (*Chart, error) {
	switch k {
	case KindBar:
		return f.BarPlot(df, x, y, opts)
	case KindLine:
		return f.LinePlot(df, x, y, opts)
	case KindScatter:
		return f.ScatterPlot(df, x, y, opts)
	case KindCount:
		return f.CountPlot(df, x, opts)
	case KindBox:
		return f.BoxPlot(df, x, y, opts)
	case KindHist:
		return f.HistPlot(df, x, bins, opts)
	}
	return nil, fmt.Errorf("unknown chart kind %q", k)
}

// BarPlot draws one bar per category of x with the mean of y as its height.
func (f *Figure) BarPlot(df *dataset.Frame, x, y string, opts Options) (*Chart, error) {
	defer TimeTrack(time.Now(), "bar plot")
	levels, codes, err := df.Codes(x)
	if err != nil {
		return nil, err
	}
	ys, err := df.Numeric(y)
	if err != nil {
		return nil, err
	}
	heights := aggregateMean(codes, ys, len(levels))
	bars := make([]Bar, len(levels))
	for i, h := range heights {
		bars[i] = Bar{X: float64(i), Width: barWidth, Height: h, Label: levels[i]}
	}
	c := &Chart{
		Kind:       KindBar,
		X:          Axis{Label: x, Categories: levels},
		Y:          Axis{Label: y},
		Containers: []Container{{Name: y, Bars: bars}},
	}
	return f.finish(c, opts, func() error {
		vf, err := f.valueFormat(KindBar, opts)
		if err != nil {
			return err
		}
		labelValues(c, vf)
		return nil
	})
}

// LinePlot draws the mean of y for each distinct x, joined by a line with markers.
// Numeric x is sorted; text x is placed at category positions.
func (f *Figure) LinePlot(df *dataset.Frame, x, y string, opts Options) (*Chart, error) {
	defer TimeTrack(time.Now(), "line plot")
	pos, categories, codes, err := xPositions(df, x)
	if err != nil {
		return nil, err
	}
	ys, err := df.Numeric(y)
	if err != nil {
		return nil, err
	}
	means := aggregateMean(codes, ys, len(pos))
	pts := make([]Point, len(pos))
	for i := range pos {
		pts[i] = Point{X: pos[i], Y: means[i]}
	}
	c := &Chart{
		Kind:   KindLine,
		X:      Axis{Label: x, Categories: categories},
		Y:      Axis{Label: y},
		Series: []Series{{Name: y, Points: pts, Line: true, Markers: true}},
	}
	return f.finish(c, opts, func() error {
		vf, err := f.valueFormat(KindLine, opts)
		if err != nil {
			return err
		}
		labelValues(c, vf)
		return nil
	})
}

// ScatterPlot draws one marker per row. Rows without x are dropped; rows without y stay
// in the series as gaps.
func (f *Figure) ScatterPlot(df *dataset.Frame, x, y string, opts Options) (*Chart, error) {
	defer TimeTrack(time.Now(), "scatter plot")
	xc, err := df.Column(x)
	if err != nil {
		return nil, err
	}
	ys, err := df.Numeric(y)
	if err != nil {
		return nil, err
	}
	var categories []string
	var xs []float64
	if xc.Kind == dataset.Numeric {
		xs = xc.Num
	} else {
		levels, codes, err := df.Codes(x)
		if err != nil {
			return nil, err
		}
		categories = levels
		xs = make([]float64, len(codes))
		for i, k := range codes {
			xs[i] = float64(k)
			if k < 0 {
				xs[i] = math.NaN()
			}
		}
	}
	pts := make([]Point, 0, len(xs))
	for i, xv := range xs {
		if math.IsNaN(xv) {
			continue
		}
		pts = append(pts, Point{X: xv, Y: ys[i]})
	}
	c := &Chart{
		Kind:   KindScatter,
		X:      Axis{Label: x, Categories: categories},
		Y:      Axis{Label: y},
		Series: []Series{{Name: y, Points: pts, Markers: true}},
	}
	return f.finish(c, opts, func() error {
		vf, err := f.valueFormat(KindScatter, opts)
		if err != nil {
			return err
		}
		labelValues(c, vf)
		return nil
	})
}

// CountPlot draws one bar per category of x with the number of rows as its height.
// Labels are plain integers.
func (f *Figure) CountPlot(df *dataset.Frame, x string, opts Options) (*Chart, error) {
	defer TimeTrack(time.Now(), "count plot")
	groups, err := df.Counts(x)
	if err != nil {
		return nil, err
	}
	levels := make([]string, len(groups))
	bars := make([]Bar, len(groups))
	for i, g := range groups {
		levels[i] = g.Key
		bars[i] = Bar{X: float64(i), Width: barWidth, Height: float64(g.Count), Label: g.Key}
	}
	c := &Chart{
		Kind:       KindCount,
		X:          Axis{Label: x, Categories: levels},
		Y:          Axis{Label: "count"},
		Containers: []Container{{Name: "count", Bars: bars}},
	}
	return f.finish(c, opts, func() error {
		labelCounts(c)
		return nil
	})
}

// BoxPlot draws box-and-whisker glyphs and, with values shown, the mean above each box.
//
// With x and y, one box per category of x over y. With only one of them, a single box of
// that column. With neither, one box per numeric column, annotated with the mean of the
// first one; a frame without numeric columns fails with dataset.ErrNoNumericColumn.
func (f *Figure) BoxPlot(df *dataset.Frame, x, y string, opts Options) (*Chart, error) {
	defer TimeTrack(time.Now(), "box plot")
	c := &Chart{Kind: KindBox}
	var means []float64
	switch {
	case x != "" && y != "":
		levels, codes, err := df.Codes(x)
		if err != nil {
			return nil, err
		}
		ys, err := df.Numeric(y)
		if err != nil {
			return nil, err
		}
		groups, err := df.GroupMean(x, y)
		if err != nil {
			return nil, err
		}
		buckets := make([][]float64, len(levels))
		for i, k := range codes {
			if k >= 0 {
				buckets[k] = append(buckets[k], ys[i])
			}
		}
		for i, key := range levels {
			c.Boxes = append(c.Boxes, boxStats(float64(i), key, dropNaN(buckets[i])))
			means = append(means, groups[i].Mean)
		}
		c.X = Axis{Label: x, Categories: levels}
		c.Y = Axis{Label: y}
	case x != "" || y != "":
		col := y
		if col == "" {
			col = x
		}
		vals, err := df.Valid(col)
		if err != nil {
			return nil, err
		}
		m, err := df.Mean(col)
		if err != nil {
			return nil, err
		}
		c.Boxes = []BoxStats{boxStats(0, col, vals)}
		c.X = Axis{Categories: []string{col}}
		c.Y = Axis{Label: col}
		means = []float64{m}
	default:
		first, err := df.FirstNumeric()
		if err != nil {
			return nil, fmt.Errorf("box plot without columns: %w", err)
		}
		names := df.NumericNames()
		for i, n := range names {
			vals, err := df.Valid(n)
			if err != nil {
				return nil, err
			}
			c.Boxes = append(c.Boxes, boxStats(float64(i), n, vals))
		}
		m, err := df.Mean(first)
		if err != nil {
			return nil, err
		}
		c.X = Axis{Categories: names}
		means = []float64{m}
	}
	return f.finish(c, opts, func() error {
		vf, err := f.valueFormat(KindBox, opts)
		if err != nil {
			return err
		}
		labelMeans(c, means, vf)
		return nil
	})
}

// HistPlot bins x into bins equal-width bins and, with values shown, labels every
// non-empty bin with its count.
func (f *Figure) HistPlot(df *dataset.Frame, x string, bins int, opts Options) (*Chart, error) {
	defer TimeTrack(time.Now(), "hist plot")
	vals, err := df.Numeric(x)
	if err != nil {
		return nil, err
	}
	edges, counts, err := binCounts(vals, bins)
	if err != nil {
		return nil, err
	}
	bars := make([]Bar, len(counts))
	for i, n := range counts {
		bars[i] = Bar{
			X:      (edges[i] + edges[i+1]) / 2,
			Width:  edges[i+1] - edges[i],
			Height: n,
		}
	}
	c := &Chart{
		Kind:       KindHist,
		X:          Axis{Label: x},
		Y:          Axis{Label: "Count"},
		Containers: []Container{{Name: x, Bars: bars}},
	}
	return f.finish(c, opts, func() error {
		vf, err := f.valueFormat(KindHist, opts)
		if err != nil {
			return err
		}
		labelBins(c, vf)
		return nil
	})
}

// finish applies the steps every constructor shares: title, annotations, display.
func (f *Figure) finish(c *Chart, opts Options, annotate func() error) (*Chart, error) {
	if opts.Title != "" {
		c.SetTitle(opts.Title)
	}
	c.Caption = opts.Caption
	if opts.ShowValues.Enabled() {
		if err := annotate(); err != nil {
			return nil, err
		}
	}
	if !opts.NoShow {
		if err := f.display.Show(c); err != nil {
			return nil, fmt.Errorf("show %s chart: %w", c.Kind, err)
		}
	}
	Debugf("%s chart ready: %d annotations", c.Kind, len(c.Annotations))
	return c, nil
}

// xPositions maps the distinct values of x to axis positions: the values themselves for a
// numeric column, 0..n-1 plus category names for a text column.
func xPositions(df *dataset.Frame, x string) ([]float64, []string, []int, error) {
	xc, err := df.Column(x)
	if err != nil {
		return nil, nil, nil, err
	}
	if xc.Kind == dataset.Numeric {
		vals, codes, err := df.Unique(x)
		if err != nil {
			return nil, nil, nil, err
		}
		return vals, nil, codes, nil
	}
	levels, codes, err := df.Codes(x)
	if err != nil {
		return nil, nil, nil, err
	}
	pos := make([]float64, len(levels))
	for i := range pos {
		pos[i] = float64(i)
	}
	return pos, levels, codes, nil
}
