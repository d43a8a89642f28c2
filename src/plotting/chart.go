package plotting

import (
	"image/color"
	"math"
)

// Kind names the chart type.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindCount   Kind = "count"
	KindBox     Kind = "box"
	KindHist    Kind = "hist"
)

// Kinds lists every chart type in a stable order.
var Kinds = []Kind{KindBar, KindLine, KindScatter, KindCount, KindBox, KindHist}

// ParseKind accepts the kind names plus the "_plot" spellings ("bar_plot").
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if s == string(k) || s == string(k)+"_plot" || s == string(k)+"plot" {
			return k, true
		}
	}
	return "", false
}

// Point is one x/y pair in data coordinates.
type Point struct{ X, Y float64 }

// Bar is one rectangle. X is its center, Width its extent in data units.
type Bar struct {
	X      float64
	Width  float64
	Height float64
	Label  string
}

// Container groups bars that share one category axis.
type Container struct {
	Name string
	Bars []Bar
}

// Series is a sequence of points drawn as a line, as markers, or both.
// NaN y values are gaps.
type Series struct {
	Name    string
	Points  []Point
	Line    bool
	Markers bool
}

// BoxStats is one box-and-whisker glyph.
type BoxStats struct {
	X        float64
	Label    string
	Min      float64 // lower whisker end
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64 // upper whisker end
	Outliers []float64
	Mean     float64
	N        int
}

// HAlign is horizontal text alignment relative to the anchor point.
type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

// Role tells renderers what an annotation stands for.
type Role int

const (
	RoleValue Role = iota
	RoleMean
)

// Annotation is a text label anchored at a data point and shifted by an offset in points
// (1/72 inch, positive Y is up).
type Annotation struct {
	Text    string
	X, Y    float64
	OffsetX float64
	OffsetY float64
	Align   HAlign
	Color   color.RGBA
	Role    Role
}

// MeanColor is used for box-plot mean labels so they stand apart from data marks.
var MeanColor = color.RGBA{R: 217, G: 0, B: 0, A: 255}

// TextColor is the default annotation color.
var TextColor = color.RGBA{R: 51, G: 51, B: 51, A: 255}

// Axis describes one axis. When Categories is set, category i sits at position i.
type Axis struct {
	Label      string
	Categories []string
}

// Chart is the handle returned by every constructor. It describes exactly one chart and
// is owned by the caller once returned.
type Chart struct {
	Kind        Kind
	Title       string
	Caption     string
	X           Axis
	Y           Axis
	Containers  []Container
	Series      []Series
	Boxes       []BoxStats
	Annotations []Annotation
}

// SetTitle sets the chart title.
func (c *Chart) SetTitle(title string) { c.Title = title }

// Annotate appends one annotation.
func (c *Chart) Annotate(a Annotation) { c.Annotations = append(c.Annotations, a) }

// Texts returns the annotation texts in insertion order.
func (c *Chart) Texts() []string {
	out := make([]string, len(c.Annotations))
	for i, a := range c.Annotations {
		out[i] = a.Text
	}
	return out
}

// Categorical reports whether the x axis is nominal.
func (c *Chart) Categorical() bool { return len(c.X.Categories) > 0 }

// Bounds returns the data extent of every mark and annotation anchor.
// Categorical charts span [-0.5, n-0.5] on x; bar charts always include y=0.
func (c *Chart) Bounds() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			xmin = math.Min(xmin, x)
			xmax = math.Max(xmax, x)
		}
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			ymin = math.Min(ymin, y)
			ymax = math.Max(ymax, y)
		}
	}
	for _, ct := range c.Containers {
		for _, b := range ct.Bars {
			grow(b.X-b.Width/2, 0)
			grow(b.X+b.Width/2, b.Height)
		}
	}
	for _, s := range c.Series {
		for _, p := range s.Points {
			if math.IsNaN(p.Y) {
				continue
			}
			grow(p.X, p.Y)
		}
	}
	for _, b := range c.Boxes {
		grow(b.X, b.Min)
		grow(b.X, b.Max)
		for _, o := range b.Outliers {
			grow(b.X, o)
		}
	}
	for _, a := range c.Annotations {
		grow(a.X, a.Y)
	}
	if c.Categorical() {
		xmin = math.Min(xmin, -0.5)
		xmax = math.Max(xmax, float64(len(c.X.Categories))-0.5)
	}
	if math.IsInf(xmin, 1) {
		xmin, xmax = 0, 1
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 0, 1
	}
	if xmax <= xmin {
		xmin, xmax = xmin-0.5, xmax+0.5
	}
	if ymax <= ymin {
		ymin, ymax = ymin-0.5, ymax+0.5
	}
	return xmin, xmax, ymin, ymax
}
