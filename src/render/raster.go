package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
)

// Raster renders charts with go-chart as PNG or SVG.
type Raster struct {
	Format string // png | svg
	Width  int
	Height int
}

// NewRaster validates the format and clamps the size.
func NewRaster(format string, width, height int) (*Raster, error) {
	if format != "png" && format != "svg" {
		return nil, fmt.Errorf("raster backend: %w: %q", ErrUnsupportedFormat, format)
	}
	w, h := ChartDimensions(width, height)
	return &Raster{Format: format, Width: w, Height: h}, nil
}

// Ext implements Renderer.
func (r *Raster) Ext() string { return r.Format }

var (
	barColor     = chart.ColorBlue
	lineColor    = chart.ColorBlue
	boxFillColor = drawing.Color{R: 160, G: 196, B: 230, A: 255}
	inkColor     = drawing.Color{R: 51, G: 51, B: 51, A: 255}
)

// Render implements Renderer. PNG output carries the chart caption.
func (r *Raster) Render(c *plotting.Chart, w io.Writer) error {
	if r.Format == "png" {
		img, err := r.Image(c)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	}
	ch := r.build(c)
	if c.Caption != "" {
		ch.Elements = append(ch.Elements, captionElement(c.Caption))
	}
	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", c.Kind, err)
	}
	return nil
}

// Image renders c to a decoded PNG image with the caption drawn on top.
func (r *Raster) Image(c *plotting.Chart) (image.Image, error) {
	ch := r.build(c)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s chart: %w", c.Kind, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s chart: %w", c.Kind, err)
	}
	return Caption(img, c.Caption), nil
}

func (r *Raster) build(c *plotting.Chart) chart.Chart {
	xmin, xmax, ymin, ymax := c.Bounds()
	zeroBased := len(c.Containers) > 0
	lo, hi := valueBounds(ymin, ymax, zeroBased, len(c.Annotations) > 0)

	xAxis := chart.XAxis{Name: c.X.Label}
	if c.Categorical() {
		xAxis.Ticks = categoryTicks(c.X.Categories)
	} else {
		a, b := NiceBounds(xmin, xmax)
		xAxis.Ticks = numericTicks(a, b, 8)
	}

	var series []chart.Series
	for _, ct := range c.Containers {
		series = append(series, barSeries{name: ct.Name, bars: ct.Bars, style: chart.Style{
			FillColor:   barColor.WithAlpha(200),
			StrokeColor: barColor,
			StrokeWidth: 1,
		}})
	}
	if len(c.Boxes) > 0 {
		series = append(series, boxSeries{boxes: c.Boxes, style: chart.Style{
			FillColor:   boxFillColor,
			StrokeColor: inkColor,
			StrokeWidth: 1.5,
		}})
	}
	for _, s := range c.Series {
		series = append(series, lineSeries(s)...)
	}
	// Labels go last so they are drawn over the marks. The series is always present so
	// go-chart has something to render even for charts without marks.
	series = append(series, labelSeries{annotations: c.Annotations, style: chart.Style{FontSize: 9}})

	padBottom := 28
	if c.Caption != "" {
		padBottom += captionHeight
	}
	return chart.Chart{
		Title:      c.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: c.Y.Label, Ticks: numericTicks(lo, hi, 6)},
		Series:     series,
	}
}

// lineSeries splits a series at NaN values into ContinuousSeries segments; go-chart has no
// notion of gaps.
func lineSeries(s plotting.Series) []chart.Series {
	style := chart.Style{StrokeColor: lineColor, StrokeWidth: 2}
	if !s.Line {
		style.StrokeWidth = chart.Disabled
	}
	if s.Markers {
		style.DotColor = lineColor
		style.DotWidth = 3
	}
	var out []chart.Series
	var xs, ys []float64
	flush := func() {
		if len(xs) > 0 {
			out = append(out, chart.ContinuousSeries{Name: s.Name, Style: style, XValues: xs, YValues: ys})
		}
		xs, ys = nil, nil
	}
	for _, p := range s.Points {
		if math.IsNaN(p.Y) {
			if s.Line {
				flush()
			}
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	flush()
	return out
}

func captionElement(text string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		r.SetFont(defaults.Font)
		r.SetFontSize(9)
		r.SetFontColor(inkColor)
		r.Text(text, 8, box.Bottom-4)
	}
}

// pixels converts a data point to canvas coordinates.
func pixels(box chart.Box, xr, yr chart.Range, x, y float64) (int, int) {
	return box.Left + xr.Translate(x), box.Bottom - yr.Translate(y)
}

// barSeries draws rectangles centered on Bar.X with Bar.Width in data units.
type barSeries struct {
	name  string
	bars  []plotting.Bar
	style chart.Style
}

func (bs barSeries) GetName() string { return bs.name }
func (bs barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bs barSeries) GetStyle() chart.Style { return bs.style }
func (bs barSeries) Validate() error { return nil }

func (bs barSeries) Render(r chart.Renderer, box chart.Box, xr, yr chart.Range, defaults chart.Style) {
	style := bs.style.InheritFrom(defaults)
	for _, b := range bs.bars {
		if math.IsNaN(b.Height) {
			continue
		}
		left, top := pixels(box, xr, yr, b.X-b.Width/2, math.Max(b.Height, 0))
		right, bottom := pixels(box, xr, yr, b.X+b.Width/2, math.Min(b.Height, 0))
		if bottom == top {
			continue
		}
		chart.Draw.Box(r, chart.Box{Top: top, Left: left, Right: right, Bottom: bottom}, style)
	}
}

// boxSeries draws box-and-whisker glyphs half a category wide.
type boxSeries struct {
	boxes []plotting.BoxStats
	style chart.Style
}

const boxWidth = 0.5

func (bs boxSeries) GetName() string { return "boxes" }
func (bs boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bs boxSeries) GetStyle() chart.Style { return bs.style }
func (bs boxSeries) Validate() error { return nil }

func (bs boxSeries) Render(r chart.Renderer, box chart.Box, xr, yr chart.Range, defaults chart.Style) {
	style := bs.style.InheritFrom(defaults)
	for _, b := range bs.boxes {
		if b.N == 0 {
			continue
		}
		left, q3 := pixels(box, xr, yr, b.X-boxWidth/2, b.Q3)
		right, q1 := pixels(box, xr, yr, b.X+boxWidth/2, b.Q1)
		mid, lo := pixels(box, xr, yr, b.X, b.Min)
		_, hi := pixels(box, xr, yr, b.X, b.Max)
		_, med := pixels(box, xr, yr, b.X, b.Median)
		capL, _ := pixels(box, xr, yr, b.X-boxWidth/4, 0)
		capR, _ := pixels(box, xr, yr, b.X+boxWidth/4, 0)

		r.SetStrokeColor(style.StrokeColor)
		r.SetStrokeWidth(style.StrokeWidth)
		segment(r, mid, q1, mid, lo)
		segment(r, mid, q3, mid, hi)
		segment(r, capL, lo, capR, lo)
		segment(r, capL, hi, capR, hi)
		if q1 == q3 {
			segment(r, left, q1, right, q1)
		} else {
			chart.Draw.Box(r, chart.Box{Top: q3, Left: left, Right: right, Bottom: q1}, style)
		}
		r.SetStrokeColor(inkColor)
		r.SetStrokeWidth(2)
		segment(r, left, med, right, med)

		r.SetStrokeWidth(1)
		r.SetFillColor(drawing.ColorTransparent)
		for _, o := range b.Outliers {
			_, oy := pixels(box, xr, yr, b.X, o)
			r.Circle(3, mid, oy)
			r.Stroke()
		}
	}
}

func segment(r chart.Renderer, x0, y0, x1, y1 int) {
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// labelSeries draws annotations with their point offsets converted at the renderer's DPI.
type labelSeries struct {
	annotations []plotting.Annotation
	style       chart.Style
}

func (ls labelSeries) GetName() string { return "labels" }
func (ls labelSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (ls labelSeries) GetStyle() chart.Style { return ls.style }
func (ls labelSeries) Validate() error { return nil }

func (ls labelSeries) Render(r chart.Renderer, box chart.Box, xr, yr chart.Range, defaults chart.Style) {
	style := ls.style.InheritFrom(defaults)
	scale := r.GetDPI() / 72
	r.SetFont(style.Font)
	r.SetFontSize(style.FontSize)
	for _, a := range ls.annotations {
		r.SetFontColor(drawing.Color{R: a.Color.R, G: a.Color.G, B: a.Color.B, A: a.Color.A})
		px, py := pixels(box, xr, yr, a.X, a.Y)
		tb := r.MeasureText(a.Text)
		x := px + int(math.Round(a.OffsetX*scale))
		switch a.Align {
		case plotting.AlignCenter:
			x -= tb.Width() / 2
		case plotting.AlignRight:
			x -= tb.Width()
		}
		off := int(math.Round(a.OffsetY * scale))
		y := py - off
		if off < 0 {
			// below the anchor: the text hangs from the offset point
			y += tb.Height()
		}
		r.Text(a.Text, x, y)
	}
}
