package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
)

// Vector renders charts with gonum/plot. Lengths are vg points; the vg backends also
// cover png/jpg/tif.
type Vector struct {
	Format string // svg | pdf | eps | png | jpg | tif
	Width  vg.Length
	Height vg.Length
}

var vectorFormats = map[string]bool{
	"svg": true, "pdf": true, "eps": true,
	"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
}

// NewVector validates the format. Sizes are pixels at 96 dpi, clamped like the raster backend.
func NewVector(format string, width, height int) (*Vector, error) {
	if !vectorFormats[format] {
		return nil, fmt.Errorf("vector backend: %w: %q", ErrUnsupportedFormat, format)
	}
	w, h := ChartDimensions(width, height)
	px := vg.Inch / 96
	return &Vector{Format: format, Width: vg.Length(w) * px, Height: vg.Length(h) * px}, nil
}

// Ext implements Renderer.
func (v *Vector) Ext() string { return v.Format }

var (
	vecBarColor  = color.RGBA{R: 0, G: 116, B: 217, A: 200}
	vecLineColor = color.RGBA{R: 0, G: 116, B: 217, A: 255}
	vecBoxColor  = color.RGBA{R: 160, G: 196, B: 230, A: 255}
)

// Render implements Renderer.
func (v *Vector) Render(c *plotting.Chart, w io.Writer) error {
	p, err := v.Plot(c)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(v.Width, v.Height, v.Format)
	if err != nil {
		return fmt.Errorf("vector writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s chart: %w", c.Kind, err)
	}
	return nil
}

// Plot converts c into a gonum plot.
func (v *Vector) Plot(c *plotting.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.X.Label
	p.Y.Label.Text = c.Y.Label
	if c.Caption != "" {
		p.X.Label.Text = joinLabel(c.X.Label, c.Caption)
	}

	slots := len(c.X.Categories)
	for _, ct := range c.Containers {
		if c.Kind == plotting.KindHist {
			p.Add(histogram(ct.Bars))
			continue
		}
		bc, err := barChart(ct.Bars, v.barWidth(slots))
		if err != nil {
			return nil, fmt.Errorf("%s bars: %w", c.Kind, err)
		}
		p.Add(bc)
	}
	for _, b := range c.Boxes {
		if b.N == 0 {
			continue
		}
		bp, err := boxPlot(b, v.barWidth(slots)*0.6)
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", b.Label, err)
		}
		p.Add(bp)
	}
	for _, s := range c.Series {
		if err := addSeries(p, s); err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
	}
	for _, a := range c.Annotations {
		l, err := label(a)
		if err != nil {
			return nil, err
		}
		p.Add(l)
	}

	xmin, xmax, ymin, ymax := c.Bounds()
	if c.Categorical() {
		p.NominalX(c.X.Categories...)
		p.X.Min, p.X.Max = -0.5, float64(slots)-0.5
	} else {
		p.X.Min, p.X.Max = NiceBounds(xmin, xmax)
	}
	p.Y.Min, p.Y.Max = valueBounds(ymin, ymax, len(c.Containers) > 0, len(c.Annotations) > 0)
	return p, nil
}

// barWidth approximates 80% of a category slot on the data area.
func (v *Vector) barWidth(slots int) vg.Length {
	if slots < 1 {
		slots = 1
	}
	return v.Width * 0.8 * 0.8 / vg.Length(slots)
}

func barChart(bars []plotting.Bar, w vg.Length) (*plotter.BarChart, error) {
	vals := make(plotter.Values, len(bars))
	for i, b := range bars {
		if !math.IsNaN(b.Height) {
			vals[i] = b.Height
		}
	}
	bc, err := plotter.NewBarChart(vals, w)
	if err != nil {
		return nil, err
	}
	bc.Color = vecBarColor
	bc.LineStyle.Width = vg.Length(0)
	if len(bars) > 0 {
		bc.XMin = bars[0].X
	}
	return bc, nil
}

func histogram(bars []plotting.Bar) *plotter.Histogram {
	h := &plotter.Histogram{FillColor: vecBarColor, LineStyle: plotter.DefaultLineStyle}
	for _, b := range bars {
		h.Bins = append(h.Bins, plotter.HistogramBin{Min: b.X - b.Width/2, Max: b.X + b.Width/2, Weight: b.Height})
	}
	if len(bars) > 0 {
		h.Width = bars[0].Width
	}
	return h
}

// boxPlot builds a gonum box and overwrites its summary with ours so both backends agree.
func boxPlot(b plotting.BoxStats, w vg.Length) (*plotter.BoxPlot, error) {
	vals := append(plotter.Values{b.Min, b.Q1, b.Median, b.Q3, b.Max}, b.Outliers...)
	bp, err := plotter.NewBoxPlot(w, b.X, vals)
	if err != nil {
		return nil, err
	}
	bp.Median, bp.Quartile1, bp.Quartile3 = b.Median, b.Q1, b.Q3
	bp.AdjLow, bp.AdjHigh = b.Min, b.Max
	bp.Outside = bp.Outside[:0]
	for i := range b.Outliers {
		bp.Outside = append(bp.Outside, 5+i)
	}
	bp.FillColor = vecBoxColor
	return bp, nil
}

// addSeries adds a line broken at NaN values plus its markers.
func addSeries(p *plot.Plot, s plotting.Series) error {
	var seg plotter.XYs
	flush := func() error {
		if len(seg) == 0 {
			return nil
		}
		defer func() { seg = nil }()
		if !s.Line {
			sc, err := plotter.NewScatter(seg)
			if err != nil {
				return err
			}
			sc.GlyphStyle.Color = vecLineColor
			p.Add(sc)
			return nil
		}
		l, pts, err := plotter.NewLinePoints(seg)
		if err != nil {
			return err
		}
		l.Color = vecLineColor
		l.Width = vg.Points(1.5)
		p.Add(l)
		if s.Markers {
			pts.GlyphStyle.Color = vecLineColor
			p.Add(pts)
		}
		return nil
	}
	for _, pt := range s.Points {
		if math.IsNaN(pt.Y) || math.IsNaN(pt.X) {
			if s.Line {
				if err := flush(); err != nil {
					return err
				}
			}
			continue
		}
		seg = append(seg, plotter.XY{X: pt.X, Y: pt.Y})
	}
	return flush()
}

func label(a plotting.Annotation) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: a.X, Y: a.Y}},
		Labels: []string{a.Text},
	})
	if err != nil {
		return nil, fmt.Errorf("label %q: %w", a.Text, err)
	}
	st := &l.TextStyle[0]
	st.Color = a.Color
	st.YAlign = text.YBottom
	if a.OffsetY < 0 {
		st.YAlign = text.YTop
	}
	switch a.Align {
	case plotting.AlignLeft:
		st.XAlign = text.XLeft
	case plotting.AlignRight:
		st.XAlign = text.XRight
	default:
		st.XAlign = text.XCenter
	}
	l.Offset = vg.Point{X: vg.Points(a.OffsetX), Y: vg.Points(a.OffsetY)}
	return l, nil
}

func joinLabel(axis, caption string) string {
	if axis == "" {
		return caption
	}
	return axis + "\n" + caption
}
