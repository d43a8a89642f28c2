package plotting

import (
	"math"
	"strconv"
)

// Offsets in points between a mark and its label.
const (
	labelPadding    = 3.0
	meanLabelOffset = 10.0
)

// labelValues attaches a value label to every bar of every container and to every
// non-missing point of every series.
func labelValues(c *Chart, vf ValueFormat) {
	for _, ct := range c.Containers {
		for _, b := range ct.Bars {
			if math.IsNaN(b.Height) {
				continue
			}
			c.Annotate(barLabel(b, vf.Format(b.Height)))
		}
	}
	for _, s := range c.Series {
		for _, p := range s.Points {
			if math.IsNaN(p.Y) {
				continue
			}
			c.Annotate(Annotation{
				Text:    vf.Format(p.Y),
				X:       p.X,
				Y:       p.Y,
				OffsetY: labelPadding,
				Align:   AlignCenter,
				Color:   TextColor,
				Role:    RoleValue,
			})
		}
	}
}

// labelCounts labels each bar with its height as a plain integer.
func labelCounts(c *Chart) {
	for _, ct := range c.Containers {
		for _, b := range ct.Bars {
			c.Annotate(barLabel(b, strconv.FormatFloat(b.Height, 'f', -1, 64)))
		}
	}
}

// labelBins labels every non-empty histogram bin with its count.
func labelBins(c *Chart, vf ValueFormat) {
	for _, ct := range c.Containers {
		for _, b := range ct.Bars {
			if !(b.Height > 0) {
				continue
			}
			c.Annotate(barLabel(b, vf.Format(b.Height)))
		}
	}
}

// labelMeans puts "Mean: <v>" above position i for every mean that is not NaN.
func labelMeans(c *Chart, means []float64, vf ValueFormat) {
	for i, m := range means {
		if math.IsNaN(m) {
			continue
		}
		c.Annotate(Annotation{
			Text:    "Mean: " + vf.Format(m),
			X:       float64(i),
			Y:       m,
			OffsetY: meanLabelOffset,
			Align:   AlignCenter,
			Color:   MeanColor,
			Role:    RoleMean,
		})
	}
}

func barLabel(b Bar, text string) Annotation {
	off := labelPadding
	if b.Height < 0 {
		off = -labelPadding
	}
	return Annotation{
		Text:    text,
		X:       b.X,
		Y:       b.Height,
		OffsetY: off,
		Align:   AlignCenter,
		Color:   TextColor,
		Role:    RoleValue,
	}
}
