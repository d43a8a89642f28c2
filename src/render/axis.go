package render

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
)

// Default output size in pixels.
const (
	DefaultWidth  = 1100
	DefaultHeight = 340
)

// ChartDimensions applies the width/height clamp rules used for charts.
// A zero width selects the default; a zero height keeps a ~3:1 aspect ratio.
func ChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w == 0 {
		w = DefaultWidth
	}
	if w < 320 {
		w = 320
	}
	if rawH > 0 {
		return w, rawH
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// NiceBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func NiceBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	a := min - pad
	b := max + pad
	// round to steps of about a fifth of the span
	mag := math.Pow(10, math.Floor(math.Log10(span/5)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// NumericTicks generates about n tick positions covering [min,max] using the 1,2,2.5,5 pattern.
func NumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// FormatTick provides a compact axis label.
func FormatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// numericTicks converts NumericTicks output to go-chart ticks. go-chart derives the axis
// range from the first and last tick.
func numericTicks(min, max float64, n int) []chart.Tick {
	vals := NumericTicks(min, max, n)
	ticks := make([]chart.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = chart.Tick{Value: v, Label: FormatTick(v)}
	}
	return ticks
}

// categoryTicks labels positions 0..n-1 and pins the axis to [-0.5, n-0.5] with unlabeled ends.
func categoryTicks(names []string) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(names)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, n := range names {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: n})
	}
	return append(ticks, chart.Tick{Value: float64(len(names)) - 0.5})
}

// valueBounds returns the y range to draw: nice bounds around the data, anchored at zero for
// bar-like charts, with headroom for labels placed above the marks.
func valueBounds(ymin, ymax float64, zeroBased, labeled bool) (float64, float64) {
	if labeled {
		ymax += (ymax - ymin) * 0.08
	}
	lo, hi := NiceBounds(ymin, ymax)
	if zeroBased && ymin >= 0 {
		lo = 0
	}
	return lo, hi
}
