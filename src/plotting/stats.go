package plotting

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrBadBins = errors.New("bin count must be at least 1")

// whiskerCoef is the IQR multiple at which box whiskers stop.
const whiskerCoef = 1.5

// boxStats summarizes vals (NaN already removed) as one box at position x.
func boxStats(x float64, label string, vals []float64) BoxStats {
	b := BoxStats{X: x, Label: label, N: len(vals)}
	if len(vals) == 0 {
		b.Min, b.Q1, b.Median, b.Q3, b.Max, b.Mean = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return b
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	b.Q1 = quantile(0.25, sorted)
	b.Median = quantile(0.5, sorted)
	b.Q3 = quantile(0.75, sorted)
	b.Mean = stat.Mean(sorted, nil)
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-whiskerCoef*iqr, b.Q3+whiskerCoef*iqr
	b.Min, b.Max = b.Q1, b.Q3
	for _, v := range sorted {
		if v >= lo {
			b.Min = math.Min(b.Min, v)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hi {
			b.Max = math.Max(b.Max, sorted[i])
			break
		}
	}
	for _, v := range sorted {
		if v < lo || v > hi {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b
}

// quantile interpolates linearly between the closest ranks at (n-1)p.
func quantile(p float64, sorted []float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// binCounts splits vals into bins equal-width bins over [min, max]. The last bin is closed,
// so the maximum lands in it. Constant data is spread over [v-0.5, v+0.5].
func binCounts(vals []float64, bins int) (edges, counts []float64, err error) {
	if bins < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrBadBins, bins)
	}
	sorted := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)
	lo, hi := 0.0, 1.0
	if len(sorted) > 0 {
		lo, hi = sorted[0], sorted[len(sorted)-1]
	}
	if hi <= lo {
		lo, hi = lo-0.5, hi+0.5
	}
	edges = floats.Span(make([]float64, bins+1), lo, hi)
	dividers := append([]float64(nil), edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts = stat.Histogram(nil, dividers, sorted, nil)
	return edges, counts, nil
}

// aggregateMean averages ys per code (codes < 0 and NaN ys are skipped).
// Levels without a valid y get NaN.
func aggregateMean(codes []int, ys []float64, levels int) []float64 {
	buckets := make([][]float64, levels)
	for i, k := range codes {
		if k < 0 || math.IsNaN(ys[i]) {
			continue
		}
		buckets[k] = append(buckets[k], ys[i])
	}
	out := make([]float64, levels)
	for k, b := range buckets {
		if len(b) == 0 {
			out[k] = math.NaN()
			continue
		}
		out[k] = stat.Mean(b, nil)
	}
	return out
}

func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
