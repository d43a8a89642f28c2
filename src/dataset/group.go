package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Group is one level of a grouping column with its aggregate.
type Group struct {
	Key   string
	Mean  float64
	Count int
}

// Levels returns the distinct non-missing values of a column as category names.
// Text columns keep first-appearance order; numeric columns are sorted ascending.
func (f *Frame) Levels(name string) ([]string, error) {
	levels, _, err := f.Codes(name)
	return levels, err
}

// Codes returns the levels of a column plus, for each row, the index of its level
// (-1 when the cell is missing).
func (f *Frame) Codes(name string) ([]string, []int, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, nil, err
	}
	if c.Kind == Numeric {
		vals, codes := numericCodes(c.Num)
		levels := make([]string, len(vals))
		for i, v := range vals {
			levels[i] = formatLevel(v)
		}
		return levels, codes, nil
	}
	codes := make([]int, c.Len())
	index := map[string]int{}
	var levels []string
	for i, s := range c.Str {
		if s == "" {
			codes[i] = -1
			continue
		}
		k, ok := index[s]
		if !ok {
			k = len(levels)
			index[s] = k
			levels = append(levels, s)
		}
		codes[i] = k
	}
	return levels, codes, nil
}

// Unique returns the sorted distinct values of a numeric column plus, for each row,
// the index of its value (-1 for NaN).
func (f *Frame) Unique(name string) ([]float64, []int, error) {
	vals, err := f.Numeric(name)
	if err != nil {
		return nil, nil, err
	}
	uniq, codes := numericCodes(vals)
	return uniq, codes, nil
}

func numericCodes(num []float64) ([]float64, []int) {
	seen := map[float64]struct{}{}
	var vals []float64
	for _, v := range num {
		if math.IsNaN(v) {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			vals = append(vals, v)
		}
	}
	sort.Float64s(vals)
	index := make(map[float64]int, len(vals))
	for i, v := range vals {
		index[v] = i
	}
	codes := make([]int, len(num))
	for i, v := range num {
		if math.IsNaN(v) {
			codes[i] = -1
			continue
		}
		codes[i] = index[v]
	}
	return vals, codes
}

// GroupMean averages value within each level of by. Groups come back in Levels order.
// NaN values are skipped; a group without any valid value has a NaN mean.
func (f *Frame) GroupMean(by, value string) ([]Group, error) {
	levels, codes, err := f.Codes(by)
	if err != nil {
		return nil, err
	}
	vals, err := f.Numeric(value)
	if err != nil {
		return nil, err
	}
	buckets := make([][]float64, len(levels))
	for i, k := range codes {
		if k < 0 || math.IsNaN(vals[i]) {
			continue
		}
		buckets[k] = append(buckets[k], vals[i])
	}
	out := make([]Group, len(levels))
	for k, key := range levels {
		out[k] = Group{Key: key, Mean: mean(buckets[k]), Count: len(buckets[k])}
	}
	return out, nil
}

// Counts returns the number of rows in each level of by, in Levels order.
func (f *Frame) Counts(by string) ([]Group, error) {
	levels, codes, err := f.Codes(by)
	if err != nil {
		return nil, err
	}
	out := make([]Group, len(levels))
	for k, key := range levels {
		out[k] = Group{Key: key, Mean: math.NaN()}
	}
	for _, k := range codes {
		if k >= 0 {
			out[k].Count++
		}
	}
	return out, nil
}

// Mean is the NaN-skipping mean of a numeric column (NaN when nothing is valid).
func (f *Frame) Mean(name string) (float64, error) {
	vals, err := f.Valid(name)
	if err != nil {
		return 0, err
	}
	return mean(vals), nil
}

// Valid returns the non-missing values of a numeric column.
func (f *Frame) Valid(name string) ([]float64, error) {
	vals, err := f.Numeric(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}
