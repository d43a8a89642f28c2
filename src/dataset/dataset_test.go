package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleFrame(t *testing.T) *Frame {
	t.Helper()
	f := New()
	if err := f.AddText("category", []string{"A", "B", "A", "B"}); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if err := f.AddNumeric("value", []float64{10, 20, 30, 40}); err != nil {
		t.Fatalf("add value: %v", err)
	}
	return f
}

func TestAddColumn_LengthMismatchAndDuplicate(t *testing.T) {
	f := sampleFrame(t)
	if err := f.AddNumeric("short", []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if err := f.AddNumeric("value", []float64{1, 2, 3, 4}); !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("expected ErrDuplicateColumn, got %v", err)
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{"category", "value"}) {
		t.Fatalf("names mutated: %v", got)
	}
}

func TestColumnLookupErrors(t *testing.T) {
	f := sampleFrame(t)
	if _, err := f.Column("nope"); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	if _, err := f.Numeric("category"); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
	if !strings.Contains(errString(f.Numeric("category")), `"category"`) {
		t.Fatalf("error should name the column")
	}
}

func errString(_ []float64, err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestGroupMean_AppearanceOrder(t *testing.T) {
	f := New()
	_ = f.AddText("g", []string{"b", "a", "b", "", "a"})
	_ = f.AddNumeric("v", []float64{1, 10, 3, 100, math.NaN()})
	groups, err := f.GroupMean("g", "v")
	if err != nil {
		t.Fatalf("GroupMean: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("want 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "b" || groups[0].Mean != 2 || groups[0].Count != 2 {
		t.Fatalf("group b mismatch: %+v", groups[0])
	}
	if groups[1].Key != "a" || groups[1].Mean != 10 || groups[1].Count != 1 {
		t.Fatalf("group a mismatch: %+v", groups[1])
	}
}

func TestGroupMean_EmptyGroupIsNaN(t *testing.T) {
	f := New()
	_ = f.AddText("g", []string{"x", "y"})
	_ = f.AddNumeric("v", []float64{1, math.NaN()})
	groups, err := f.GroupMean("g", "v")
	if err != nil {
		t.Fatalf("GroupMean: %v", err)
	}
	if !math.IsNaN(groups[1].Mean) || groups[1].Count != 0 {
		t.Fatalf("expected NaN mean for empty group, got %+v", groups[1])
	}
}

func TestLevels_NumericSorted(t *testing.T) {
	f := New()
	_ = f.AddNumeric("n", []float64{3, 1, math.NaN(), 2.5, 1})
	levels, codes, err := f.Codes("n")
	if err != nil {
		t.Fatalf("Codes: %v", err)
	}
	if !reflect.DeepEqual(levels, []string{"1", "2.5", "3"}) {
		t.Fatalf("levels = %v", levels)
	}
	if !reflect.DeepEqual(codes, []int{2, 0, -1, 1, 0}) {
		t.Fatalf("codes = %v", codes)
	}
}

func TestCountsAndMean(t *testing.T) {
	f := sampleFrame(t)
	counts, err := f.Counts("category")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts[0].Count != 2 || counts[1].Count != 2 {
		t.Fatalf("counts = %+v", counts)
	}
	m, err := f.Mean("value")
	if err != nil || m != 25 {
		t.Fatalf("mean = %v err=%v", m, err)
	}
}

func TestFirstNumeric(t *testing.T) {
	f := sampleFrame(t)
	if n, err := f.FirstNumeric(); err != nil || n != "value" {
		t.Fatalf("FirstNumeric = %q, %v", n, err)
	}
	only := New()
	_ = only.AddText("s", []string{"a"})
	if _, err := only.FirstNumeric(); !errors.Is(err, ErrNoNumericColumn) {
		t.Fatalf("expected ErrNoNumericColumn, got %v", err)
	}
}

func TestReadCSV_InfersKindsAndMissing(t *testing.T) {
	in := "category,value,note\nA,10,x\nB,NA,\nA,30,y\n"
	f, err := ReadCSV(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	vals, err := f.Numeric("value")
	if err != nil {
		t.Fatalf("value should be numeric: %v", err)
	}
	if vals[0] != 10 || !math.IsNaN(vals[1]) || vals[2] != 30 {
		t.Fatalf("values = %v", vals)
	}
	c, _ := f.Column("note")
	if c.Kind != Text || !c.Missing(1) {
		t.Fatalf("note column = %+v", c)
	}
}

func TestReadJSONL_KeyOrderAndTypes(t *testing.T) {
	in := `{"city":"Oslo","temp":3.5}
{"city":"Rome","temp":null,"wind":4}

{"temp":11,"city":"Oslo"}
`
	f, err := ReadJSONL(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{"city", "temp", "wind"}) {
		t.Fatalf("names = %v", got)
	}
	temp, err := f.Numeric("temp")
	if err != nil {
		t.Fatalf("temp numeric: %v", err)
	}
	if temp[0] != 3.5 || !math.IsNaN(temp[1]) || temp[2] != 11 {
		t.Fatalf("temp = %v", temp)
	}
	wind, _ := f.Numeric("wind")
	if !math.IsNaN(wind[0]) || wind[1] != 4 {
		t.Fatalf("wind = %v", wind)
	}
}

func TestLoadFile_ByExtension(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "d.tsv")
	if err := os.WriteFile(tsv, []byte("a\tb\n1\tx\n2\ty\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := LoadFile(tsv)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("rows = %d", f.Len())
	}
	bad := filepath.Join(dir, "d.xlsx")
	_ = os.WriteFile(bad, []byte("x"), 0o644)
	if _, err := LoadFile(bad); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}
