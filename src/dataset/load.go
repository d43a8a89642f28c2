package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrUnsupportedFile = errors.New("unsupported dataset file")

var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

func isMissing(s string) bool { return missingTokens[strings.ToLower(strings.TrimSpace(s))] }

// FromRecords builds a frame from a header and string cells. A column becomes numeric
// when every non-missing cell parses as a float.
func FromRecords(header []string, rows [][]string) (*Frame, error) {
	f := New()
	for j, name := range header {
		name = strings.TrimSpace(name)
		cells := make([]string, len(rows))
		for i, r := range rows {
			if j < len(r) {
				cells[i] = strings.TrimSpace(r[j])
			}
		}
		if nums, ok := parseNumbers(cells); ok {
			if err := f.AddNumeric(name, nums); err != nil {
				return nil, err
			}
			continue
		}
		for i, s := range cells {
			if isMissing(s) {
				cells[i] = ""
			}
		}
		if err := f.AddText(name, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseNumbers(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, s := range cells {
		if isMissing(s) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// ReadCSV reads a delimited table whose first record is the header.
func ReadCSV(r io.Reader, comma rune) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return FromRecords(header, rows)
}

// ReadJSONL reads one JSON object per line. Keys become columns in first-seen order;
// numbers make numeric columns, anything else is kept as text.
func ReadJSONL(r io.Reader) (*Frame, error) {
	var names []string
	seen := map[string]bool{}
	var records []map[string]interface{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := strings.TrimSpace(sc.Text())
		if b == "" {
			continue
		}
		keys, rec, err := decodeObject(b)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(names))
		for j, n := range names {
			row[j] = jsonCell(rec[n])
		}
		rows[i] = row
	}
	return FromRecords(names, rows)
}

// decodeObject decodes a flat JSON object keeping its key order.
func decodeObject(b string) ([]string, map[string]interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected JSON object")
	}
	var keys []string
	rec := map[string]interface{}{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = v
	}
	return keys, rec, nil
}

func jsonCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// LoadFile reads a dataset, picking the parser from the file extension
// (.csv, .tsv, .jsonl, .ndjson).
func LoadFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	var f *Frame
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err = ReadCSV(fh, ',')
	case ".tsv":
		f, err = ReadCSV(fh, '\t')
	case ".jsonl", ".ndjson":
		f, err = ReadJSONL(fh)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return f, nil
}
