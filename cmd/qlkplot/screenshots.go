package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterhazi/quicklearnkit/src/config"
	"github.com/Masterhazi/quicklearnkit/src/dataset"
	"github.com/Masterhazi/quicklearnkit/src/plotting"
	"github.com/Masterhazi/quicklearnkit/src/render"
)

// RunScreenshotsMode renders one chart of every kind for df and writes them under outDir.
// Columns are picked automatically: the first text column groups, the first numeric column
// supplies values and the second numeric column (if any) is the x of line and scatter charts.
// bins applies to the histogram.
func RunScreenshotsMode(df *dataset.Frame, outDir string, bins int, r render.Renderer, s config.Settings, opts plotting.Options) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	value, err := df.FirstNumeric()
	if err != nil {
		return nil, err
	}
	group, xnum := value, value
	for _, n := range df.Names() {
		if col, _ := df.Column(n); col.Kind == dataset.Text {
			group = n
			break
		}
	}
	if nums := df.NumericNames(); len(nums) > 1 {
		xnum = nums[1]
	}

	fig := plotting.NewFigure(nil)
	if err := s.Apply(fig); err != nil {
		return nil, err
	}
	opts.NoShow = true
	toRender := []struct {
		kind plotting.Kind
		x, y string
	}{
		{plotting.KindBar, group, value},
		{plotting.KindLine, xnum, value},
		{plotting.KindScatter, xnum, value},
		{plotting.KindCount, group, ""},
		{plotting.KindBox, group, value},
		{plotting.KindHist, value, ""},
	}
	var paths []string
	for _, item := range toRender {
		o := opts
		if o.Title == "" {
			o.Title = fmt.Sprintf("%s: %s", item.kind, value)
		}
		c, err := fig.Plot(item.kind, df, item.x, item.y, bins, o)
		if err != nil {
			return paths, fmt.Errorf("%s chart: %w", item.kind, err)
		}
		outPath := filepath.Join(outDir, fmt.Sprintf("%s.%s", item.kind, r.Ext()))
		if err := render.WriteFile(outPath, c, r); err != nil {
			return paths, err
		}
		paths = append(paths, outPath)
	}
	return paths, nil
}
