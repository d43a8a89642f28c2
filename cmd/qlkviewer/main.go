package main

import (
	"flag"
	"fmt"
	"image"
	png "image/png"
	"path/filepath"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Masterhazi/quicklearnkit/src/dataset"
	"github.com/Masterhazi/quicklearnkit/src/plotting"
	"github.com/Masterhazi/quicklearnkit/src/render"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string
	df       *dataset.Frame

	kind       plotting.Kind
	x, y       string
	bins       int
	showValues bool
	format     string

	fig       *plotting.Figure
	raster    *render.Raster
	imgCanvas *canvas.Image
	status    *widget.Label
}

// Show implements plotting.Display by rendering the chart into the window.
func (state *uiState) Show(c *plotting.Chart) error {
	w, h := chartSize(state)
	state.raster.Width, state.raster.Height = w, h
	img, err := state.raster.Image(c)
	if err != nil {
		return err
	}
	state.imgCanvas.Image = img
	state.imgCanvas.SetMinSize(fyne.NewSize(float32(w), float32(h)))
	state.imgCanvas.Refresh()
	return nil
}

func main() {
	var fileFlag string
	var logLevel string
	flag.StringVar(&fileFlag, "file", "", "Dataset to open (.csv, .tsv, .jsonl)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	plotting.SetLogLevel(logLevel)

	a := app.NewWithID("com.quicklearnkit.viewer")
	w := a.NewWindow("quicklearnkit viewer")
	w.Resize(fyne.NewSize(1100, 700))

	raster, err := render.NewRaster("png", 0, 0)
	if err != nil {
		plotting.Errorf("raster: %v", err)
		return
	}
	state := &uiState{
		app:    a,
		window: w,
		kind:   plotting.KindBar,
		bins:   10,
		raster: raster,
		status: widget.NewLabel(""),
	}
	state.showValues = a.Preferences().BoolWithFallback("showValues", true)
	state.fig = plotting.NewFigure(state)
	state.imgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.imgCanvas.FillMode = canvas.ImageFillContain

	kinds := make([]string, len(plotting.Kinds))
	for i, k := range plotting.Kinds {
		kinds[i] = string(k)
	}
	kindSelect := widget.NewSelect(kinds, func(v string) {
		if k, ok := plotting.ParseKind(v); ok {
			state.kind = k
			redraw(state)
		}
	})
	kindSelect.Selected = string(state.kind)

	xSelect := widget.NewSelect(nil, func(v string) { state.x = v; redraw(state) })
	ySelect := widget.NewSelect(nil, func(v string) { state.y = v; redraw(state) })

	valuesChk := widget.NewCheck("Values", func(b bool) {
		state.showValues = b
		a.Preferences().SetBool("showValues", b)
		redraw(state)
	})
	valuesChk.SetChecked(state.showValues)

	fmtEntry := widget.NewEntry()
	fmtEntry.SetPlaceHolder("{:.2f}")
	fmtEntry.OnSubmitted = func(s string) { state.format = strings.TrimSpace(s); redraw(state) }

	binsEntry := widget.NewEntry()
	binsEntry.SetText("10")
	binsEntry.OnSubmitted = func(s string) {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
			state.bins = n
			redraw(state)
		}
	}

	openBtn := widget.NewButton("Open…", func() {
		dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			rc.Close()
			loadFile(state, path, xSelect, ySelect)
		}, w).Show()
	})
	exportBtn := widget.NewButton("Export PNG", func() {
		exportChartPNG(state, state.imgCanvas, fmt.Sprintf("%s.png", state.kind))
	})

	top := container.NewHBox(openBtn,
		widget.NewLabel("Kind"), kindSelect,
		widget.NewLabel("X"), xSelect,
		widget.NewLabel("Y"), ySelect,
		valuesChk,
		widget.NewLabel("Format"), fmtEntry,
		widget.NewLabel("Bins"), binsEntry,
		exportBtn,
	)
	w.SetContent(container.NewBorder(top, state.status, nil, nil, container.NewScroll(state.imgCanvas)))

	if fileFlag != "" {
		loadFile(state, fileFlag, xSelect, ySelect)
	}
	w.ShowAndRun()
}

// loadFile reads a dataset and preselects the first text column for x and the first numeric
// column for y.
func loadFile(state *uiState, path string, xSelect, ySelect *widget.Select) {
	df, err := dataset.LoadFile(path)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.df = df
	state.filePath = path
	state.window.SetTitle("quicklearnkit viewer: " + filepath.Base(path))
	names := df.Names()
	xSelect.Options = names
	ySelect.Options = append([]string{""}, df.NumericNames()...)
	state.x, state.y = "", ""
	for _, n := range names {
		if col, _ := df.Column(n); col.Kind == dataset.Text {
			state.x = n
			break
		}
	}
	if first, err := df.FirstNumeric(); err == nil {
		state.y = first
		if state.x == "" {
			state.x = first
		}
	}
	xSelect.Selected, ySelect.Selected = state.x, state.y
	xSelect.Refresh()
	ySelect.Refresh()
	redraw(state)
}

func redraw(state *uiState) {
	if state.df == nil || state.imgCanvas == nil {
		return
	}
	opts := plotting.Options{
		Title:      fmt.Sprintf("%s: %s", state.kind, filepath.Base(state.filePath)),
		ShowValues: plotting.ToggleOf(state.showValues),
		Format:     state.format,
	}
	c, err := state.fig.Plot(state.kind, state.df, state.x, state.y, state.bins, opts)
	if err != nil {
		state.status.SetText(err.Error())
		plotting.Warnf("[viewer] %s chart: %v", state.kind, err)
		return
	}
	state.status.SetText(fmt.Sprintf("%d rows, %d labels", state.df.Len(), len(c.Annotations)))
}

// chartSize computes a chart size based on the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return render.ChartDimensions(0, 0)
	}
	sz := state.window.Canvas().Size()
	if sz.Width < 100 {
		return render.ChartDimensions(0, 0)
	}
	return render.ChartDimensions(int(sz.Width*0.95)-12, 0)
}

func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil || img == nil || img.Image == nil || state.df == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img.Image); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}
