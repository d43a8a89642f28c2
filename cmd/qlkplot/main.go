package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterhazi/quicklearnkit/src/config"
	"github.com/Masterhazi/quicklearnkit/src/dataset"
	"github.com/Masterhazi/quicklearnkit/src/plotting"
	"github.com/Masterhazi/quicklearnkit/src/render"
)

type cli struct {
	file        string
	kind        string
	x, y        string
	bins        int
	title       string
	showValues  plotting.Toggle
	showSet     bool
	format      string
	out         string
	configPath  string
	logLevel    string
	screenshots string
	labels      bool
	stdout      io.Writer
}

func main() {
	c, err := parseFlags(os.Args[1:], os.Stdout)
	if err == nil {
		err = c.run()
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads the command line; stray positional arguments are an error.
func parseFlags(args []string, stdout io.Writer) (cli, error) {
	c := cli{stdout: stdout}
	fs := flag.NewFlagSet("qlkplot", flag.ContinueOnError)
	fs.StringVar(&c.file, "file", "", "Dataset to plot (.csv, .tsv, .jsonl)")
	fs.StringVar(&c.kind, "kind", "bar", "Chart kind: "+kindList())
	fs.StringVar(&c.x, "x", "", "Column for the x axis / grouping")
	fs.StringVar(&c.y, "y", "", "Column for the values")
	fs.IntVar(&c.bins, "bins", 10, "Histogram bin count")
	fs.StringVar(&c.title, "title", "", "Chart title")
	fs.Var(&c.showValues, "show-values", "Annotate values (yes/no)")
	fs.StringVar(&c.format, "fmt", "", "Value label format, e.g. {:.2f}")
	fs.StringVar(&c.out, "out", "", "Output directory (overrides config)")
	fs.StringVar(&c.configPath, "config", "", "YAML settings file")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&c.screenshots, "screenshots", "", "Render every chart kind for the dataset into this directory")
	fs.BoolVar(&c.labels, "labels", false, "Print the annotation table")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if fs.NArg() > 0 {
		return c, fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "show-values" {
			c.showSet = true
		}
	})
	return c, nil
}

func kindList() string {
	names := make([]string, len(plotting.Kinds))
	for i, k := range plotting.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (c cli) settings() (config.Settings, error) {
	s := config.Default()
	if c.configPath != "" {
		var err error
		if s, err = config.Load(c.configPath); err != nil {
			return s, err
		}
	}
	if c.logLevel != "" {
		s.LogLevel = c.logLevel
	}
	if c.out != "" {
		s.OutDir = c.out
	}
	if c.showSet {
		s.ShowValues = c.showValues
	}
	return s, nil
}

func (c cli) run() error {
	s, err := c.settings()
	if err != nil {
		return err
	}
	plotting.SetLogLevel(s.LogLevel)
	if c.file == "" {
		return fmt.Errorf("-file is required")
	}
	df, err := dataset.LoadFile(c.file)
	if err != nil {
		return err
	}
	plotting.Debugf("loaded %s: %d rows, columns %v", c.file, df.Len(), df.Names())
	r, err := s.Renderer()
	if err != nil {
		return err
	}
	opts := plotting.Options{Title: c.title, ShowValues: s.ShowValues, Format: c.format}

	if c.screenshots != "" {
		paths, err := RunScreenshotsMode(df, c.screenshots, c.bins, r, s, opts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(c.stdout, p)
		}
		return nil
	}

	kind, ok := plotting.ParseKind(c.kind)
	if !ok {
		return fmt.Errorf("unknown chart kind %q (want one of %s)", c.kind, kindList())
	}
	display := render.NewFileDisplay(s.OutDir, s.Prefix, r)
	fig := plotting.NewFigure(display)
	if err := s.Apply(fig); err != nil {
		return err
	}
	ch, err := fig.Plot(kind, df, c.x, c.y, c.bins, opts)
	if err != nil {
		return err
	}
	if c.labels {
		printAnnotations(c.stdout, ch)
	}
	for _, p := range display.Paths() {
		fmt.Fprintln(c.stdout, p)
	}
	return nil
}
