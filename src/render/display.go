package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
)

// FileDisplay writes every shown chart to a numbered file <prefix>_<nnn>_<kind>.<ext> in Dir.
type FileDisplay struct {
	Dir      string
	Prefix   string
	Renderer Renderer

	mu    sync.Mutex
	seq   int
	paths []string
}

// NewFileDisplay returns a display writing into dir. An empty prefix becomes "chart".
func NewFileDisplay(dir, prefix string, r Renderer) *FileDisplay {
	if prefix == "" {
		prefix = "chart"
	}
	return &FileDisplay{Dir: dir, Prefix: prefix, Renderer: r}
}

// Show implements plotting.Display.
func (d *FileDisplay) Show(c *plotting.Chart) error {
	d.mu.Lock()
	d.seq++
	name := fmt.Sprintf("%s_%03d_%s.%s", d.Prefix, d.seq, c.Kind, d.Renderer.Ext())
	d.mu.Unlock()

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if err := WriteFile(path, c, d.Renderer); err != nil {
		return err
	}
	d.mu.Lock()
	d.paths = append(d.paths, path)
	d.mu.Unlock()
	plotting.Infof("saved %s", path)
	return nil
}

// Paths returns the files written so far, in order.
func (d *FileDisplay) Paths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.paths...)
}

// WriteFile renders c into path.
func WriteFile(path string, c *plotting.Chart, r Renderer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := r.Render(c, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriterDisplay renders every shown chart to one writer.
type WriterDisplay struct {
	W        io.Writer
	Renderer Renderer
}

// Show implements plotting.Display.
func (d WriterDisplay) Show(c *plotting.Chart) error {
	return d.Renderer.Render(c, d.W)
}
