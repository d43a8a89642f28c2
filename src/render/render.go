// Package render turns plotting charts into images and provides the displays the
// builder shows charts on.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// Renderer writes one chart as an encoded image.
type Renderer interface {
	Render(c *plotting.Chart, w io.Writer) error
	// Ext is the file extension of the output, without the dot.
	Ext() string
}

// Backend names accepted by New.
const (
	BackendRaster = "raster"
	BackendVector = "vector"
)

// New returns the renderer for a backend/format pair. An empty format picks png.
func New(backend, format string, width, height int) (Renderer, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = "png"
	}
	switch strings.ToLower(backend) {
	case "", BackendRaster:
		return NewRaster(format, width, height)
	case BackendVector:
		return NewVector(format, width, height)
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
