package render

import (
	"fmt"
	"image"
	"sort"
	"sync"
)

// Backend identifies a rendering implementation.
type Backend string

const (
	// Static renders the figure to a raster image.
	Static Backend = "static"
	// Interactive opens the figure in a desktop viewer.
	Interactive Backend = "interactive"
)

// Options carries the presentation knobs shared by all backends.
type Options struct {
	Width      int
	Height     int // height of one panel
	MarkerSize int // event marker diameter in pixels
	Hints      bool
}

// DefaultOptions returns the sizing used when the caller passes zero
// values.
func DefaultOptions() Options {
	return Options{Width: 900, Height: 300, MarkerSize: 4}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = def.MarkerSize
	}
	return o
}

// Renderer materializes a Figure. Raster backends return the rendered
// image; interactive backends additionally own a window whose lifecycle
// the caller drives.
type Renderer interface {
	Render(fig *Figure) (image.Image, error)
}

// IntegrationError reports a requested backend whose implementation is not
// linked into the binary.
type IntegrationError struct {
	Backend Backend
	Pkg     string
}

func (e *IntegrationError) Error() string {
	if e.Pkg != "" {
		return fmt.Sprintf("render: %s backend unavailable: import %s to enable it", e.Backend, e.Pkg)
	}
	return fmt.Sprintf("render: %s backend unavailable", e.Backend)
}

// providerPkgs names the import path supplying each optional backend, so
// an IntegrationError can say how to obtain it.
var providerPkgs = map[Backend]string{
	Static:      "github.com/edaview/edaview/src/render/staticchart",
	Interactive: "github.com/edaview/edaview/src/render/fyneview",
}

var (
	registryMu sync.RWMutex
	registry   = map[Backend]func(Options) Renderer{}
)

// Register makes a backend constructor available to New. Backends call
// this from init.
func Register(b Backend, f func(Options) Renderer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[b] = f
}

// New returns a renderer for the requested backend, or an
// *IntegrationError if its implementation is not linked in.
func New(b Backend, opts Options) (Renderer, error) {
	registryMu.RLock()
	f, ok := registry[b]
	registryMu.RUnlock()
	if !ok {
		return nil, &IntegrationError{Backend: b, Pkg: providerPkgs[b]}
	}
	return f(opts.withDefaults()), nil
}

// Backends lists the registered backend names, sorted.
func Backends() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Backend, 0, len(registry))
	for b := range registry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
