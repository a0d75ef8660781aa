// Package fyneview is the interactive rendering backend: it shows the
// figure panels in a fyne window with PNG export. Importing the package
// registers it with the render registry; binaries that skip the import
// stay free of the fyne dependency and get an IntegrationError when the
// interactive backend is requested.
package fyneview

import (
	"fmt"
	"image"
	png "image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/edaview/edaview/src/render"
	"github.com/edaview/edaview/src/render/staticchart"
)

func init() {
	render.Register(render.Interactive, func(opts render.Options) render.Renderer {
		return New(opts)
	})
}

// Viewer owns the window and the per-panel canvases.
type Viewer struct {
	app    fyne.App
	window fyne.Window
	opts   render.Options

	fig       *render.Figure
	panels    []*canvas.Image
	composite image.Image
}

// New creates a viewer window. The window is shown by Run, not here.
func New(opts render.Options) *Viewer {
	def := render.DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.MarkerSize <= 0 {
		opts.MarkerSize = def.MarkerSize
	}
	a := app.NewWithID("com.edaview.viewer")
	w := a.NewWindow("EDA Viewer")
	w.Resize(fyne.NewSize(float32(opts.Width)+40, 760))
	return &Viewer{app: a, window: w, opts: opts}
}

// Render draws the figure into the window content and returns the
// composite raster (also used for export).
func (v *Viewer) Render(fig *render.Figure) (image.Image, error) {
	if fig == nil || len(fig.Panels) == 0 {
		return nil, fmt.Errorf("fyneview: empty figure")
	}
	v.fig = fig
	sc := staticchart.New(v.opts)

	v.panels = v.panels[:0]
	items := []fyne.CanvasObject{widget.NewLabelWithStyle(fig.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})}
	for i := range fig.Panels {
		img, err := sc.RenderPanel(fig, i)
		if err != nil {
			return nil, err
		}
		ci := canvas.NewImageFromImage(img)
		ci.FillMode = canvas.ImageFillContain
		ci.SetMinSize(fyne.NewSize(float32(v.opts.Width), float32(v.opts.Height)))
		v.panels = append(v.panels, ci)
		items = append(items, ci)
	}
	composite, err := sc.Render(fig)
	if err != nil {
		return nil, err
	}
	v.composite = composite

	if v.opts.Hints {
		items = append(items, widget.NewLabel("Markers show SCR onsets, peaks, and half-recovery points."))
	}
	v.window.SetContent(container.NewVScroll(container.NewVBox(items...)))
	v.buildMenus()
	return composite, nil
}

// Run shows the window and enters the event loop. It blocks until the
// window closes.
func (v *Viewer) Run() {
	v.window.ShowAndRun()
}

func (v *Viewer) buildMenus() {
	exportItem := fyne.NewMenuItem("Export PNG…", func() { v.exportPNG("eda_plot.png") })
	fileMenu := fyne.NewMenu("File", exportItem)
	v.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// exportPNG writes the last rendered composite through a save dialog.
func (v *Viewer) exportPNG(defaultName string) {
	if v.composite == nil {
		dialog.ShowInformation("Export", "No plot to export.", v.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, v.composite)
	}, v.window)
	fs.SetFileName(defaultName)
	fs.Show()
}
