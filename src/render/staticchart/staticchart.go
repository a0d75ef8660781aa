// Package staticchart renders a figure description to a raster image with
// go-chart: one chart per panel, stacked vertically into a single PNG.
package staticchart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/edaview/edaview/src/render"
)

func init() {
	render.Register(render.Static, func(opts render.Options) render.Renderer {
		return &Renderer{opts: opts}
	})
}

// Renderer draws figures with go-chart.
type Renderer struct {
	opts render.Options
}

// New returns a static renderer with the given options.
func New(opts render.Options) *Renderer {
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
	return &Renderer{opts: opts}
}

// lineStyle renders a connected trace.
func lineStyle(hex string, width float64, dashed bool) chart.Style {
	st := chart.Style{
		StrokeColor: drawing.ColorFromHex(hex),
		StrokeWidth: width,
	}
	if dashed {
		st.StrokeDashArray = []float64{4.0, 3.0}
	}
	return st
}

// markerStyle renders points only, no connecting line.
func markerStyle(hex string, size int) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    float64(size),
		DotColor:    drawing.ColorFromHex(hex),
	}
}

// panelSeries converts one panel's draw commands into go-chart series and
// tracks the y extent across all of them.
func panelSeries(p render.Panel, markerSize int) ([]chart.Series, float64, float64) {
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	observe := func(v float64) {
		if math.IsNaN(v) {
			return
		}
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	// go-chart needs at least two values per series; duplicate lone points
	// the way a single-sample trace would be padded.
	pad := func(xs, ys []float64) ([]float64, []float64) {
		if len(xs) != 1 {
			return xs, ys
		}
		return []float64{xs[0], xs[0]}, []float64{ys[0], ys[0]}
	}
	var series []chart.Series
	for _, l := range p.Lines {
		for _, v := range l.Y {
			observe(v)
		}
		xs, ys := pad(l.X, l.Y)
		series = append(series, chart.ContinuousSeries{
			Name:    l.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(l.Color, l.Width, false),
		})
	}
	for _, ss := range p.Segments {
		st := lineStyle(ss.Color, 1.0, ss.Dashed)
		for i, seg := range ss.Segments {
			observe(seg.From.Y)
			observe(seg.To.Y)
			// Name only the first segment so the legend shows one entry
			// per set.
			name := ""
			if i == 0 {
				name = ss.Name
			}
			series = append(series, chart.ContinuousSeries{
				Name:    name,
				XValues: []float64{seg.From.X, seg.To.X},
				YValues: []float64{seg.From.Y, seg.To.Y},
				Style:   st,
			})
		}
	}
	for _, s := range p.Scatters {
		if len(s.X) == 0 {
			continue
		}
		for _, v := range s.Y {
			observe(v)
		}
		xs, ys := pad(s.X, s.Y)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   markerStyle(s.Color, markerSize),
		})
	}
	return series, minY, maxY
}

// panelExtent finds the x range covered by every series in the panel:
// lines, scatters, and segment endpoints alike.
func panelExtent(p render.Panel) (float64, float64) {
	xMin, xMax := math.MaxFloat64, -math.MaxFloat64
	observe := func(v float64) {
		if math.IsNaN(v) {
			return
		}
		xMin = math.Min(xMin, v)
		xMax = math.Max(xMax, v)
	}
	for _, l := range p.Lines {
		if len(l.X) > 0 {
			observe(l.X[0])
			observe(l.X[len(l.X)-1])
		}
	}
	for _, s := range p.Scatters {
		for _, v := range s.X {
			observe(v)
		}
	}
	for _, ss := range p.Segments {
		for _, seg := range ss.Segments {
			observe(seg.From.X)
			observe(seg.To.X)
		}
	}
	if xMin == math.MaxFloat64 {
		xMin = 0
	}
	if xMax <= xMin {
		xMax = xMin + 1
	}
	return xMin, xMax
}

// renderPanel draws one panel at the size carried by opts. last controls
// whether the x-axis carries the shared label.
func renderPanel(p render.Panel, xLabel string, last bool, opts render.Options) (image.Image, error) {
	w, h := opts.Width, opts.Height
	series, minY, maxY := panelSeries(p, opts.MarkerSize)
	if len(series) == 0 {
		return blank(w, h), nil
	}

	xMin, xMax := panelExtent(p)

	xAxis := chart.XAxis{
		Ticks: niceTicks(xMin, xMax, 8),
		Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
	}
	if last {
		xAxis.Name = xLabel
	}

	var yAxis chart.YAxis
	if minY != math.MaxFloat64 && maxY != -math.MaxFloat64 {
		nMin, nMax := niceAxisBounds(minY, maxY)
		yAxis = chart.YAxis{
			Range: &chart.ContinuousRange{Min: nMin, Max: nMax},
			Ticks: niceTicks(nMin, nMax, 6),
		}
	}

	padBottom := 28
	if last {
		padBottom = 40
	}
	ch := chart.Chart{
		Title:      p.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: padBottom}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("staticchart: render panel %q: %w", p.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("staticchart: decode panel %q: %w", p.Title, err)
	}
	return img, nil
}

// RenderPanel draws a single panel at the given size. Viewers use it to
// manage one canvas per panel; last selects whether the shared x-axis
// label is drawn.
func (r *Renderer) RenderPanel(fig *render.Figure, i int) (image.Image, error) {
	if fig == nil || i < 0 || i >= len(fig.Panels) {
		return nil, fmt.Errorf("staticchart: no panel %d", i)
	}
	return renderPanel(fig.Panels[i], fig.XLabel, i == len(fig.Panels)-1, r.opts)
}

// Render draws every panel and stacks them into one image, title on top.
func (r *Renderer) Render(fig *render.Figure) (image.Image, error) {
	if fig == nil || len(fig.Panels) == 0 {
		return nil, fmt.Errorf("staticchart: empty figure")
	}
	w, h := r.opts.Width, r.opts.Height
	out := image.NewRGBA(image.Rect(0, 0, w, h*len(fig.Panels)))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for i, p := range fig.Panels {
		last := i == len(fig.Panels)-1
		img, err := renderPanel(p, fig.XLabel, last, r.opts)
		if err != nil {
			return nil, err
		}
		draw.Draw(out, image.Rect(0, i*h, w, (i+1)*h), img, img.Bounds().Min, draw.Over)
	}
	drawText(out, fig.Title, 8, 12)
	if r.opts.Hints {
		drawText(out, "Hint: markers show SCR onsets, peaks, and half-recovery points.", 8, out.Bounds().Max.Y-6)
	}
	return out, nil
}

// EncodePNG renders the figure and writes it as PNG.
func (r *Renderer) EncodePNG(fig *render.Figure, w io.Writer) error {
	img, err := r.Render(fig)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// blank returns a plain placeholder image.
func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// drawText writes a small label onto the image with a shadow for contrast.
func drawText(dst *image.RGBA, text string, x, y int) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	shadow := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 230, G: 230, B: 230, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)},
	}
	shadow.DrawString(text)
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	dr.DrawString(text)
}
