// Package render describes a processed EDA plot as backend-neutral draw
// commands and dispatches them to a registered rendering backend. The
// figure construction here is pure; all mutable drawing state lives in the
// backends.
package render

import (
	"fmt"

	"github.com/edaview/edaview/src/eda"
)

// Reference palette, one hex color per series.
const (
	ColorRaw      = "B0BEC5"
	ColorClean    = "9C27B0"
	ColorPhasic   = "E91E63"
	ColorTonic    = "673AB7"
	ColorOnsets   = "FFA726"
	ColorPeaks    = "1976D2"
	ColorRecovery = "FDD835"
)

// Palette assigns one hex color per plotted series. Empty fields fall back
// to the reference palette.
type Palette struct {
	Raw      string
	Clean    string
	Phasic   string
	Tonic    string
	Onsets   string
	Peaks    string
	Recovery string
}

// DefaultPalette returns the reference colors.
func DefaultPalette() Palette {
	return Palette{
		Raw:      ColorRaw,
		Clean:    ColorClean,
		Phasic:   ColorPhasic,
		Tonic:    ColorTonic,
		Onsets:   ColorOnsets,
		Peaks:    ColorPeaks,
		Recovery: ColorRecovery,
	}
}

func (p Palette) withDefaults() Palette {
	def := DefaultPalette()
	if p.Raw == "" {
		p.Raw = def.Raw
	}
	if p.Clean == "" {
		p.Clean = def.Clean
	}
	if p.Phasic == "" {
		p.Phasic = def.Phasic
	}
	if p.Tonic == "" {
		p.Tonic = def.Tonic
	}
	if p.Onsets == "" {
		p.Onsets = def.Onsets
	}
	if p.Peaks == "" {
		p.Peaks = def.Peaks
	}
	if p.Recovery == "" {
		p.Recovery = def.Recovery
	}
	return p
}

// Line is a per-sample trace.
type Line struct {
	Name  string
	X, Y  []float64
	Color string
	Width float64
}

// Scatter marks individual samples.
type Scatter struct {
	Name  string
	X, Y  []float64
	Color string
}

// SegmentSet is a collection of annotation line segments drawn in one
// style.
type SegmentSet struct {
	Name     string
	Segments []eda.Segment
	Color    string
	Dashed   bool
}

// Panel is one subplot: traces first, then markers and segments on top.
type Panel struct {
	Title    string
	Lines    []Line
	Scatters []Scatter
	Segments []SegmentSet
}

// Figure is a complete multi-panel plot description. Panels share the
// x-axis.
type Figure struct {
	Title  string
	XLabel string
	Panels []Panel
}

// pointsAt gathers (x, phasic) marker coordinates for a set of event
// indices.
func pointsAt(xAxis, phasic []float64, idx []int) (xs, ys []float64) {
	xs = make([]float64, len(idx))
	ys = make([]float64, len(idx))
	for i, j := range idx {
		xs[i] = xAxis[j]
		ys[i] = phasic[j]
	}
	return xs, ys
}

// BuildFigure assembles the three-panel EDA plot from a processed table
// with the reference palette: raw and cleaned traces, the phasic component
// with SCR markers and annotation segments, and the tonic component.
// samplingRate <= 0 plots against the raw sample index.
func BuildFigure(t *eda.Table, samplingRate float64) (*Figure, error) {
	return BuildFigureStyled(t, samplingRate, DefaultPalette())
}

// BuildFigureStyled is BuildFigure with per-series colors; empty palette
// fields keep the reference color.
func BuildFigureStyled(t *eda.Table, samplingRate float64, pal Palette) (*Figure, error) {
	pal = pal.withDefaults()
	for _, name := range eda.ValueColumns {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("render: table is missing column %q", name)
		}
	}
	ev, err := eda.ScanEvents(t)
	if err != nil {
		return nil, err
	}
	xAxis := eda.XAxis(t.Len(), samplingRate)
	raw, _ := t.Column(eda.ColRaw)
	clean, _ := t.Column(eda.ColClean)
	phasic, _ := t.Column(eda.ColPhasic)
	tonic, _ := t.Column(eda.ColTonic)

	segs, err := eda.BuildSegments(phasic, xAxis, ev)
	if err != nil {
		return nil, err
	}

	onsetX, onsetY := pointsAt(xAxis, phasic, ev.Onsets)
	peakX, peakY := pointsAt(xAxis, phasic, ev.Peaks)
	recX, recY := pointsAt(xAxis, phasic, ev.HalfRecovery)

	fig := &Figure{
		Title:  "Electrodermal Activity (EDA)",
		XLabel: eda.XLabel(samplingRate),
		Panels: []Panel{
			{
				Title: "Raw and Cleaned Signal",
				Lines: []Line{
					{Name: "Raw", X: xAxis, Y: raw, Color: pal.Raw, Width: 1.0},
					{Name: "Cleaned", X: xAxis, Y: clean, Color: pal.Clean, Width: 1.5},
				},
			},
			{
				Title: "Skin Conductance Response (SCR)",
				Lines: []Line{
					{Name: "Phasic Component", X: xAxis, Y: phasic, Color: pal.Phasic, Width: 1.5},
				},
				Scatters: []Scatter{
					{Name: "SCR - Onsets", X: onsetX, Y: onsetY, Color: pal.Onsets},
					{Name: "SCR - Peaks", X: peakX, Y: peakY, Color: pal.Peaks},
					{Name: "SCR - Half recovery", X: recX, Y: recY, Color: pal.Recovery},
				},
				Segments: []SegmentSet{
					{Name: "Rise Time", Segments: segs.RiseTime, Color: pal.Onsets, Dashed: true},
					{Name: "SCR Amplitude", Segments: segs.Amplitude, Color: pal.Peaks},
					{Name: "Half Recovery", Segments: segs.HalfRecovery, Color: pal.Recovery, Dashed: true},
				},
			},
			{
				Title: "Skin Conductance Level (SCL)",
				Lines: []Line{
					{Name: "Tonic Component", X: xAxis, Y: tonic, Color: pal.Tonic, Width: 1.5},
				},
			},
		},
	}
	return fig, nil
}
