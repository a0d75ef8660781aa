// Package eda holds the processed electrodermal activity signal table and
// the geometry derived from it for plot annotation: SCR event indices,
// x-axis coordinates, and the rise-time / amplitude / half-recovery line
// segments.
package eda

import "fmt"

// Column names produced by an EDA processing pass. The four value columns
// carry microsiemens levels per sample; the three indicator columns carry
// 0/1 flags marking SCR landmarks.
const (
	ColRaw      = "EDA_Raw"
	ColClean    = "EDA_Clean"
	ColPhasic   = "EDA_Phasic"
	ColTonic    = "EDA_Tonic"
	ColOnsets   = "SCR_Onsets"
	ColPeaks    = "SCR_Peaks"
	ColRecovery = "SCR_Recovery"
)

// ValueColumns lists the signal channels in plot order.
var ValueColumns = []string{ColRaw, ColClean, ColPhasic, ColTonic}

// IndicatorColumns lists the SCR landmark flag channels.
var IndicatorColumns = []string{ColOnsets, ColPeaks, ColRecovery}

// ShapeError reports inputs whose dimensions disagree with the table's
// sample index space.
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("eda: %s: want %d, got %d", e.What, e.Want, e.Got)
}

// Table maps named columns to per-sample values. All columns share one
// sample index space; SetColumn rejects any other length.
type Table struct {
	n     int
	cols  map[string][]float64
	order []string
}

// NewTable creates an empty table over n samples.
func NewTable(n int) *Table {
	return &Table{n: n, cols: make(map[string][]float64)}
}

// Len returns the number of samples.
func (t *Table) Len() int { return t.n }

// SetColumn adds or replaces a column. The values slice is retained, not
// copied.
func (t *Table) SetColumn(name string, values []float64) error {
	if len(values) != t.n {
		return &ShapeError{What: "column " + name, Want: t.n, Got: len(values)}
	}
	if _, exists := t.cols[name]; !exists {
		t.order = append(t.order, name)
	}
	t.cols[name] = values
	return nil
}

// Column returns the named column, or an error if absent.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("eda: no column %q", name)
	}
	return col, nil
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
