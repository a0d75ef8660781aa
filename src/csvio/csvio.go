// Package csvio reads and writes processed EDA signal tables as CSV with
// a header row of column names.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/edaview/edaview/src/eda"
)

// Load parses a CSV stream into a table. The first row names the columns;
// every following row carries one sample per column.
func Load(r io.Reader) (*eda.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csvio: read header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("csvio: empty header")
	}
	cols := make([][]float64, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvio: read row: %w", err)
		}
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("csvio: column %q row %d: %w", header[i], len(cols[i])+1, err)
			}
			cols[i] = append(cols[i], v)
		}
	}
	t := eda.NewTable(len(cols[0]))
	for i, name := range header {
		if err := t.SetColumn(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LoadColumn reads a single named column from a CSV stream, for raw
// recordings stored as one channel among others.
func LoadColumn(r io.Reader, name string) ([]float64, error) {
	t, err := Load(r)
	if err != nil {
		return nil, err
	}
	return t.Column(name)
}

// Save writes the table as CSV in column insertion order.
func Save(w io.Writer, t *eda.Table) error {
	names := t.Columns()
	if len(names) == 0 {
		return fmt.Errorf("csvio: table has no columns")
	}
	cols := make([][]float64, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return err
		}
		cols[i] = col
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}
	row := make([]string, len(names))
	for s := 0; s < t.Len(); s++ {
		for i := range names {
			row[i] = strconv.FormatFloat(cols[i][s], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvio: write row %d: %w", s, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
