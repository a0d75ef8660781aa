package eda

import (
	"errors"
	"reflect"
	"testing"
)

func TestTableColumnLengthEnforced(t *testing.T) {
	tb := NewTable(5)
	if err := tb.SetColumn(ColRaw, []float64{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := tb.SetColumn(ColClean, []float64{1, 2, 3})
	var se *ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
	if se.Want != 5 || se.Got != 3 {
		t.Fatalf("expected want=5 got=3 in error, got %+v", se)
	}
}

func TestTableMissingColumn(t *testing.T) {
	tb := NewTable(3)
	if _, err := tb.Column(ColPhasic); err == nil {
		t.Fatalf("expected error for missing column")
	}
}

func TestTableColumnsOrder(t *testing.T) {
	tb := NewTable(2)
	for _, name := range []string{ColRaw, ColClean, ColPhasic} {
		if err := tb.SetColumn(name, []float64{0, 0}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Replacing a column must not duplicate it in the order.
	if err := tb.SetColumn(ColClean, []float64{1, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{ColRaw, ColClean, ColPhasic}
	if got := tb.Columns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected columns %v, got %v", want, got)
	}
}

func TestScanEvents(t *testing.T) {
	tb := NewTable(6)
	set := func(name string, idx ...int) {
		col := make([]float64, 6)
		for _, i := range idx {
			col[i] = 1
		}
		if err := tb.SetColumn(name, col); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	set(ColOnsets, 1)
	set(ColPeaks, 2)
	set(ColRecovery, 4)
	ev, err := ScanEvents(tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ev.Onsets, []int{1}) || !reflect.DeepEqual(ev.Peaks, []int{2}) || !reflect.DeepEqual(ev.HalfRecovery, []int{4}) {
		t.Fatalf("unexpected events: %+v", ev)
	}
}

func TestScanEventsMissingIndicator(t *testing.T) {
	tb := NewTable(3)
	if _, err := ScanEvents(tb); err == nil {
		t.Fatalf("expected error when indicator columns are missing")
	}
}
