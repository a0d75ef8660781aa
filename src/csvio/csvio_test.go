package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/edaview/edaview/src/eda"
)

func TestLoadParsesHeaderAndRows(t *testing.T) {
	in := "EDA_Raw,EDA_Clean\n1.5,1.25\n2,2.5\n"
	tb, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", tb.Len())
	}
	raw, err := tb.Column(eda.ColRaw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw[0] != 1.5 || raw[1] != 2 {
		t.Fatalf("unexpected raw column: %v", raw)
	}
}

func TestLoadRejectsBadNumber(t *testing.T) {
	in := "EDA_Raw\nnot-a-number\n"
	if _, err := Load(strings.NewReader(in)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadColumn(t *testing.T) {
	in := "a,b\n1,2\n3,4\n"
	col, err := LoadColumn(strings.NewReader(in), "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col[0] != 2 || col[1] != 4 {
		t.Fatalf("unexpected column: %v", col)
	}
	if _, err := LoadColumn(strings.NewReader(in), "missing"); err == nil {
		t.Fatalf("expected error for missing column")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tb := eda.NewTable(3)
	if err := tb.SetColumn(eda.ColPhasic, []float64{0, 0.5, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tb.SetColumn(eda.ColOnsets, []float64{0, 1, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := Save(&buf, tb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	phasic, err := got.Column(eda.ColPhasic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if phasic[1] != 0.5 {
		t.Fatalf("round trip lost precision: %v", phasic)
	}
	onsets, err := got.Column(eda.ColOnsets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if onsets[1] != 1 {
		t.Fatalf("indicator column lost: %v", onsets)
	}
}

func TestSaveEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Save(&buf, eda.NewTable(0)); err == nil {
		t.Fatalf("expected error for table without columns")
	}
}
