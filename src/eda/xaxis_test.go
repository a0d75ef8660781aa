package eda

import (
	"math"
	"testing"
)

func TestXAxisSampleIndex(t *testing.T) {
	xs := XAxis(4, 0)
	for i, v := range xs {
		if v != float64(i) {
			t.Fatalf("expected x[%d]=%d, got %v", i, i, v)
		}
	}
	if XLabel(0) != "Samples" {
		t.Fatalf("expected Samples label, got %q", XLabel(0))
	}
}

func TestXAxisSeconds(t *testing.T) {
	const sr = 250.0
	xs := XAxis(1000, sr)
	for i, v := range xs {
		if math.Abs(v-float64(i)/sr) > 1e-12 {
			t.Fatalf("expected x[%d]=%v, got %v", i, float64(i)/sr, v)
		}
	}
	if XLabel(sr) != "Seconds" {
		t.Fatalf("expected Seconds label, got %q", XLabel(sr))
	}
}
