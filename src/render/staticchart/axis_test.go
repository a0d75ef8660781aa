package staticchart

import (
	"math"
	"testing"
)

func TestNiceAxisBoundsExpands(t *testing.T) {
	a, b := niceAxisBounds(5, 123)
	if a > 5 || b < 123 {
		t.Fatalf("bounds must contain input range: got [%v,%v]", a, b)
	}
}

func TestNiceAxisBoundsDegenerate(t *testing.T) {
	a, b := niceAxisBounds(10, 10)
	if a >= b {
		t.Fatalf("expected widened range, got [%v,%v]", a, b)
	}
}

func TestNiceTicksCoverRange(t *testing.T) {
	ticks := niceTicks(0, 97, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected >=2 ticks, got %d", len(ticks))
	}
	if ticks[0].Value > 0 || ticks[len(ticks)-1].Value < 97 {
		t.Fatalf("ticks do not span range: [%v,%v]", ticks[0].Value, ticks[len(ticks)-1].Value)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Value <= ticks[i-1].Value {
			t.Fatalf("ticks not ascending at %d", i)
		}
	}
}

func TestNiceTicksDegenerateInputs(t *testing.T) {
	if ticks := niceTicks(1, 1, 1); ticks != nil {
		t.Fatalf("expected nil ticks for n<2, got %v", ticks)
	}
	if ticks := niceTicks(math.NaN(), 5, 6); ticks != nil {
		t.Fatalf("expected nil ticks for NaN bounds, got %v", ticks)
	}
}

func TestFormatTickPrecision(t *testing.T) {
	cases := map[float64]string{
		0:     "0",
		1234:  "1234",
		250:   "250",
		12.25: "12.2",
		0.5:   "0.50",
	}
	for v, want := range cases {
		if got := formatTick(v); got != want {
			t.Fatalf("formatTick(%v): expected %q, got %q", v, want, got)
		}
	}
}
