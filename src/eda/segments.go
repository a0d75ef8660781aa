package eda

import (
	"fmt"
	"sort"
)

// Point is a 2D plot coordinate.
type Point struct {
	X, Y float64
}

// Segment is a straight annotation line between two points.
type Segment struct {
	From, To Point
}

// Segments groups the annotation geometry for one processed table:
// rise-time lines (onset up to peak), amplitude drops (onset level to peak
// level at the peak's x position), and half-recovery lines (matched peak
// across to the recovery point at the recovery's level).
type Segments struct {
	RiseTime     []Segment
	Amplitude    []Segment
	HalfRecovery []Segment

	// RecoveryPeak maps each half-recovery event to the position (within
	// the peaks slice) of the peak it recovers from.
	RecoveryPeak []int
}

// NoMatchError reports a half-recovery point with no peak at or before it,
// which means the landmark indices are malformed or out of order.
type NoMatchError struct {
	Query float64
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("eda: no peak at or before x=%v", e.Query)
}

// FindPreceding returns the largest element of ref that is <= q, along
// with the index of its first occurrence. ref must be in ascending order.
// A *NoMatchError is returned when every element exceeds q.
func FindPreceding(ref []float64, q float64) (float64, int, error) {
	// First index with ref[i] >= q.
	i := sort.SearchFloat64s(ref, q)
	if i < len(ref) && ref[i] == q {
		return q, i, nil
	}
	if i == 0 {
		return 0, 0, &NoMatchError{Query: q}
	}
	v := ref[i-1]
	// Duplicates resolve to the first occurrence.
	first := sort.SearchFloat64s(ref, v)
	return v, first, nil
}

// BuildSegments computes the three annotation segment collections from the
// phasic channel, the x-axis coordinates, and the SCR landmark indices.
// The onset and peak sets must pair up one to one, and every index must
// fall inside the sample range; violations return a *ShapeError. A
// half-recovery point with no preceding-or-equal peak returns a
// *NoMatchError. The result is a pure function of the inputs.
func BuildSegments(phasic, xAxis []float64, ev Events) (*Segments, error) {
	if len(phasic) != len(xAxis) {
		return nil, &ShapeError{What: "x-axis length", Want: len(phasic), Got: len(xAxis)}
	}
	if len(ev.Onsets) != len(ev.Peaks) {
		return nil, &ShapeError{What: "peak count", Want: len(ev.Onsets), Got: len(ev.Peaks)}
	}
	n := len(phasic)
	for _, group := range [][]int{ev.Onsets, ev.Peaks, ev.HalfRecovery} {
		for _, idx := range group {
			if idx < 0 || idx >= n {
				return nil, &ShapeError{What: fmt.Sprintf("event index %d out of range", idx), Want: n, Got: idx}
			}
		}
	}

	segs := &Segments{
		RiseTime:     make([]Segment, 0, len(ev.Onsets)),
		Amplitude:    make([]Segment, 0, len(ev.Onsets)),
		HalfRecovery: make([]Segment, 0, len(ev.HalfRecovery)),
		RecoveryPeak: make([]int, 0, len(ev.HalfRecovery)),
	}

	for i := range ev.Onsets {
		onset, peak := ev.Onsets[i], ev.Peaks[i]
		segs.RiseTime = append(segs.RiseTime, Segment{
			From: Point{X: xAxis[onset], Y: phasic[onset]},
			To:   Point{X: xAxis[peak], Y: phasic[peak]},
		})
		// Vertical drop at the peak between onset level and peak level.
		segs.Amplitude = append(segs.Amplitude, Segment{
			From: Point{X: xAxis[peak], Y: phasic[onset]},
			To:   Point{X: xAxis[peak], Y: phasic[peak]},
		})
	}

	peakXs := make([]float64, len(ev.Peaks))
	for i, p := range ev.Peaks {
		peakXs[i] = xAxis[p]
	}
	for _, rec := range ev.HalfRecovery {
		_, pi, err := FindPreceding(peakXs, xAxis[rec])
		if err != nil {
			return nil, err
		}
		level := phasic[rec]
		segs.HalfRecovery = append(segs.HalfRecovery, Segment{
			From: Point{X: xAxis[ev.Peaks[pi]], Y: level},
			To:   Point{X: xAxis[rec], Y: level},
		})
		segs.RecoveryPeak = append(segs.RecoveryPeak, pi)
	}
	return segs, nil
}
