package eda

// Events holds the sample indices of the SCR landmarks scanned from the
// indicator columns. Each slice is in ascending sample order. The upstream
// detector guarantees that within one SCR cycle the onset precedes its peak
// and the peak precedes its half-recovery point.
type Events struct {
	Onsets       []int
	Peaks        []int
	HalfRecovery []int
}

// ScanEvents extracts the landmark indices from a processed table. The
// three indicator columns must be present.
func ScanEvents(t *Table) (Events, error) {
	var ev Events
	onsets, err := t.Column(ColOnsets)
	if err != nil {
		return ev, err
	}
	peaks, err := t.Column(ColPeaks)
	if err != nil {
		return ev, err
	}
	recovery, err := t.Column(ColRecovery)
	if err != nil {
		return ev, err
	}
	ev.Onsets = scanIndicator(onsets)
	ev.Peaks = scanIndicator(peaks)
	ev.HalfRecovery = scanIndicator(recovery)
	return ev, nil
}

// scanIndicator returns the indices where the flag column equals 1.
func scanIndicator(col []float64) []int {
	var idx []int
	for i, v := range col {
		if v == 1 {
			idx = append(idx, i)
		}
	}
	return idx
}
