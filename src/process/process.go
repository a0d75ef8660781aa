// Package process turns a raw electrodermal activity recording into the
// processed table the plotting layer consumes: cleaned signal, tonic and
// phasic components, and 0/1 indicator columns marking SCR onsets, peaks,
// and half-recovery points.
package process

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/edaview/edaview/src/eda"
)

// Smoothing windows in seconds. When no sampling rate is known, the sample
// fallbacks below are used instead.
const (
	cleanWindowSec = 0.2
	tonicWindowSec = 4.0

	cleanWindowFallback = 5
	tonicWindowFallback = 75

	// An SCR must rise at least this fraction of the phasic range to count.
	minAmplitudeFraction = 0.10
)

func windowSamples(sec float64, samplingRate float64, fallback, n int) int {
	w := fallback
	if samplingRate > 0 {
		w = int(sec * samplingRate)
	}
	if w < 1 {
		w = 1
	}
	if w > n {
		w = n
	}
	// Centered window needs an odd width.
	if w%2 == 0 {
		w++
	}
	return w
}

// movingAverage smooths x with a centered window of width w (odd). Window
// edges shrink near the signal boundaries.
func movingAverage(x []float64, w int) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	// Prefix sums keep the pass linear regardless of window width.
	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}
	half := w / 2
	for i := range out {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > n {
			hi = n
		}
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out
}

// Clean smooths the raw recording with a short moving average to suppress
// sensor noise.
func Clean(raw []float64, samplingRate float64) []float64 {
	w := windowSamples(cleanWindowSec, samplingRate, cleanWindowFallback, len(raw))
	return movingAverage(raw, w)
}

// Decompose splits the cleaned signal into a slow tonic baseline (wide
// moving average) and the fast phasic residual. clean[i] == tonic[i] +
// phasic[i] holds exactly for every sample.
func Decompose(clean []float64, samplingRate float64) (tonic, phasic []float64) {
	w := windowSamples(tonicWindowSec, samplingRate, tonicWindowFallback, len(clean))
	tonic = movingAverage(clean, w)
	phasic = make([]float64, len(clean))
	for i := range clean {
		phasic[i] = clean[i] - tonic[i]
	}
	return tonic, phasic
}

// DetectSCR scans the phasic component for skin conductance responses.
// A response is a local maximum whose rise from the preceding trough is at
// least a fixed fraction of the phasic range. Each detected cycle yields
// one onset and one peak, and a half-recovery point when the signal decays
// to half the rise amplitude before a larger event begins. The returned
// indices satisfy onset < peak < half-recovery within each cycle.
func DetectSCR(phasic []float64, samplingRate float64) eda.Events {
	var ev eda.Events
	n := len(phasic)
	if n < 3 {
		return ev
	}
	minAmp := minAmplitudeFraction * (floats.Max(phasic) - floats.Min(phasic))
	if minAmp <= 0 {
		return ev
	}
	i := 1
	for i < n-1 {
		if !(phasic[i] > phasic[i-1] && phasic[i] >= phasic[i+1]) {
			i++
			continue
		}
		peak := i
		onset := peak
		for onset > 0 && phasic[onset-1] < phasic[onset] {
			onset--
		}
		amp := phasic[peak] - phasic[onset]
		if amp >= minAmp {
			ev.Onsets = append(ev.Onsets, onset)
			ev.Peaks = append(ev.Peaks, peak)
			half := phasic[onset] + amp/2
			for j := peak + 1; j < n; j++ {
				if phasic[j] <= half {
					ev.HalfRecovery = append(ev.HalfRecovery, j)
					break
				}
				if phasic[j] > phasic[peak] {
					// A larger event took over before half recovery.
					break
				}
			}
		}
		i = peak + 1
	}
	return ev
}

// Features summarizes detected SCR activity for logging and viewer
// footers.
type Features struct {
	SCRCount      int
	SCRPerMinute  float64
	MeanAmplitude float64
	MeanRiseTime  float64
}

// SCRFeatures computes summary statistics over the detected events. Rise
// times are in seconds when a sampling rate is given, otherwise in samples.
func SCRFeatures(phasic []float64, samplingRate float64, ev eda.Events) Features {
	f := Features{SCRCount: len(ev.Peaks)}
	if len(ev.Peaks) == 0 || len(ev.Onsets) != len(ev.Peaks) {
		return f
	}
	amps := make([]float64, len(ev.Peaks))
	rises := make([]float64, len(ev.Peaks))
	for i := range ev.Peaks {
		amps[i] = phasic[ev.Peaks[i]] - phasic[ev.Onsets[i]]
		rises[i] = float64(ev.Peaks[i] - ev.Onsets[i])
		if samplingRate > 0 {
			rises[i] /= samplingRate
		}
	}
	f.MeanAmplitude = stat.Mean(amps, nil)
	f.MeanRiseTime = stat.Mean(rises, nil)
	if samplingRate > 0 && len(phasic) > 0 {
		minutes := float64(len(phasic)) / samplingRate / 60
		f.SCRPerMinute = float64(f.SCRCount) / minutes
	}
	return f
}

// Process runs the full pass over a raw recording and assembles the
// processed table: value columns plus the three indicator columns.
func Process(raw []float64, samplingRate float64) (*eda.Table, error) {
	clean := Clean(raw, samplingRate)
	tonic, phasic := Decompose(clean, samplingRate)
	ev := DetectSCR(phasic, samplingRate)

	t := eda.NewTable(len(raw))
	rawCopy := make([]float64, len(raw))
	copy(rawCopy, raw)
	indicator := func(idx []int) []float64 {
		col := make([]float64, len(raw))
		for _, i := range idx {
			col[i] = 1
		}
		return col
	}
	// Columns are set in plot order so CSV round-trips stay stable.
	cols := []struct {
		name   string
		values []float64
	}{
		{eda.ColRaw, rawCopy},
		{eda.ColClean, clean},
		{eda.ColPhasic, phasic},
		{eda.ColTonic, tonic},
		{eda.ColOnsets, indicator(ev.Onsets)},
		{eda.ColPeaks, indicator(ev.Peaks)},
		{eda.ColRecovery, indicator(ev.HalfRecovery)},
	}
	for _, c := range cols {
		if err := t.SetColumn(c.name, c.values); err != nil {
			return nil, err
		}
	}
	return t, nil
}
