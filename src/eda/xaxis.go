package eda

// XAxis derives the per-sample x coordinates. With a positive sampling
// rate (Hz) each sample maps to elapsed seconds (index / rate); otherwise
// the raw sample index is used.
func XAxis(n int, samplingRate float64) []float64 {
	xs := make([]float64, n)
	if samplingRate > 0 {
		for i := range xs {
			xs[i] = float64(i) / samplingRate
		}
		return xs
	}
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// XLabel names the x-axis unit for the given sampling rate.
func XLabel(samplingRate float64) string {
	if samplingRate > 0 {
		return "Seconds"
	}
	return "Samples"
}
