package analysis

import "math"

// A-weighting pole frequencies from IEC 61672-1. The +2.0 dB term normalizes
// the curve to 0 dB at 1 kHz.
const (
	aWeightF1   = 20.598997
	aWeightF2   = 107.65265
	aWeightF3   = 737.86223
	aWeightF4   = 12194.217
	aWeightNorm = 2.0000298
)

// aWeightDB returns the A-weighting curve gain in dB at frequency f (Hz).
func aWeightDB(f float64) float64 {
	if f <= 0 {
		return math.Inf(-1)
	}
	f2 := f * f
	num := aWeightF4 * aWeightF4 * f2 * f2
	den := (f2 + aWeightF1*aWeightF1) *
		math.Sqrt((f2+aWeightF2*aWeightF2)*(f2+aWeightF3*aWeightF3)) *
		(f2 + aWeightF4*aWeightF4)
	return 20*math.Log10(num/den) + aWeightNorm
}

// aWeighting is a precomputed power-weight table for the half spectrum of an
// n-point real FFT at the given sample rate. It is read-only after
// construction and safe to share across frames.
type aWeighting struct {
	weights []float64 // linear power weights, one per FFT bin 0..n/2
}

// newAWeighting builds the weight table for an n-point FFT at sampleRate Hz.
func newAWeighting(n int, sampleRate float64) *aWeighting {
	bins := n/2 + 1
	w := make([]float64, bins)
	df := sampleRate / float64(n)
	// Bin 0 is DC: no acoustic meaning, weight zero.
	for k := 1; k < bins; k++ {
		w[k] = math.Pow(10, aWeightDB(float64(k)*df)/10)
	}
	return &aWeighting{weights: w}
}
