package analysis

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/vocalab/vocaldose/internal/audio"
)

// logSpectrumFloor keeps the log magnitude bounded on silent bins.
const logSpectrumFloor = 1e-12

// ComputeCPPS fills the table's cepstral peak prominence column. Pauses are
// removed first: all voiced frames are concatenated and analyzed in long
// windows, and each window's value is written back to the frames it covers.
// Unvoiced frames and recordings with too little voiced material keep a zero
// column.
func ComputeCPPS(sig *audio.Signal, table *FrameTable, cfg Config) {
	table.CPPS = make([]float64, table.Len())

	frameLen := int(math.Round(FrameDuration * float64(sig.SampleRate)))
	var voiced []float64
	var frameIdx []int // original frame index per voiced frame, in order
	for i := 0; i < table.Len(); i++ {
		if !table.Voiced[i] {
			continue
		}
		end := (i + 1) * frameLen
		if end > len(sig.Samples) {
			break
		}
		voiced = append(voiced, sig.Samples[i*frameLen:end]...)
		frameIdx = append(frameIdx, i)
	}

	minSamples := int(cppsMinVoicedSec * float64(sig.SampleRate))
	if len(voiced) < minSamples {
		return
	}

	windowLen := int(cfg.CPPSWindowSec * float64(sig.SampleRate))
	analyzer := newCepstrumAnalyzer(windowLen, sig.SampleRate, cfg)

	windows := (len(voiced) + windowLen - 1) / windowLen
	for w := 0; w < windows; w++ {
		start := w * windowLen
		end := start + windowLen
		if end > len(voiced) {
			end = len(voiced)
		}
		if end-start < minSamples {
			break
		}
		cpps := analyzer.prominence(voiced[start:end])
		for v, orig := range frameIdx {
			if off := v * frameLen; off >= start && off < end {
				table.CPPS[orig] = cpps
			}
		}
	}
}

// cepstrumAnalyzer computes the cepstral peak prominence of fixed-length
// audio windows. The cepstrum is the spectrum of the log power spectrum; the
// prominence is the height of its peak in the pitch quefrency band over a
// linear trend fitted across the full quefrency range.
type cepstrumAnalyzer struct {
	fft      *fourier.FFT
	padded   []float64
	spectrum []complex128
	logMag   []float64

	qMin, qMax int // pitch band, samples
	trendMin   int
}

func newCepstrumAnalyzer(windowLen, sampleRate int, cfg Config) *cepstrumAnalyzer {
	n := 1
	for n < windowLen {
		n <<= 1
	}
	qMax := int(math.Ceil(float64(sampleRate) / cfg.F0Min))
	if qMax > n/2-1 {
		qMax = n/2 - 1
	}
	return &cepstrumAnalyzer{
		fft:      fourier.NewFFT(n),
		padded:   make([]float64, n),
		spectrum: make([]complex128, n/2+1),
		logMag:   make([]float64, n),
		qMin:     int(math.Floor(float64(sampleRate) / cfg.F0Max)),
		qMax:     qMax,
		trendMin: int(math.Round(0.001 * float64(sampleRate))),
	}
}

func (a *cepstrumAnalyzer) prominence(window []float64) float64 {
	copy(a.padded, window)
	for i := len(window); i < len(a.padded); i++ {
		a.padded[i] = 0
	}
	a.fft.Coefficients(a.spectrum, a.padded)

	// Mirror the half spectrum so the log magnitude is a full-length real
	// sequence and the cepstrum quefrency axis is in sample units.
	n := len(a.logMag)
	for k, c := range a.spectrum {
		mag := 10 * math.Log10(real(c)*real(c)+imag(c)*imag(c)+logSpectrumFloor)
		a.logMag[k] = mag
		if k > 0 && k < n-k {
			a.logMag[n-k] = mag
		}
	}
	a.fft.Coefficients(a.spectrum, a.logMag)

	cep := make([]float64, a.qMax+1)
	for q := 0; q <= a.qMax; q++ {
		c := a.spectrum[q]
		cep[q] = 10 * math.Log10(real(c)*real(c)+imag(c)*imag(c)+logSpectrumFloor)
	}

	peakQ, peakVal := 0, math.Inf(-1)
	for q := a.qMin; q <= a.qMax; q++ {
		if cep[q] > peakVal {
			peakQ, peakVal = q, cep[q]
		}
	}
	if peakQ == 0 {
		return 0
	}

	slope, intercept := linearTrend(cep, a.trendMin, a.qMax)
	return peakVal - (intercept + slope*float64(peakQ))
}

// linearTrend fits a least squares line to values[lo:hi+1] against their
// indices.
func linearTrend(values []float64, lo, hi int) (slope, intercept float64) {
	n := float64(hi - lo + 1)
	var sumX, sumY, sumXY, sumXX float64
	for q := lo; q <= hi; q++ {
		x := float64(q)
		sumX += x
		sumY += values[q]
		sumXY += x * values[q]
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
