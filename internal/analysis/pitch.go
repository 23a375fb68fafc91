package analysis

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/vocalab/vocaldose/internal/audio"
)

// TrackPitch estimates the fundamental frequency of each analysis frame with
// a windowed autocorrelation tracker. Frames whose best normalized peak falls
// below the voicing threshold, whose energy is below the pitch RMS gate, or
// whose estimate lands outside [F0Min, F0Max] are marked invalid with a zero
// value. Estimates are never clamped into range.
func TrackPitch(sig *audio.Signal, cfg Config) (FrameSeries, error) {
	frameLen := int(math.Round(FrameDuration * float64(sig.SampleRate)))
	frames := len(sig.Samples) / frameLen
	if frames == 0 {
		return FrameSeries{}, &InsufficientDataError{
			Role:     RoleVoice,
			Duration: sig.Duration(),
			Needed:   FrameDuration,
		}
	}

	tracker := newPitchTracker(frameLen, sig.SampleRate, cfg)
	series := newFrameSeries(frames)
	for i := 0; i < frames; i++ {
		frame := sig.Samples[i*frameLen : (i+1)*frameLen]
		if f0, ok := tracker.estimate(frame); ok {
			series.Values[i] = f0
			series.Valid[i] = true
		}
	}
	return series, nil
}

// pitchTracker holds the per-frame-length state of the autocorrelation
// estimator: the analysis window, its own autocorrelation (used to undo the
// tapering bias on the signal's autocorrelation), and the FFT plan.
type pitchTracker struct {
	cfg        Config
	sampleRate int
	window     []float64
	winACF     []float64
	lagMin     int
	lagMax     int

	fft      *fourier.FFT
	padded   []float64
	spectrum []complex128
}

func newPitchTracker(frameLen, sampleRate int, cfg Config) *pitchTracker {
	lagMin := int(math.Floor(float64(sampleRate) / cfg.F0Max))
	if lagMin < 2 {
		lagMin = 2
	}
	lagMax := int(math.Ceil(float64(sampleRate) / cfg.F0Min))
	if lagMax > frameLen-1 {
		lagMax = frameLen - 1
	}

	// Zero padding to at least twice the frame length keeps the circular
	// autocorrelation linear over the lag range.
	padLen := 1
	for padLen < 2*frameLen {
		padLen <<= 1
	}

	t := &pitchTracker{
		cfg:        cfg,
		sampleRate: sampleRate,
		window:     hannWindow(frameLen),
		lagMin:     lagMin,
		lagMax:     lagMax,
		fft:        fourier.NewFFT(padLen),
		padded:     make([]float64, padLen),
		spectrum:   make([]complex128, padLen/2+1),
	}
	t.winACF = t.autocorrelate(t.window)
	return t
}

// estimate returns the fundamental frequency of one frame and whether the
// frame is voiced.
func (t *pitchTracker) estimate(frame []float64) (float64, bool) {
	mean := 0.0
	for _, v := range frame {
		mean += v
	}
	mean /= float64(len(frame))

	var energy float64
	work := make([]float64, len(frame))
	for i, v := range frame {
		centered := v - mean
		energy += centered * centered
		work[i] = centered * t.window[i]
	}
	if math.Sqrt(energy/float64(len(frame))) < t.cfg.MinPitchRMS {
		return 0, false
	}

	acf := t.autocorrelate(work)
	if acf[0] <= 0 {
		return 0, false
	}

	// Normalize and divide out the window's own autocorrelation so the
	// tapering does not suppress long lags.
	corrected := make([]float64, t.lagMax+2)
	for lag := 0; lag <= t.lagMax+1 && lag < len(acf); lag++ {
		if t.winACF[lag] <= 0 {
			break
		}
		corrected[lag] = (acf[lag] / acf[0]) / (t.winACF[lag] / t.winACF[0])
	}

	bestLag, bestVal := 0, 0.0
	for lag := t.lagMin; lag <= t.lagMax; lag++ {
		if corrected[lag] > bestVal && corrected[lag] > corrected[lag-1] && corrected[lag] >= corrected[lag+1] {
			bestLag, bestVal = lag, corrected[lag]
		}
	}
	if bestLag == 0 || bestVal < t.cfg.VoicingThreshold {
		return 0, false
	}

	lag := refinePeak(corrected, bestLag)
	f0 := float64(t.sampleRate) / lag
	if f0 < t.cfg.F0Min || f0 > t.cfg.F0Max {
		return 0, false
	}
	return f0, true
}

// autocorrelate computes the linear autocorrelation of x via the power
// spectrum. The result shares the FFT's unnormalized scaling, which cancels
// in the ratios taken by the caller.
func (t *pitchTracker) autocorrelate(x []float64) []float64 {
	copy(t.padded, x)
	for i := len(x); i < len(t.padded); i++ {
		t.padded[i] = 0
	}
	t.fft.Coefficients(t.spectrum, t.padded)
	for i, c := range t.spectrum {
		re := real(c)
		im := imag(c)
		t.spectrum[i] = complex(re*re+im*im, 0)
	}
	return t.fft.Sequence(nil, t.spectrum)
}

// refinePeak sharpens an integer-lag autocorrelation peak with parabolic
// interpolation through its neighbors.
func refinePeak(acf []float64, lag int) float64 {
	if lag <= 0 || lag+1 >= len(acf) {
		return float64(lag)
	}
	a, b, c := acf[lag-1], acf[lag], acf[lag+1]
	denom := a - 2*b + c
	if denom == 0 {
		return float64(lag)
	}
	shift := 0.5 * (a - c) / denom
	if shift < -0.5 || shift > 0.5 {
		return float64(lag)
	}
	return float64(lag) + shift
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
