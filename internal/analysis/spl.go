package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/vocalab/vocaldose/internal/audio"
)

// EstimateSPL computes the A-weighted sound-pressure level of sig per analysis
// frame. When cal is non-nil its constant is applied as an additive offset, so
// the returned levels are absolute dBA at the calibration target distance;
// with a nil cal the levels are relative (internal offset only).
//
// Silent frames are floored to a sentinel level and flagged invalid instead of
// producing -Inf; the synchronizer masks them to unvoiced downstream.
func EstimateSPL(sig *audio.Signal, role Role, cal *CalibrationResult, cfg Config) (FrameSeries, error) {
	if sig == nil || sig.SampleRate <= 0 {
		return FrameSeries{}, &InsufficientDataError{Role: role, Needed: FrameDuration}
	}

	frameLen := int(math.Round(FrameDuration * float64(sig.SampleRate)))
	if frameLen < 2 || len(sig.Samples) < frameLen {
		return FrameSeries{}, &InsufficientDataError{
			Role:     role,
			Duration: sig.Duration(),
			Needed:   FrameDuration,
		}
	}

	offset := cfg.BaseOffsetDB
	if cal != nil {
		offset += cal.Constant
	}

	fft := fourier.NewFFT(frameLen)
	weighting := newAWeighting(frameLen, float64(sig.SampleRate))

	numFrames := len(sig.Samples) / frameLen
	series := newFrameSeries(numFrames)
	spectrum := make([]complex128, frameLen/2+1)

	for i := 0; i < numFrames; i++ {
		frame := sig.Samples[i*frameLen : (i+1)*frameLen]
		spectrum = fft.Coefficients(spectrum, frame)

		energy := weightedMeanSquare(spectrum, weighting, frameLen)
		if energy <= silenceEnergyFloor {
			series.Values[i] = splFloor
			continue
		}
		series.Values[i] = 10*math.Log10(energy) + offset
		series.Valid[i] = true
	}

	return series, nil
}

// weightedMeanSquare converts an unnormalized half spectrum into the
// A-weighted mean-square level of the frame. The factor 2/N² folds the
// conjugate-symmetric half back in and removes the DFT scaling.
func weightedMeanSquare(spectrum []complex128, w *aWeighting, n int) float64 {
	var sum float64
	for k := 1; k < len(spectrum); k++ {
		mag := cmplx.Abs(spectrum[k])
		sum += w.weights[k] * mag * mag
	}
	return 2 * sum / (float64(n) * float64(n))
}
