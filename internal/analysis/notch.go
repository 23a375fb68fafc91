package analysis

import (
	"math"

	"github.com/vocalab/vocaldose/internal/audio"
)

// notch quality factor. Narrow enough to leave speech untouched while pulling
// mains hum and its harmonics well below the silence threshold.
const humNotchQ = 30.0

// biquad is a direct form I second order IIR section.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

// newNotch designs a biquad notch at freq Hz for the given sample rate.
func newNotch(freq, q float64, sampleRate int) *biquad {
	w0 := 2 * math.Pi * freq / float64(sampleRate)
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)
	a0 := 1 + alpha
	return &biquad{
		b0: 1 / a0,
		b1: -2 * cosW0 / a0,
		b2: 1 / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// RemoveHum filters mains hum out of the signal in place, notching the mains
// frequency and its first harmonics. Harmonics at or above Nyquist are
// skipped.
func RemoveHum(sig *audio.Signal, humFreq float64, harmonics int) {
	if humFreq <= 0 || harmonics < 1 {
		return
	}
	nyquist := float64(sig.SampleRate) / 2
	var cascade []*biquad
	for h := 1; h <= harmonics; h++ {
		freq := humFreq * float64(h)
		if freq >= nyquist {
			break
		}
		cascade = append(cascade, newNotch(freq, humNotchQ, sig.SampleRate))
	}
	for i, v := range sig.Samples {
		for _, f := range cascade {
			v = f.process(v)
		}
		sig.Samples[i] = v
	}
}
