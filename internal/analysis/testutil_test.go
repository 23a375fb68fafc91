package analysis

import (
	"math"
	"testing"

	"github.com/vocalab/vocaldose/internal/audio"
)

// TestSignalOptions configures the synthetic audio to generate
type TestSignalOptions struct {
	DurationSecs float64 // Total duration in seconds
	SampleRate   int     // Sample rate (default: 44100)
	ToneFreq     float64 // Sine wave frequency in Hz (0 = no tone)
	ToneAmp      float64 // Linear tone amplitude (1.0 = full scale)
	NoiseAmp     float64 // Linear white noise amplitude (0 = no noise)
	SilenceGap   struct {
		Start    float64 // Start time of silence gap in seconds
		Duration float64 // Duration of silence gap in seconds
	}
}

// generateSignal creates a synthetic in-memory signal for testing. The
// generated audio can include a sine wave tone, white noise, and a silence
// gap.
func generateSignal(t *testing.T, opts TestSignalOptions) *audio.Signal {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.DurationSecs == 0 {
		opts.DurationSecs = 5.0
	}

	totalSamples := int(opts.DurationSecs * float64(opts.SampleRate))
	samples := make([]float64, totalSamples)

	silenceStart := int(opts.SilenceGap.Start * float64(opts.SampleRate))
	silenceEnd := int((opts.SilenceGap.Start + opts.SilenceGap.Duration) * float64(opts.SampleRate))

	// Simple LCG random number generator for deterministic noise
	rngState := uint32(12345)
	nextRandom := func() float64 {
		rngState = rngState*1664525 + 1013904223
		return (float64(rngState)/float64(0xFFFFFFFF))*2.0 - 1.0
	}

	for i := 0; i < totalSamples; i++ {
		if i >= silenceStart && i < silenceEnd && opts.SilenceGap.Duration > 0 {
			continue
		}

		var sample float64
		if opts.ToneFreq > 0 && opts.ToneAmp > 0 {
			tm := float64(i) / float64(opts.SampleRate)
			sample += opts.ToneAmp * math.Sin(2.0*math.Pi*opts.ToneFreq*tm)
		}
		if opts.NoiseAmp > 0 {
			sample += opts.NoiseAmp * nextRandom()
		}
		samples[i] = sample
	}

	return &audio.Signal{Samples: samples, SampleRate: opts.SampleRate}
}

// sineSignal is shorthand for a pure tone at the given amplitude.
func sineSignal(t *testing.T, freq, amp, durationSecs float64) *audio.Signal {
	t.Helper()
	return generateSignal(t, TestSignalOptions{
		DurationSecs: durationSecs,
		ToneFreq:     freq,
		ToneAmp:      amp,
	})
}

// harmonicSignal builds a voice-like tone: a fundamental plus equal-power
// harmonics up to about 3 kHz, scaled to the given peak amplitude.
func harmonicSignal(t *testing.T, f0, amp, durationSecs float64) *audio.Signal {
	t.Helper()

	sampleRate := 44100
	total := int(durationSecs * float64(sampleRate))
	samples := make([]float64, total)

	harmonics := int(3000 / f0)
	if harmonics < 1 {
		harmonics = 1
	}
	for i := range samples {
		tm := float64(i) / float64(sampleRate)
		var v float64
		for h := 1; h <= harmonics; h++ {
			v += math.Sin(2 * math.Pi * f0 * float64(h) * tm)
		}
		samples[i] = v
	}

	peak := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	for i := range samples {
		samples[i] *= amp / peak
	}
	return &audio.Signal{Samples: samples, SampleRate: sampleRate}
}

// silentSignal is shorthand for digital silence.
func silentSignal(t *testing.T, durationSecs float64) *audio.Signal {
	t.Helper()
	return generateSignal(t, TestSignalOptions{DurationSecs: durationSecs})
}

// voicedTable builds a frame table with n frames, all voiced at the given
// SPL and F0.
func voicedTable(n int, spl, f0 float64) *FrameTable {
	table := &FrameTable{
		Times:  make([]float64, n),
		SPL:    make([]float64, n),
		F0:     make([]float64, n),
		Voiced: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		table.Times[i] = float64(i) * FrameDuration
		table.SPL[i] = spl
		table.F0[i] = f0
		table.Voiced[i] = true
	}
	return table
}
