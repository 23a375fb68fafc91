// Package audio provides WAV file loading for the analysis pipeline.
package audio

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// Signal is a decoded mono audio signal. Samples are normalized to [-1, 1].
// A Signal is immutable once loaded; the pipeline run that loaded it owns it.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the signal length in seconds.
func (s *Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// Peak returns the maximum absolute sample value of the signal.
func (s *Signal) Peak() float64 {
	peak := 0.0
	for _, v := range s.Samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// Metadata describes the source file the signal was decoded from.
type Metadata struct {
	Duration   float64 // seconds
	SampleRate int
	Channels   int
	BitDepth   int
}

// ReadFile decodes a WAV file into a mono Signal. Multi-channel files are
// reduced to the channel with the highest RMS energy, which for a recorder
// placed near the speaker is the channel carrying the voice.
func ReadFile(path string) (*Signal, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, nil, fmt.Errorf("not a valid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, nil, fmt.Errorf("missing or invalid sample rate in %s", path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	// Normalize integer PCM to [-1, 1] by bit depth
	scale := 1.0 / float64(int(1)<<(dec.BitDepth-1))
	frames := len(buf.Data) / channels

	sig := &Signal{
		Samples:    bestChannel(buf.Data, channels, frames, scale),
		SampleRate: buf.Format.SampleRate,
	}
	meta := &Metadata{
		Duration:   sig.Duration(),
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		BitDepth:   int(dec.BitDepth),
	}
	return sig, meta, nil
}

// bestChannel deinterleaves the PCM data and returns the channel with the
// highest RMS energy as normalized float64 samples.
func bestChannel(data []int, channels, frames int, scale float64) []float64 {
	if channels == 1 {
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v) * scale
		}
		return out
	}

	best := 0
	bestEnergy := -1.0
	for ch := 0; ch < channels; ch++ {
		var sum float64
		for i := 0; i < frames; i++ {
			v := float64(data[i*channels+ch]) * scale
			sum += v * v
		}
		if sum > bestEnergy {
			bestEnergy = sum
			best = ch
		}
	}

	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		out[i] = float64(data[i*channels+best]) * scale
	}
	return out
}
