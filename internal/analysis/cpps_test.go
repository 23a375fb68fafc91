package analysis

import (
	"testing"

	"github.com/vocalab/vocaldose/internal/audio"
)

// tableCPPSMean averages the nonzero CPPS values of voiced frames.
func tableCPPSMean(t *testing.T, table *FrameTable) float64 {
	t.Helper()
	var sum float64
	var n int
	for i := 0; i < table.Len(); i++ {
		if table.Voiced[i] && table.CPPS[i] != 0 {
			sum += table.CPPS[i]
			n++
		}
	}
	if n == 0 {
		t.Fatal("no CPPS values computed")
	}
	return sum / float64(n)
}

func cppsFor(t *testing.T, sig *audio.Signal) *FrameTable {
	t.Helper()
	frameLen := int(FrameDuration * float64(sig.SampleRate))
	table := voicedTable(len(sig.Samples)/frameLen, 70, 150)
	ComputeCPPS(sig, table, DefaultConfig())
	return table
}

func TestComputeCPPSPeriodicVsNoise(t *testing.T) {
	// A harmonic signal has a pronounced cepstral peak at its period;
	// white noise does not. The prominence must separate them clearly.
	tone := cppsFor(t, harmonicSignal(t, 150, 0.5, 6.0))
	noise := cppsFor(t, generateSignal(t, TestSignalOptions{DurationSecs: 6.0, NoiseAmp: 0.3}))

	toneMean := tableCPPSMean(t, tone)
	noiseMean := tableCPPSMean(t, noise)
	if toneMean <= noiseMean+3 {
		t.Errorf("tone CPPS %.2f not clearly above noise CPPS %.2f", toneMean, noiseMean)
	}
}

func TestComputeCPPSUnvoicedFramesZero(t *testing.T) {
	sig := harmonicSignal(t, 150, 0.5, 6.0)
	frameLen := int(FrameDuration * float64(sig.SampleRate))
	table := voicedTable(len(sig.Samples)/frameLen, 70, 150)
	for i := 0; i < 10; i++ {
		table.Voiced[i] = false
		table.SPL[i] = 0
		table.F0[i] = 0
	}

	ComputeCPPS(sig, table, DefaultConfig())
	for i := 0; i < 10; i++ {
		if table.CPPS[i] != 0 {
			t.Errorf("frame %d: unvoiced frame has CPPS %v", i, table.CPPS[i])
		}
	}
}

func TestComputeCPPSTooLittleVoiced(t *testing.T) {
	// Below the minimum voiced material the column stays zeroed.
	sig := sineSignal(t, 150, 0.5, 1.0)
	frameLen := int(FrameDuration * float64(sig.SampleRate))
	table := voicedTable(len(sig.Samples)/frameLen, 70, 150)
	for i := 2; i < table.Len(); i++ {
		table.Voiced[i] = false
	}

	ComputeCPPS(sig, table, DefaultConfig())
	if len(table.CPPS) != table.Len() {
		t.Fatalf("CPPS column length %d, want %d", len(table.CPPS), table.Len())
	}
	for i, v := range table.CPPS {
		if v != 0 {
			t.Errorf("frame %d: CPPS %v with insufficient voiced material", i, v)
		}
	}
}
