package analysis

import (
	"math"
	"testing"
)

func TestAWeightDBReferencePoints(t *testing.T) {
	// Tabulated values of the IEC 61672 A-weighting curve.
	tests := []struct {
		freq float64
		want float64
		tol  float64
	}{
		{1000, 0.0, 0.01},
		{100, -19.1, 0.2},
		{500, -3.2, 0.2},
		{2000, 1.2, 0.2},
		{8000, -1.1, 0.3},
	}

	for _, tt := range tests {
		if got := aWeightDB(tt.freq); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("aWeightDB(%.0f) = %.2f, want %.2f +/- %.2f", tt.freq, got, tt.want, tt.tol)
		}
	}
}

func TestNewAWeightingTable(t *testing.T) {
	n := 2205
	w := newAWeighting(n, 44100)

	if len(w.weights) != n/2+1 {
		t.Fatalf("weight table length %d, want %d", len(w.weights), n/2+1)
	}
	if w.weights[0] != 0 {
		t.Errorf("DC weight = %v, want 0", w.weights[0])
	}

	// Bin 50 is 1 kHz at this frame size; its power weight is unity.
	if math.Abs(w.weights[50]-1.0) > 0.01 {
		t.Errorf("1 kHz power weight = %v, want 1.0", w.weights[50])
	}
}
