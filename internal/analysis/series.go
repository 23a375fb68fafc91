// Package analysis implements the vocal dose pipeline: calibrated SPL
// estimation, pitch tracking, frame synchronization and dose integration.
package analysis

// FrameDuration is the analysis time step in seconds. Every per-frame series
// produced by this package lives on the same 20 Hz grid: frame i covers
// [i*FrameDuration, (i+1)*FrameDuration).
const FrameDuration = 0.05

// FrameSeries holds one per-frame quantity on the analysis grid.
// Times[i] is always exactly i*FrameDuration for a series produced from the
// start of a recording; Valid marks frames carrying a usable value.
type FrameSeries struct {
	Times  []float64
	Values []float64
	Valid  []bool
}

// newFrameSeries allocates a series of n frames with grid-exact timestamps.
func newFrameSeries(n int) FrameSeries {
	s := FrameSeries{
		Times:  make([]float64, n),
		Values: make([]float64, n),
		Valid:  make([]bool, n),
	}
	for i := range s.Times {
		s.Times[i] = float64(i) * FrameDuration
	}
	return s
}

// Len returns the number of frames in the series.
func (s FrameSeries) Len() int { return len(s.Values) }

// FrameTable is the masked, aligned output of the synchronizer: the frame-level
// {time, SPL, F0, voiced} table handed to the dose engine and to exporters.
// Unvoiced frames carry zero SPL and F0.
type FrameTable struct {
	Times  []float64
	SPL    []float64
	F0     []float64
	Voiced []bool

	// CPPS is optionally filled in after masking; zero when not computed.
	CPPS []float64
}

// Len returns the number of frames in the table.
func (t *FrameTable) Len() int { return len(t.Times) }

// VoicedCount returns the number of voiced frames.
func (t *FrameTable) VoicedCount() int {
	n := 0
	for _, v := range t.Voiced {
		if v {
			n++
		}
	}
	return n
}

// Duration returns the total time span covered by the table in seconds.
func (t *FrameTable) Duration() float64 {
	return float64(len(t.Times)) * FrameDuration
}
