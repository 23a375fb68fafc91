package analysis

import "math"

// Synchronize merges the SPL and F0 series onto one frame table and applies
// the silence mask. The shorter series dictates the table length. A frame is
// voiced only when its level clears the silence threshold and its pitch
// estimate is valid; every other frame has both values zeroed, so applying
// the mask a second time changes nothing.
func Synchronize(spl, f0 FrameSeries, cfg Config) (*FrameTable, error) {
	n := spl.Len()
	if f0.Len() < n {
		n = f0.Len()
	}

	table := &FrameTable{
		Times:  make([]float64, n),
		SPL:    make([]float64, n),
		F0:     make([]float64, n),
		Voiced: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		if math.Abs(spl.Times[i]-f0.Times[i]) > FrameDuration/2 {
			return nil, &FrameAlignmentError{
				Index:   i,
				SPLTime: spl.Times[i],
				F0Time:  f0.Times[i],
			}
		}
		table.Times[i] = spl.Times[i]

		voiced := spl.Valid[i] && spl.Values[i] >= cfg.SilenceThresholdDBA && f0.Valid[i]
		if voiced {
			table.SPL[i] = spl.Values[i]
			table.F0[i] = f0.Values[i]
			table.Voiced[i] = true
		}
	}
	return table, nil
}
