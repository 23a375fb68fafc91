package analysis

import (
	"math"
	"testing"
)

// within reports whether got is inside [want-tol, want+tol].
func within(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestComputeDosesKnownValues(t *testing.T) {
	// 200 voiced frames (10 s) at 70 dBA / 120 Hz, checked against hand
	// computed values of the dose model.
	tests := []struct {
		desc    string
		profile SexProfile
		wantDd  float64
		wantDe  float64
	}{
		{"male", ProfileMale, 154.6767, 13.19834},
		{"female", ProfileFemale, 106.7791, 1.99331},
		{"averaged", ProfileAveraged, 130.7279, 6.54631},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			s := ComputeDoses(voicedTable(200, 70, 120), tt.profile)

			if !within(s.Dt, 10.0, 1e-9) {
				t.Errorf("Dt = %v, want 10", s.Dt)
			}
			if !within(s.VLI, 1.2, 1e-9) {
				t.Errorf("VLI = %v, want 1.2", s.VLI)
			}
			if !within(s.Dd, tt.wantDd, 1e-3) {
				t.Errorf("Dd = %v, want %v", s.Dd, tt.wantDd)
			}
			if !within(s.De, tt.wantDe, 1e-4) {
				t.Errorf("De = %v, want %v", s.De, tt.wantDe)
			}
			if !within(s.Dr, 1.256637, 1e-5) {
				t.Errorf("Dr = %v, want 1.256637", s.Dr)
			}
			if !within(s.DtPercent, 100.0, 1e-9) {
				t.Errorf("DtPercent = %v, want 100", s.DtPercent)
			}
			if !s.Defined {
				t.Error("summary should be defined with voiced frames")
			}
		})
	}
}

func TestComputeDosesAveragedProfile(t *testing.T) {
	// The distance dose is linear in the amplitude term, so the averaged
	// profile lands exactly between the male and female doses. The energy
	// dose is quadratic and must not.
	table := voicedTable(100, 72, 150)
	male := ComputeDoses(table, ProfileMale)
	female := ComputeDoses(table, ProfileFemale)
	other := ComputeDoses(table, ProfileAveraged)

	if mean := (male.Dd + female.Dd) / 2; !within(other.Dd, mean, 1e-9) {
		t.Errorf("averaged Dd = %v, want exact midpoint %v", other.Dd, mean)
	}
	if mean := (male.De + female.De) / 2; within(other.De, mean, 1e-6) {
		t.Errorf("averaged De = %v should not equal the dose midpoint %v", other.De, mean)
	}
}

func TestComputeDosesZeroVoicing(t *testing.T) {
	table := voicedTable(100, 70, 120)
	for i := range table.Voiced {
		table.Voiced[i] = false
		table.SPL[i] = 0
		table.F0[i] = 0
	}

	s := ComputeDoses(table, ProfileMale)
	if s.Dt != 0 || s.VLI != 0 || s.Dd != 0 || s.De != 0 || s.Dr != 0 {
		t.Errorf("cumulative doses must be zero with no voicing: %+v", s)
	}
	if s.Defined {
		t.Error("normalized block must be undefined with no voicing")
	}
	if s.DdNorm != 0 || s.SPLMean != 0 {
		t.Error("undefined metrics must stay at their zero value")
	}
	if math.IsNaN(s.DdNorm) || math.IsNaN(s.SPLMean) {
		t.Error("undefined metrics must not be NaN")
	}
}

func TestComputeDosesAdditivity(t *testing.T) {
	// Cumulative doses integrate frame by frame: a table is worth the sum
	// of its halves.
	whole := voicedTable(120, 68, 180)
	first := &FrameTable{
		Times:  whole.Times[:60],
		SPL:    whole.SPL[:60],
		F0:     whole.F0[:60],
		Voiced: whole.Voiced[:60],
	}
	second := &FrameTable{
		Times:  whole.Times[60:],
		SPL:    whole.SPL[60:],
		F0:     whole.F0[60:],
		Voiced: whole.Voiced[60:],
	}

	sw := ComputeDoses(whole, ProfileFemale)
	sa := ComputeDoses(first, ProfileFemale)
	sb := ComputeDoses(second, ProfileFemale)

	if !within(sw.Dt, sa.Dt+sb.Dt, 1e-9) {
		t.Errorf("Dt not additive: %v != %v + %v", sw.Dt, sa.Dt, sb.Dt)
	}
	if !within(sw.Dd, sa.Dd+sb.Dd, 1e-9) {
		t.Errorf("Dd not additive: %v != %v + %v", sw.Dd, sa.Dd, sb.Dd)
	}
	if !within(sw.Dr, sa.Dr+sb.Dr, 1e-12) {
		t.Errorf("Dr not additive: %v != %v + %v", sw.Dr, sa.Dr, sb.Dr)
	}
}

func TestComputeDosesStatistics(t *testing.T) {
	// Two voiced levels alternating: mean is the midpoint, spread is half
	// the gap. Unvoiced frames must not enter the statistics.
	table := voicedTable(101, 60, 100)
	for i := 0; i < table.Len(); i++ {
		if i%2 == 1 {
			table.SPL[i] = 80
			table.F0[i] = 200
		}
	}
	table.Voiced[100] = false
	table.SPL[100] = 0
	table.F0[100] = 0

	s := ComputeDoses(table, ProfileAveraged)
	if !within(s.SPLMean, 70, 1e-9) {
		t.Errorf("SPLMean = %v, want 70", s.SPLMean)
	}
	if !within(s.SPLStd, 10, 1e-9) {
		t.Errorf("SPLStd = %v, want 10", s.SPLStd)
	}
	if !within(s.F0Mean, 150, 1e-9) {
		t.Errorf("F0Mean = %v, want 150", s.F0Mean)
	}
	if !within(s.F0Std, 50, 1e-9) {
		t.Errorf("F0Std = %v, want 50", s.F0Std)
	}
}

func TestParseSexProfile(t *testing.T) {
	for _, valid := range []string{"male", "female", "other"} {
		if _, err := ParseSexProfile(valid); err != nil {
			t.Errorf("ParseSexProfile(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseSexProfile("robot"); err == nil {
		t.Error("ParseSexProfile should reject unknown profiles")
	}
}
