package analysis

import (
	"fmt"
	"math"
)

// SexProfile selects the vocal fold biomechanics used by the dose model.
// The averaged profile takes the per-frame mean of the male and female
// intermediate quantities rather than averaging the model constants.
type SexProfile string

const (
	ProfileMale     SexProfile = "male"
	ProfileFemale   SexProfile = "female"
	ProfileAveraged SexProfile = "other"
)

// ParseSexProfile maps a user-supplied profile name to a SexProfile.
func ParseSexProfile(s string) (SexProfile, error) {
	switch SexProfile(s) {
	case ProfileMale, ProfileFemale, ProfileAveraged:
		return SexProfile(s), nil
	}
	return "", fmt.Errorf("unknown sex profile %q (want male, female or other)", s)
}

// DoseSummary holds the accumulated vocal doses of a recording together with
// their per-phonation-second normalizations and voiced-frame statistics.
// When no frame is voiced the cumulative doses are zero and the normalized
// block is undefined rather than zero; Defined reports which case applies.
type DoseSummary struct {
	Dt        float64 // phonation time, s
	VLI       float64 // vocal loading index, kilocycles
	Dd        float64 // distance dose, m
	De        float64 // energy dissipation dose, J/cm^2
	Dr        float64 // radiated energy dose, J
	DtPercent float64 // phonation time as a share of recording duration

	// Undefined when Dt is zero.
	Defined  bool
	DdNorm   float64 // m per phonation second
	DeNorm   float64 // J/cm^2 per phonation second
	DrNorm   float64 // J per phonation second
	SPLMean  float64 // dBA, voiced frames
	SPLStd   float64
	F0Mean   float64 // Hz, voiced frames
	F0Std    float64
}

// glottalTerms are the per-frame intermediate quantities of the dose model.
// amp is the vibration amplitude already weighted by the frame duration.
type glottalTerms struct {
	pth       float64 // phonation threshold pressure, kPa
	pl        float64 // lung pressure, kPa
	amp       float64 // amplitude term, m*s
	period    float64 // glottal cycle shape term, s
	viscosity float64 // tissue viscosity term
}

// Vocal fold model constants. The fundamental frequency is referenced to a
// typical speaking pitch per profile before entering the pressure and period
// expressions.
const (
	maleRefF0   = 120.0 // Hz
	femaleRefF0 = 190.0 // Hz

	maleAmpCoeff   = 0.016
	femaleAmpCoeff = 0.010

	lungPressureRefDB  = 72.48
	lungPressureSlope  = 27.3
	radiationRefDB     = 120.0
	energyScaleDivisor = 1000.0
)

func maleTerms(f0, spl float64) glottalTerms {
	pth := 0.14 + 0.06*math.Pow(f0/maleRefF0, 2)
	pl := pth + math.Pow(10, (spl-lungPressureRefDB)/lungPressureSlope)
	return glottalTerms{
		pth:       pth,
		pl:        pl,
		amp:       FrameDuration * maleAmpCoeff * math.Sqrt(math.Max((pl-pth)/pth, 0)),
		period:    0.0158 / (1 + 2.15*math.Sqrt(f0/maleRefF0)),
		viscosity: 5.4 / f0,
	}
}

func femaleTerms(f0, spl float64) glottalTerms {
	pth := 0.14 + 0.06*math.Pow(f0/femaleRefF0, 2)
	pl := pth + math.Pow(10, (spl-lungPressureRefDB)/lungPressureSlope)
	return glottalTerms{
		pth:       pth,
		pl:        pl,
		amp:       FrameDuration * femaleAmpCoeff * math.Sqrt(math.Max((pl-pth)/pth, 0)),
		period:    0.01063 / (1 + 1.69*math.Sqrt(f0/femaleRefF0)),
		viscosity: 1.4 / f0,
	}
}

func (p SexProfile) terms(f0, spl float64) glottalTerms {
	switch p {
	case ProfileMale:
		return maleTerms(f0, spl)
	case ProfileFemale:
		return femaleTerms(f0, spl)
	}
	m := maleTerms(f0, spl)
	f := femaleTerms(f0, spl)
	return glottalTerms{
		pth:       0.5 * (m.pth + f.pth),
		pl:        0.5 * (m.pl + f.pl),
		amp:       0.5 * (m.amp + f.amp),
		period:    0.5 * (m.period + f.period),
		viscosity: 0.5 * (m.viscosity + f.viscosity),
	}
}

// ComputeDoses integrates the vocal doses over the voiced frames of a
// synchronized frame table.
func ComputeDoses(table *FrameTable, profile SexProfile) DoseSummary {
	var (
		dt, vli, dd, de, dr float64
		splSum, f0Sum       float64
		voiced              int
	)

	for i := 0; i < table.Len(); i++ {
		if !table.Voiced[i] {
			continue
		}
		f0 := table.F0[i]
		spl := table.SPL[i]
		g := profile.terms(f0, spl)
		omega := 2 * math.Pi * f0

		dt += FrameDuration
		vli += f0 * FrameDuration
		dd += f0 * g.amp
		de += g.viscosity * math.Pow(g.amp/g.period, 2) * omega * omega * FrameDuration / energyScaleDivisor
		dr += math.Pow(10, (spl-radiationRefDB)/10) * 1000 * FrameDuration

		splSum += spl
		f0Sum += f0
		voiced++
	}

	summary := DoseSummary{
		Dt:  dt,
		VLI: vli / 1000,
		Dd:  4 * dd,
		De:  0.5 * de,
		Dr:  4 * math.Pi * dr,
	}
	if d := table.Duration(); d > 0 {
		summary.DtPercent = 100 * summary.Dt / d
	}
	if voiced == 0 {
		return summary
	}

	summary.Defined = true
	summary.DdNorm = summary.Dd / summary.Dt
	summary.DeNorm = summary.De / summary.Dt
	summary.DrNorm = summary.Dr / summary.Dt
	summary.SPLMean = splSum / float64(voiced)
	summary.F0Mean = f0Sum / float64(voiced)

	var splVar, f0Var float64
	for i := 0; i < table.Len(); i++ {
		if !table.Voiced[i] {
			continue
		}
		splVar += (table.SPL[i] - summary.SPLMean) * (table.SPL[i] - summary.SPLMean)
		f0Var += (table.F0[i] - summary.F0Mean) * (table.F0[i] - summary.F0Mean)
	}
	summary.SPLStd = math.Sqrt(splVar / float64(voiced))
	summary.F0Std = math.Sqrt(f0Var / float64(voiced))
	return summary
}
