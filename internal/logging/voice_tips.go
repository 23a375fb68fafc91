package logging

import (
	"sort"

	"github.com/vocalab/vocaldose/internal/analysis"
)

// VoiceTip is a single piece of actionable vocal health or measurement
// advice derived from the dose summary.
type VoiceTip struct {
	Priority int    // Higher = more important (1-10)
	Message  string // Human-readable advice (1-2 sentences)
	RuleID   string // Identifier for testing/logging (e.g., "no_voicing")
}

// MaxVoiceTips is the maximum number of tips to return.
const MaxVoiceTips = 5

// GenerateVoiceTips inspects a completed analysis and returns prioritised
// suggestions. Calibrated determines whether absolute-level rules fire.
func GenerateVoiceTips(result *analysis.PipelineResult, calibrated bool) []VoiceTip {
	if result == nil {
		return nil
	}
	s := result.Summary

	var tips []VoiceTip
	add := func(t *VoiceTip) {
		if t != nil {
			tips = append(tips, *t)
		}
	}

	add(tipNoVoicing(s))
	add(tipHeavyPhonation(s))
	add(tipHighDistanceRate(s))
	add(tipLoudVoice(s, calibrated))
	add(tipMonotonePitch(s))
	add(tipLowCPPS(result))
	add(tipUncalibrated(calibrated))

	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].Priority > tips[j].Priority
	})
	if len(tips) > MaxVoiceTips {
		tips = tips[:MaxVoiceTips]
	}
	return tips
}

func tipNoVoicing(s analysis.DoseSummary) *VoiceTip {
	if s.Dt > 0 {
		return nil
	}
	return &VoiceTip{
		Priority: 10,
		RuleID:   "no_voicing",
		Message: "No voiced frames were detected. Check that the microphone was " +
			"close enough to the speaker and that the recording is not silent.",
	}
}

func tipHeavyPhonation(s analysis.DoseSummary) *VoiceTip {
	if s.DtPercent < 60 {
		return nil
	}
	return &VoiceTip{
		Priority: 8,
		RuleID:   "heavy_phonation",
		Message: "The voice was active for over 60% of the recording. Sustained " +
			"phonation at this rate is fatiguing; schedule regular vocal rest.",
	}
}

func tipHighDistanceRate(s analysis.DoseSummary) *VoiceTip {
	if !s.Defined || s.DdNorm < 0.10 {
		return nil
	}
	return &VoiceTip{
		Priority: 7,
		RuleID:   "high_distance_rate",
		Message: "Vocal fold travel per phonation second is high, indicating " +
			"loud or high-pitched voicing. Consider amplification to reduce load.",
	}
}

func tipLoudVoice(s analysis.DoseSummary, calibrated bool) *VoiceTip {
	if !calibrated || !s.Defined || s.SPLMean < 78 {
		return nil
	}
	return &VoiceTip{
		Priority: 7,
		RuleID:   "loud_voice",
		Message: "Average voiced level is in the raised-voice range. Reducing " +
			"background noise or using a microphone lowers the needed effort.",
	}
}

func tipMonotonePitch(s analysis.DoseSummary) *VoiceTip {
	if !s.Defined || s.F0Std >= 10 {
		return nil
	}
	return &VoiceTip{
		Priority: 4,
		RuleID:   "monotone_pitch",
		Message: "Pitch variability is very low. A monotone delivery can " +
			"indicate vocal fatigue or strain.",
	}
}

func tipLowCPPS(result *analysis.PipelineResult) *VoiceTip {
	table := result.Table
	if table == nil || len(table.CPPS) != table.Len() {
		return nil
	}
	mean, ok := cppsMean(table)
	if !ok || mean >= 10 {
		return nil
	}
	return &VoiceTip{
		Priority: 9,
		RuleID:   "low_cpps",
		Message: "Cepstral peak prominence is low, which correlates with " +
			"dysphonia. Consider a clinical voice assessment.",
	}
}

func tipUncalibrated(calibrated bool) *VoiceTip {
	if calibrated {
		return nil
	}
	return &VoiceTip{
		Priority: 3,
		RuleID:   "uncalibrated",
		Message: "No calibration recording was supplied, so levels and doses " +
			"are on a relative scale. Record a calibration take next time for " +
			"comparable results.",
	}
}
