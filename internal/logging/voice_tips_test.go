package logging

import (
	"testing"

	"github.com/vocalab/vocaldose/internal/analysis"
)

func resultWithSummary(s analysis.DoseSummary) *analysis.PipelineResult {
	return &analysis.PipelineResult{
		Table:   &analysis.FrameTable{},
		Summary: s,
	}
}

func ruleIDs(tips []VoiceTip) map[string]bool {
	ids := make(map[string]bool, len(tips))
	for _, tip := range tips {
		ids[tip.RuleID] = true
	}
	return ids
}

func TestGenerateVoiceTipsNoVoicing(t *testing.T) {
	tips := GenerateVoiceTips(resultWithSummary(analysis.DoseSummary{}), true)
	ids := ruleIDs(tips)
	if !ids["no_voicing"] {
		t.Error("expected no_voicing tip for empty summary")
	}
	if len(tips) == 0 || tips[0].RuleID != "no_voicing" {
		t.Error("no_voicing should be the highest priority tip")
	}
}

func TestGenerateVoiceTipsHeavyPhonation(t *testing.T) {
	s := analysis.DoseSummary{
		Dt:        70,
		DtPercent: 70,
		Defined:   true,
		SPLMean:   65,
		F0Mean:    120,
		F0Std:     25,
	}
	ids := ruleIDs(GenerateVoiceTips(resultWithSummary(s), true))
	if !ids["heavy_phonation"] {
		t.Error("expected heavy_phonation tip at 70% voicing")
	}
	if ids["no_voicing"] {
		t.Error("no_voicing must not fire when Dt > 0")
	}
}

func TestGenerateVoiceTipsLoudVoiceNeedsCalibration(t *testing.T) {
	s := analysis.DoseSummary{
		Dt:        10,
		DtPercent: 30,
		Defined:   true,
		SPLMean:   85,
		F0Mean:    120,
		F0Std:     25,
	}
	if ids := ruleIDs(GenerateVoiceTips(resultWithSummary(s), true)); !ids["loud_voice"] {
		t.Error("expected loud_voice tip on calibrated 85 dBA mean")
	}
	if ids := ruleIDs(GenerateVoiceTips(resultWithSummary(s), false)); ids["loud_voice"] {
		t.Error("loud_voice must not fire on the relative scale")
	}
}

func TestGenerateVoiceTipsUncalibrated(t *testing.T) {
	s := analysis.DoseSummary{Dt: 10, DtPercent: 30, Defined: true, F0Mean: 120, F0Std: 25, SPLMean: 65}
	if ids := ruleIDs(GenerateVoiceTips(resultWithSummary(s), false)); !ids["uncalibrated"] {
		t.Error("expected uncalibrated tip without a calibration run")
	}
	if ids := ruleIDs(GenerateVoiceTips(resultWithSummary(s), true)); ids["uncalibrated"] {
		t.Error("uncalibrated tip must not fire when calibrated")
	}
}

func TestGenerateVoiceTipsCapped(t *testing.T) {
	// A summary firing many rules still yields at most MaxVoiceTips.
	s := analysis.DoseSummary{
		Dt:        90,
		DtPercent: 90,
		Defined:   true,
		SPLMean:   85,
		F0Mean:    120,
		F0Std:     2,
		DdNorm:    0.2,
	}
	tips := GenerateVoiceTips(resultWithSummary(s), false)
	if len(tips) > MaxVoiceTips {
		t.Errorf("got %d tips, want at most %d", len(tips), MaxVoiceTips)
	}
	for i := 1; i < len(tips); i++ {
		if tips[i].Priority > tips[i-1].Priority {
			t.Errorf("tips not sorted by priority: %v before %v", tips[i-1], tips[i])
		}
	}
}
