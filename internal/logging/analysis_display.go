package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vocalab/vocaldose/internal/analysis"
)

// DisplayResults outputs the completed analysis to the console. Used by
// plain mode for scripted runs and logs.
func DisplayResults(w io.Writer, voicePath string, result *analysis.PipelineResult, profile analysis.SexProfile) {
	calibrated := result.Calibration != nil

	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "VOCAL DOSE: %s\n", filepath.Base(voicePath))
	fmt.Fprintln(w, strings.Repeat("=", 70))

	if meta := result.VoiceMeta; meta != nil {
		fmt.Fprintf(w, "Duration:    %s\n", formatDurationHMS(meta.Duration))
		fmt.Fprintf(w, "Sample Rate: %d Hz\n", meta.SampleRate)
		fmt.Fprintf(w, "Channels:    %s\n", channelName(meta.Channels))
	}
	fmt.Fprintf(w, "Profile:     %s\n", profile)
	if cal := result.Calibration; cal != nil {
		fmt.Fprintf(w, "Calibration: %+.2f dB (at %.2f m, reported at %.2f m)\n",
			cal.Constant, cal.ReferenceDistance, cal.TargetDistance)
	} else {
		fmt.Fprintln(w, "Calibration: none (relative SPL scale)")
	}
	fmt.Fprintln(w)

	s := result.Summary
	writeAnalysisSection(w, "DOSES")
	fmt.Fprintf(w, "  Phonation Time:    %.1f s (%.1f%% of recording)\n", s.Dt, s.DtPercent)
	fmt.Fprintf(w, "  Vocal Loading:     %.2f kcycles\n", s.VLI)
	fmt.Fprintf(w, "  Distance Dose:     %.2f m\n", s.Dd)
	fmt.Fprintf(w, "  Dissipation Dose:  %.4f J/cm2\n", s.De)
	fmt.Fprintf(w, "  Radiated Dose:     %.4f J\n", s.Dr)
	fmt.Fprintln(w)

	if s.Defined {
		writeAnalysisSection(w, "VOICED STATISTICS")
		fmt.Fprintf(w, "  SPL:  %.1f dBA (spread %.1f)\n", s.SPLMean, s.SPLStd)
		fmt.Fprintf(w, "  F0:   %.1f Hz (spread %.1f)   %s\n",
			s.F0Mean, s.F0Std, interpretF0Mean(s.F0Mean, profile))
		if mean, ok := cppsMean(result.Table); ok {
			fmt.Fprintf(w, "  CPPS: %.1f dB   %s\n", mean, interpretCPPS(mean))
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No voiced frames: normalized doses and statistics are undefined.")
		fmt.Fprintln(w)
	}

	if tips := GenerateVoiceTips(result, calibrated); len(tips) > 0 {
		writeAnalysisSection(w, "SUGGESTIONS")
		for _, tip := range tips {
			fmt.Fprintf(w, "  * %s\n", tip.Message)
		}
		fmt.Fprintln(w)
	}
}

func writeAnalysisSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// formatDurationHMS renders seconds as H:MM:SS or M:SS.
func formatDurationHMS(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
