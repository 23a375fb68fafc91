// Package logging handles generation of analysis reports for vocal dose runs
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vocalab/vocaldose/internal/analysis"
)

// ============================================================================
// Dose Interpretation Functions
// ============================================================================
// These functions interpret dose metrics and return human-readable
// descriptions. Reference values follow the vocal dosimetry literature
// (Titze, Svec & Popolo 2003; Svec, Popolo & Titze 2003) for typical
// occupational voice users.

// interpretPhonationPercent describes voicing activity over the recording.
//
// Reference values:
// - Conversational speech: 20-40% voiced
// - Teachers during lessons: 20-30%
// - Continuous reading or singing: 50%+
func interpretPhonationPercent(pct float64) string {
	switch {
	case pct < 5:
		return "very sparse voicing, mostly silence"
	case pct < 20:
		return "light voice use"
	case pct < 40:
		return "typical conversational load"
	case pct < 60:
		return "sustained voice use"
	default:
		return "near-continuous phonation, high load"
	}
}

// interpretSPLMean describes the average voiced level. Only meaningful on
// the calibrated absolute scale.
//
// Reference values at 0.5 m:
// - Quiet speech: below 60 dBA
// - Normal conversation: 60-70 dBA
// - Raised voice / classroom projection: 70-80 dBA
// - Shouting: above 80 dBA
func interpretSPLMean(dba float64) string {
	switch {
	case dba < 60:
		return "quiet speech"
	case dba < 70:
		return "normal conversational level"
	case dba < 80:
		return "raised voice"
	default:
		return "very loud, shouting range"
	}
}

// interpretF0Mean describes the average speaking pitch against the typical
// range of the selected profile.
func interpretF0Mean(hz float64, profile analysis.SexProfile) string {
	low, high := 100.0, 250.0
	switch profile {
	case analysis.ProfileMale:
		low, high = 85, 155
	case analysis.ProfileFemale:
		low, high = 165, 255
	}
	switch {
	case hz < low:
		return "below typical speaking range"
	case hz > high:
		return "above typical speaking range"
	default:
		return "within typical speaking range"
	}
}

// interpretCPPS describes overall voice quality from the smoothed cepstral
// peak prominence.
//
// Reference values:
// - Healthy modal voice: above 14 dB
// - Mild dysphonia: 10-14 dB
// - Moderate to severe dysphonia: below 10 dB
func interpretCPPS(db float64) string {
	switch {
	case db >= 14:
		return "strong periodicity, healthy-sounding"
	case db >= 10:
		return "mildly reduced periodicity"
	default:
		return "weak periodicity, possible dysphonia"
	}
}

// ReportData contains everything needed to generate a dose report.
type ReportData struct {
	VoicePath       string
	CalibrationPath string
	StartTime       time.Time
	EndTime         time.Time
	Result          *analysis.PipelineResult
	Profile         analysis.SexProfile
	Calibrated      bool
}

// GenerateReport writes a detailed analysis report alongside the voice
// recording: <voice>.log next to <voice>.wav.
//
// Report structure:
// 1. Header - input file info and timestamp
// 2. Calibration - constant and distances, or a relative-scale notice
// 3. Vocal Doses - cumulative and normalized dose table
// 4. Voiced Statistics - SPL/F0 mean and spread with interpretations
// 5. Voice Quality - CPPS summary when cepstral analysis ran
func GenerateReport(data ReportData) error {
	logPath := strings.TrimSuffix(data.VoicePath, filepath.Ext(data.VoicePath)) + ".log"

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	writeReportHeader(f, data)
	writeCalibrationSection(f, data)
	writeDoseSection(f, data)
	writeStatisticsSection(f, data)
	writeQualitySection(f, data)

	return nil
}

func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

func writeReportHeader(f *os.File, data ReportData) {
	writeSection(f, "Vocal Dose Analysis Report")
	fmt.Fprintf(f, "Generated: %s\n", data.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Input:     %s\n", data.VoicePath)
	if meta := data.Result.VoiceMeta; meta != nil {
		fmt.Fprintf(f, "Format:    %d Hz, %s, %d bit, %s\n",
			meta.SampleRate, channelName(meta.Channels), meta.BitDepth,
			formatDuration(time.Duration(meta.Duration*float64(time.Second))))
	}
	fmt.Fprintf(f, "Profile:   %s\n", data.Profile)
	fmt.Fprintf(f, "Analysis:  %s\n", formatDuration(data.EndTime.Sub(data.StartTime)))
	fmt.Fprintln(f)
}

func writeCalibrationSection(f *os.File, data ReportData) {
	writeSection(f, "Calibration")
	if cal := data.Result.Calibration; cal != nil {
		fmt.Fprintf(f, "Recording: %s\n", data.CalibrationPath)
		fmt.Fprintf(f, "Constant:  %+.2f dB\n", cal.Constant)
		fmt.Fprintf(f, "Distances: measured at %.2f m, reported at %.2f m\n",
			cal.ReferenceDistance, cal.TargetDistance)
	} else {
		fmt.Fprintln(f, "No calibration recording supplied.")
		fmt.Fprintln(f, "SPL values are on a relative scale; dose magnitudes")
		fmt.Fprintln(f, "are not comparable across recording setups.")
	}
	fmt.Fprintln(f)
}

func writeDoseSection(f *os.File, data ReportData) {
	s := data.Result.Summary
	writeSection(f, "Vocal Doses")

	norm := func(v float64, format string) string {
		if !s.Defined {
			return ""
		}
		return fmt.Sprintf(format, v)
	}

	table := MetricTable{Rows: []MetricRow{
		{Label: "Phonation time", Value: fmt.Sprintf("%.1f", s.Dt), Unit: "s",
			Interpretation: interpretPhonationPercent(s.DtPercent)},
		{Label: "Phonation ratio", Value: fmt.Sprintf("%.1f", s.DtPercent), Unit: "%"},
		{Label: "Vocal loading index", Value: fmt.Sprintf("%.2f", s.VLI), Unit: "kcycles"},
		{Label: "Distance dose", Value: fmt.Sprintf("%.2f", s.Dd), Unit: "m"},
		{Label: "Energy dissipation dose", Value: fmt.Sprintf("%.4f", s.De), Unit: "J/cm2"},
		{Label: "Radiated energy dose", Value: fmt.Sprintf("%.4f", s.Dr), Unit: "J"},
		{Label: "Distance dose rate", Value: norm(s.DdNorm, "%.3f"), Unit: "m/s"},
		{Label: "Energy dissipation rate", Value: norm(s.DeNorm, "%.5f"), Unit: "J/cm2/s"},
		{Label: "Radiated energy rate", Value: norm(s.DrNorm, "%.5f"), Unit: "J/s"},
	}}
	fmt.Fprint(f, table.String())
	if !s.Defined {
		fmt.Fprintln(f)
		fmt.Fprintln(f, "No voiced frames found: normalized doses and voiced")
		fmt.Fprintln(f, "statistics are undefined for this recording.")
	}
	fmt.Fprintln(f)
}

func writeStatisticsSection(f *os.File, data ReportData) {
	s := data.Result.Summary
	if !s.Defined {
		return
	}
	writeSection(f, "Voiced Statistics")

	splInterp := "relative scale, uncalibrated"
	if data.Calibrated {
		splInterp = interpretSPLMean(s.SPLMean)
	}
	table := MetricTable{Rows: []MetricRow{
		{Label: "SPL mean", Value: fmt.Sprintf("%.1f", s.SPLMean), Unit: "dBA", Interpretation: splInterp},
		{Label: "SPL spread", Value: fmt.Sprintf("%.1f", s.SPLStd), Unit: "dBA"},
		{Label: "F0 mean", Value: fmt.Sprintf("%.1f", s.F0Mean), Unit: "Hz",
			Interpretation: interpretF0Mean(s.F0Mean, data.Profile)},
		{Label: "F0 spread", Value: fmt.Sprintf("%.1f", s.F0Std), Unit: "Hz"},
	}}
	fmt.Fprint(f, table.String())
	fmt.Fprintln(f)
}

func writeQualitySection(f *os.File, data ReportData) {
	table := data.Result.Table
	if len(table.CPPS) != table.Len() {
		return
	}
	mean, ok := cppsMean(table)
	if !ok {
		return
	}
	writeSection(f, "Voice Quality")
	t := MetricTable{Rows: []MetricRow{
		{Label: "CPPS mean", Value: fmt.Sprintf("%.1f", mean), Unit: "dB",
			Interpretation: interpretCPPS(mean)},
	}}
	fmt.Fprint(f, t.String())
	fmt.Fprintln(f)
}

// cppsMean averages the cepstral peak prominence over the voiced frames that
// received a value.
func cppsMean(table *analysis.FrameTable) (float64, bool) {
	if len(table.CPPS) != table.Len() {
		return 0, false
	}
	var sum float64
	var n int
	for i := 0; i < table.Len(); i++ {
		if table.Voiced[i] && table.CPPS[i] != 0 {
			sum += table.CPPS[i]
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// channelName returns a human-readable channel name
func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", channels)
	}
}
