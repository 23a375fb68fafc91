// Package export writes analysis results to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/vocalab/vocaldose/internal/analysis"
)

// WriteFrameTable writes the per-frame results as CSV. The cpps_db column is
// only present when cepstral analysis ran.
func WriteFrameTable(path string, table *analysis.FrameTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	withCPPS := len(table.CPPS) == table.Len()

	header := []string{"time_s", "spl_dba", "f0_hz", "voiced"}
	if withCPPS {
		header = append(header, "cpps_db")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < table.Len(); i++ {
		row := []string{
			strconv.FormatFloat(table.Times[i], 'f', 2, 64),
			strconv.FormatFloat(table.SPL[i], 'f', 2, 64),
			strconv.FormatFloat(table.F0[i], 'f', 2, 64),
			strconv.FormatBool(table.Voiced[i]),
		}
		if withCPPS {
			row = append(row, strconv.FormatFloat(table.CPPS[i], 'f', 2, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteDoseSummary writes the dose totals as a two-column metric/value CSV.
// Metrics that are undefined for the recording get an empty value cell, not
// a zero that could be mistaken for a measurement.
func WriteDoseSummary(path string, s analysis.DoseSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	val := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	norm := func(v float64) string {
		if !s.Defined {
			return ""
		}
		return val(v)
	}

	rows := [][]string{
		{"metric", "value"},
		{"phonation_time_s", val(s.Dt)},
		{"phonation_percent", val(s.DtPercent)},
		{"vli_kcycles", val(s.VLI)},
		{"distance_dose_m", val(s.Dd)},
		{"energy_dissipation_dose_j_cm2", val(s.De)},
		{"radiated_energy_dose_j", val(s.Dr)},
		{"distance_dose_norm_m_s", norm(s.DdNorm)},
		{"energy_dissipation_norm_j_cm2_s", norm(s.DeNorm)},
		{"radiated_energy_norm_j_s", norm(s.DrNorm)},
		{"spl_mean_dba", norm(s.SPLMean)},
		{"spl_std_dba", norm(s.SPLStd)},
		{"f0_mean_hz", norm(s.F0Mean)},
		{"f0_std_hz", norm(s.F0Std)},
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
