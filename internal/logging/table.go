package logging

import (
	"fmt"
	"strings"
)

// MetricRow is one line of a dose report table. Value is pre-formatted so
// rows can mix decimal and scientific notation.
type MetricRow struct {
	Label          string // e.g. "Distance dose"
	Value          string // formatted value, or "" for an undefined metric
	Unit           string // e.g. "m", "dBA", "" for unitless
	Interpretation string // optional, only rendered when non-empty
}

// MetricTable formats aligned metric rows. Undefined values render as a dash
// so they cannot be read as zero.
type MetricTable struct {
	Rows []MetricRow
}

// String renders the table: labels left-aligned, values right-aligned,
// units and interpretations trailing.
func (t *MetricTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	labelWidth, valueWidth, unitWidth := 0, 0, 0
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.display()) > valueWidth {
			valueWidth = len(row.display())
		}
		if len(row.Unit) > unitWidth {
			unitWidth = len(row.Unit)
		}
	}

	var sb strings.Builder
	for _, row := range t.Rows {
		sb.WriteString(fmt.Sprintf("%-*s  %*s", labelWidth, row.Label, valueWidth, row.display()))
		if unitWidth > 0 {
			sb.WriteString(fmt.Sprintf(" %-*s", unitWidth, row.Unit))
		}
		if row.Interpretation != "" {
			sb.WriteString("  " + row.Interpretation)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func (r MetricRow) display() string {
	if r.Value == "" {
		return "-"
	}
	return r.Value
}
