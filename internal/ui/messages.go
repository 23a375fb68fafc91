package ui

import (
	"github.com/vocalab/vocaldose/internal/analysis"
)

// ProgressMsg represents a progress update from the analysis pipeline
type ProgressMsg struct {
	Pass     int     // analysis.PassCalibrate .. analysis.PassDose
	PassName string  // "Calibrating", "Measuring level", ...
	Progress float64 // 0.0 to 1.0
}

// FileStartMsg indicates a new recording has started analysis
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// FileCompleteMsg indicates a recording has finished analysis
type FileCompleteMsg struct {
	FileIndex int
	Result    *analysis.PipelineResult
	Error     error
}

// AllCompleteMsg indicates all recordings have been analyzed
type AllCompleteMsg struct{}
