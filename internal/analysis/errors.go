package analysis

import "fmt"

// Role identifies which input recording an error refers to, so the
// presentation layer can tell the user which file to fix.
type Role string

const (
	RoleVoice       Role = "voice recording"
	RoleCalibration Role = "calibration recording"
)

// InsufficientDataError reports an input signal too short (or too broken) to
// analyse. Fatal to the run; the caller must supply a corrected input.
type InsufficientDataError struct {
	Role     Role
	Duration float64 // seconds of usable signal
	Needed   float64 // seconds required
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s too short: %.3f s of audio, need at least %.3f s",
		e.Role, e.Duration, e.Needed)
}

// CalibrationDataError reports a calibration recording with no frames of
// stable phonation. Distinct from InsufficientDataError because the remedy
// differs: re-record the calibration, rather than re-check the file. No
// calibration constant is produced and dose computation must not proceed.
type CalibrationDataError struct {
	Frames int // frames examined
}

func (e *CalibrationDataError) Error() string {
	return fmt.Sprintf("calibration recording has no stable voiced frames (%d frames examined); re-record the calibration", e.Frames)
}

// FrameAlignmentError reports SPL and F0 series that disagree on the frame
// grid. Both series are produced on the same grid, so this indicates a
// programming invariant violation rather than bad input.
type FrameAlignmentError struct {
	Index   int
	SPLTime float64
	F0Time  float64
}

func (e *FrameAlignmentError) Error() string {
	return fmt.Sprintf("SPL/F0 frame grids diverge at frame %d: SPL t=%.4f s, F0 t=%.4f s",
		e.Index, e.SPLTime, e.F0Time)
}
