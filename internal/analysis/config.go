package analysis

// Default tuning constants for the analysis pipeline. The thresholds can be
// overridden per recording environment via the settings file.
const (
	// Internal dB offset applied to every uncalibrated SPL estimate so that
	// typical speech lands in a familiar 40-90 dB range before calibration.
	defaultBaseOffsetDB = 50.0

	// Absolute SPL threshold below which a frame counts as background noise.
	defaultSilenceThresholdDBA = 50.0

	// Minimum normalized autocorrelation peak for a frame to count as voiced.
	defaultVoicingThreshold = 0.45

	// Minimum frame RMS (linear, full scale 1.0) for pitch analysis. Below
	// this the frame is unvoiced regardless of periodicity.
	defaultMinPitchRMS = 1e-4

	// Default F0 search range in Hz.
	defaultF0Min = 75.0
	defaultF0Max = 500.0

	// Calibration frame selection: frames this many dB below the loudest
	// frame of the calibration recording are discarded as unstable, and
	// frames peaking above the clip level are discarded as clipped.
	defaultCalibrationDropDB = 10.0
	defaultClipLevel         = 0.99

	// Default microphone distances in meters.
	DefaultCalibrationDistance = 0.30

	// CPPS analysis window and minimum voiced material per window.
	defaultCPPSWindowSec = 5.0
	cppsMinVoicedSec     = 0.2

	// Mean-square level below which a frame is treated as digital silence
	// and floored instead of producing -Inf.
	silenceEnergyFloor = 1e-20

	// splFloor is the sentinel SPL for silent frames. It sits far below any
	// plausible silence threshold, so floored frames always mask to unvoiced.
	splFloor = 0.0
)

// Config carries the tunable parameters of one analysis run. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	BaseOffsetDB        float64 // uncalibrated SPL offset
	SilenceThresholdDBA float64 // frames below this are masked as silence
	VoicingThreshold    float64 // autocorrelation peak strength threshold
	MinPitchRMS         float64 // energy gate for pitch analysis
	F0Min               float64 // Hz, lower pitch search bound
	F0Max               float64 // Hz, upper pitch search bound
	CalibrationDropDB   float64 // stable-frame selection window
	ClipLevel           float64 // linear peak treated as clipping

	// CPPS quality indicator (independent of the dose pipeline).
	CPPSEnabled   bool
	CPPSWindowSec float64

	// Optional mains-hum notch prefilter.
	HumFilterEnabled bool
	HumFrequency     float64 // Hz; 0 means auto-detect from timezone
	HumHarmonics     int
}

// DefaultConfig returns the standard tuning used when no settings file is
// supplied.
func DefaultConfig() Config {
	return Config{
		BaseOffsetDB:        defaultBaseOffsetDB,
		SilenceThresholdDBA: defaultSilenceThresholdDBA,
		VoicingThreshold:    defaultVoicingThreshold,
		MinPitchRMS:         defaultMinPitchRMS,
		F0Min:               defaultF0Min,
		F0Max:               defaultF0Max,
		CalibrationDropDB:   defaultCalibrationDropDB,
		ClipLevel:           defaultClipLevel,
		CPPSEnabled:         true,
		CPPSWindowSec:       defaultCPPSWindowSec,
		HumFilterEnabled:    false,
		HumFrequency:        0,
		HumHarmonics:        4,
	}
}
