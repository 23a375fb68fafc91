package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vocalab/vocaldose/internal/audio"
)

// Pipeline passes, reported through the progress callback.
const (
	PassCalibrate = iota + 1
	PassLevel
	PassPitch
	PassDose
)

// ProgressFunc receives pipeline progress updates: the pass number, its
// display name and a completion fraction in [0, 1].
type ProgressFunc func(pass int, passName string, progress float64)

// PipelineOptions selects the inputs of one analysis run. A calibration
// recording is optional; without one the SPL column is on the relative scale
// and MeasuredSPL and the distances are ignored.
type PipelineOptions struct {
	VoicePath       string
	CalibrationPath string
	MeasuredSPL     float64 // dBA read off a sound level meter during calibration
	CalDistance     float64 // meters, microphone distance of the calibration take
	TargetDistance  float64 // meters, distance doses are referenced to
	Profile         SexProfile
	Config          Config
}

// PipelineResult is the complete output of one analysis run.
type PipelineResult struct {
	Table       *FrameTable
	Summary     DoseSummary
	Calibration *CalibrationResult // nil when running on the relative scale
	VoiceMeta   *audio.Metadata
}

// Run executes the full dose analysis: calibration, level estimation and
// pitch tracking over the voice recording, frame synchronization, optional
// cepstral analysis and dose integration. The run is all or nothing; any
// failing stage aborts it with no partial result.
func Run(ctx context.Context, opts PipelineOptions, progress ProgressFunc) (*PipelineResult, error) {
	if progress == nil {
		progress = func(int, string, float64) {}
	}

	var cal *CalibrationResult
	if opts.CalibrationPath != "" {
		progress(PassCalibrate, "Calibrating", 0)
		calSig, _, err := audio.ReadFile(opts.CalibrationPath)
		if err != nil {
			return nil, fmt.Errorf("reading calibration recording: %w", err)
		}
		cal, err = Calibrate(calSig, opts.MeasuredSPL, opts.CalDistance, opts.TargetDistance, opts.Config)
		if err != nil {
			return nil, fmt.Errorf("calibrating: %w", err)
		}
		progress(PassCalibrate, "Calibrating", 1)
	}

	sig, meta, err := audio.ReadFile(opts.VoicePath)
	if err != nil {
		return nil, fmt.Errorf("reading voice recording: %w", err)
	}
	if opts.Config.HumFilterEnabled {
		RemoveHum(sig, opts.Config.HumFrequency, opts.Config.HumHarmonics)
	}

	// Level estimation and pitch tracking read the same samples and are
	// independent, so they run concurrently.
	var spl, f0 FrameSeries
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		progress(PassLevel, "Measuring level", 0)
		var err error
		spl, err = EstimateSPL(sig, RoleVoice, cal, opts.Config)
		if err != nil {
			return fmt.Errorf("estimating SPL: %w", err)
		}
		progress(PassLevel, "Measuring level", 1)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		progress(PassPitch, "Tracking pitch", 0)
		var err error
		f0, err = TrackPitch(sig, opts.Config)
		if err != nil {
			return fmt.Errorf("tracking pitch: %w", err)
		}
		progress(PassPitch, "Tracking pitch", 1)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table, err := Synchronize(spl, f0, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("synchronizing frames: %w", err)
	}
	if opts.Config.CPPSEnabled {
		ComputeCPPS(sig, table, opts.Config)
	}

	progress(PassDose, "Integrating doses", 0)
	summary := ComputeDoses(table, opts.Profile)
	progress(PassDose, "Integrating doses", 1)

	return &PipelineResult{
		Table:       table,
		Summary:     summary,
		Calibration: cal,
		VoiceMeta:   meta,
	}, nil
}
