package analysis

import (
	"math"

	"github.com/vocalab/vocaldose/internal/audio"
)

// CalibrationResult is the additive dB constant aligning relative SPL
// estimates with an externally measured absolute level, plus the distances it
// re-references to. Derived once per run and immutable thereafter.
type CalibrationResult struct {
	Constant          float64 // dB offset added to every SPL frame
	ReferenceDistance float64 // meters, microphone distance during calibration
	TargetDistance    float64 // meters, distance all SPL is reported at
}

// Calibrate derives the calibration constant from a calibration recording and
// the SPL measured alongside it with a sound-level meter.
//
// The measured level is first re-referenced from the calibration distance to
// the target distance with the inverse square law, so every downstream SPL
// value (and therefore every dose) is expressed at the target distance:
//
//	SPL_target = measured - 20*log10(refDistance/targetDistance)
//
// The constant is then measured-minus-estimated over the stable phonation
// frames of the recording: frames within CalibrationDropDB of the loudest
// frame, excluding clipped ones. A recording with no such frames yields a
// CalibrationDataError and no constant.
func Calibrate(sig *audio.Signal, measuredSPL, refDistance, targetDistance float64, cfg Config) (*CalibrationResult, error) {
	if refDistance <= 0 {
		refDistance = DefaultCalibrationDistance
	}
	if targetDistance <= 0 {
		targetDistance = refDistance
	}

	series, err := EstimateSPL(sig, RoleCalibration, nil, cfg)
	if err != nil {
		return nil, err
	}

	mean, ok := stablePhonationMean(sig, series, cfg)
	if !ok {
		return nil, &CalibrationDataError{Frames: series.Len()}
	}

	target := measuredSPL - 20*math.Log10(refDistance/targetDistance)

	return &CalibrationResult{
		Constant:          target - mean,
		ReferenceDistance: refDistance,
		TargetDistance:    targetDistance,
	}, nil
}

// stablePhonationMean returns the mean uncalibrated SPL over the frames
// representing sustained, stable phonation. Reports false when no frame
// qualifies.
func stablePhonationMean(sig *audio.Signal, series FrameSeries, cfg Config) (float64, bool) {
	loudest := math.Inf(-1)
	for i, v := range series.Values {
		if series.Valid[i] && v > loudest {
			loudest = v
		}
	}
	if math.IsInf(loudest, -1) {
		return 0, false
	}

	frameLen := int(math.Round(FrameDuration * float64(sig.SampleRate)))
	floor := loudest - cfg.CalibrationDropDB

	var sum float64
	var count int
	for i, v := range series.Values {
		if !series.Valid[i] || v < floor {
			continue
		}
		if framePeak(sig.Samples[i*frameLen:(i+1)*frameLen]) >= cfg.ClipLevel {
			continue // clipped frame: level estimate unreliable
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// framePeak returns the maximum absolute sample value in the frame.
func framePeak(frame []float64) float64 {
	peak := 0.0
	for _, v := range frame {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}
