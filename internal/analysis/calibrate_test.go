package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/vocalab/vocaldose/internal/audio"
)

func TestCalibrateRoundTrip(t *testing.T) {
	// Calibrating against a recording and then estimating that same
	// recording must reproduce the measured level.
	sig := sineSignal(t, 1000, 0.5, 2.0)
	cfg := DefaultConfig()

	cal, err := Calibrate(sig, 94.0, 0.30, 0.30, cfg)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	series, err := EstimateSPL(sig, RoleVoice, cal, cfg)
	if err != nil {
		t.Fatalf("EstimateSPL: %v", err)
	}
	for i, v := range series.Values {
		if math.Abs(v-94.0) > 0.2 {
			t.Errorf("frame %d: calibrated SPL = %.2f, want 94.0 +/- 0.2", i, v)
		}
	}
}

func TestCalibrateDistanceReference(t *testing.T) {
	// Doubling the target distance shifts the constant by
	// -20*log10(d_cal/d_target) relative to a same-distance calibration.
	sig := sineSignal(t, 1000, 0.5, 2.0)
	cfg := DefaultConfig()

	same, err := Calibrate(sig, 94.0, 0.30, 0.30, cfg)
	if err != nil {
		t.Fatalf("Calibrate(same): %v", err)
	}
	doubled, err := Calibrate(sig, 94.0, 0.30, 0.60, cfg)
	if err != nil {
		t.Fatalf("Calibrate(doubled): %v", err)
	}

	want := -20 * math.Log10(0.30/0.60)
	if diff := doubled.Constant - same.Constant; math.Abs(diff-want) > 1e-9 {
		t.Errorf("constant shift = %.4f dB, want %.4f", diff, want)
	}
	if doubled.TargetDistance != 0.60 {
		t.Errorf("TargetDistance = %v, want 0.60", doubled.TargetDistance)
	}
}

func TestCalibrateSilentRecording(t *testing.T) {
	_, err := Calibrate(silentSignal(t, 2.0), 94.0, 0.30, 0.30, DefaultConfig())

	var calErr *CalibrationDataError
	if !errors.As(err, &calErr) {
		t.Fatalf("got error %v, want CalibrationDataError", err)
	}
}

func TestCalibrateAllFramesClipped(t *testing.T) {
	// A full scale recording peaks above the clip level on every frame,
	// leaving no stable frames to average.
	sig := sineSignal(t, 1000, 1.0, 2.0)
	_, err := Calibrate(sig, 94.0, 0.30, 0.30, DefaultConfig())

	var calErr *CalibrationDataError
	if !errors.As(err, &calErr) {
		t.Fatalf("got error %v, want CalibrationDataError", err)
	}
}

func TestCalibrateIgnoresQuietFrames(t *testing.T) {
	// A calibration take with a leading quiet stretch: only the loud
	// sustained part should set the constant.
	loud := sineSignal(t, 1000, 0.5, 2.0)
	quiet := sineSignal(t, 1000, 0.01, 1.0)
	mixed := &audio.Signal{
		Samples:    append(append([]float64{}, quiet.Samples...), loud.Samples...),
		SampleRate: loud.SampleRate,
	}

	cfg := DefaultConfig()
	calMixed, err := Calibrate(mixed, 94.0, 0.30, 0.30, cfg)
	if err != nil {
		t.Fatalf("Calibrate(mixed): %v", err)
	}
	calLoud, err := Calibrate(loud, 94.0, 0.30, 0.30, cfg)
	if err != nil {
		t.Fatalf("Calibrate(loud): %v", err)
	}

	if diff := calMixed.Constant - calLoud.Constant; math.Abs(diff) > 0.1 {
		t.Errorf("quiet lead-in changed the constant by %.3f dB", diff)
	}
}

func TestCalibrateDefaultDistances(t *testing.T) {
	sig := sineSignal(t, 1000, 0.5, 2.0)
	cal, err := Calibrate(sig, 94.0, 0, 0, DefaultConfig())
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if cal.ReferenceDistance != DefaultCalibrationDistance {
		t.Errorf("ReferenceDistance = %v, want %v", cal.ReferenceDistance, DefaultCalibrationDistance)
	}
	if cal.TargetDistance != DefaultCalibrationDistance {
		t.Errorf("TargetDistance = %v, want %v", cal.TargetDistance, DefaultCalibrationDistance)
	}
}
