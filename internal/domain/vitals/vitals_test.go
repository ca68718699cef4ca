package vitals

import (
	"strings"
	"testing"
	"time"

	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

func f(v float64) *float64 { return &v }

func TestResolve_Complete(t *testing.T) {
	in := &Input{
		SystolicPressure:  f(120),
		DiastolicPressure: f(80),
		RespirationRate:   f(16),
		BloodOxygenation:  f(98),
		HeartRate:         f(72),
	}
	v, err := in.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.SystolicPressure != 120 || v.HeartRate != 72 {
		t.Errorf("values not carried over: %+v", v)
	}
}

func TestResolve_MissingNamesAllFields(t *testing.T) {
	in := &Input{SystolicPressure: f(120), HeartRate: f(72)}
	_, err := in.Resolve()
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := err.Error()
	for _, field := range []string{"diastolic_pressure", "respiration_rate", "blood_oxygenation"} {
		if !strings.Contains(msg, field) {
			t.Errorf("expected %s to be named in %q", field, msg)
		}
	}
	if strings.Contains(msg, "systolic") || strings.Contains(msg, "heart_rate") {
		t.Errorf("present fields must not be reported missing: %q", msg)
	}
}

func TestResolve_ZeroIsPresent(t *testing.T) {
	in := &Input{
		SystolicPressure:  f(0),
		DiastolicPressure: f(0),
		RespirationRate:   f(0),
		BloodOxygenation:  f(0),
		HeartRate:         f(0),
	}
	if _, err := in.Resolve(); err != nil {
		t.Errorf("explicit zero is present, not missing: %v", err)
	}
}

func TestStampNotes_DefaultsEmpty(t *testing.T) {
	notes := StampNotes(nil, time.Now())
	if notes == nil || len(notes) != 0 {
		t.Errorf("expected empty non-nil sequence, got %#v", notes)
	}
}

func TestStampNotes_PreservesOrder(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	notes := StampNotes([]NoteInput{{Note: "first"}, {Note: "second"}}, at)
	if len(notes) != 2 || notes[0].Note != "first" || notes[1].Note != "second" {
		t.Errorf("order not preserved: %#v", notes)
	}
	if !notes[0].CreatedAt.Equal(at) {
		t.Errorf("expected stamp %v, got %v", at, notes[0].CreatedAt)
	}
}
