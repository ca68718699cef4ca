// Package vitals holds the observation value types shared by the clinical
// status store and the history ledger.
package vitals

import (
	"strings"
	"time"

	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

// Vitals is one complete set of the five required measurements.
type Vitals struct {
	SystolicPressure  float64 `db:"systolic_pressure" json:"systolic_pressure"`
	DiastolicPressure float64 `db:"diastolic_pressure" json:"diastolic_pressure"`
	RespirationRate   float64 `db:"respiration_rate" json:"respiration_rate"`
	BloodOxygenation  float64 `db:"blood_oxygenation" json:"blood_oxygenation"`
	HeartRate         float64 `db:"heart_rate" json:"heart_rate"`
}

// Input carries vitals as submitted. Pointer fields distinguish "absent"
// from a literal zero; all five are required, with no default.
type Input struct {
	SystolicPressure  *float64 `json:"systolic_pressure"`
	DiastolicPressure *float64 `json:"diastolic_pressure"`
	RespirationRate   *float64 `json:"respiration_rate"`
	BloodOxygenation  *float64 `json:"blood_oxygenation"`
	HeartRate         *float64 `json:"heart_rate"`
}

// Resolve validates that every measurement is present and returns the
// complete set. Validation failure names all missing fields at once.
func (in *Input) Resolve() (Vitals, error) {
	var missing []string
	if in.SystolicPressure == nil {
		missing = append(missing, "systolic_pressure")
	}
	if in.DiastolicPressure == nil {
		missing = append(missing, "diastolic_pressure")
	}
	if in.RespirationRate == nil {
		missing = append(missing, "respiration_rate")
	}
	if in.BloodOxygenation == nil {
		missing = append(missing, "blood_oxygenation")
	}
	if in.HeartRate == nil {
		missing = append(missing, "heart_rate")
	}
	if len(missing) > 0 {
		return Vitals{}, apperrors.E(apperrors.CodeValidation,
			"required vital fields missing: %s", strings.Join(missing, ", "))
	}
	return Vitals{
		SystolicPressure:  *in.SystolicPressure,
		DiastolicPressure: *in.DiastolicPressure,
		RespirationRate:   *in.RespirationRate,
		BloodOxygenation:  *in.BloodOxygenation,
		HeartRate:         *in.HeartRate,
	}, nil
}

// Note is one doctor's note in a record's ordered sequence. Stored as jsonb
// alongside the vitals.
type Note struct {
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteInput is a note as submitted; the timestamp is assigned on write.
type NoteInput struct {
	Note string `json:"note"`
}

// StampNotes converts submitted notes into stored ones, preserving order.
// Always returns a non-nil slice so the stored sequence defaults to empty.
func StampNotes(in []NoteInput, at time.Time) []Note {
	notes := make([]Note, 0, len(in))
	for _, n := range in {
		notes = append(notes, Note{Note: n.Note, CreatedAt: at})
	}
	return notes
}
