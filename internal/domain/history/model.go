package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitalsd/vitalsd/internal/domain/vitals"
)

// Entry is one historical vitals observation. Unlike the current clinical
// status, a patient accumulates any number of these.
type Entry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	vitals.Vitals
	DoctorNotes []vitals.Note `db:"doctor_notes" json:"doctor_notes"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// CreateInput carries a new observation. All five vitals are required.
type CreateInput struct {
	PatientID   uuid.UUID          `json:"patient_id"`
	vitals.Input
	DoctorNotes []vitals.NoteInput `json:"doctor_notes"`
}

// UpdateInput replaces an entry's measurements wholesale. Unlike the
// clinical status update there is no field-by-field merge: the five vitals
// and the notes are overwritten together.
type UpdateInput struct {
	vitals.Input
	DoctorNotes []vitals.NoteInput `json:"doctor_notes"`
}
