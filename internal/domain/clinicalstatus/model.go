package clinicalstatus

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitalsd/vitalsd/internal/domain/vitals"
)

// Status values for the current clinical condition.
const (
	StatusStable     = "Stable"
	StatusCritical   = "Critical"
	StatusRecovering = "Recovering"
)

var validStatuses = map[string]bool{
	StatusStable:     true,
	StatusCritical:   true,
	StatusRecovering: true,
}

// ClinicalStatus maps to the clinical_status table. At most one row exists
// per patient; the unique index on patient_id enforces it.
type ClinicalStatus struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	PatientID   uuid.UUID     `db:"patient_id" json:"patient_id"`
	Status      string        `db:"status" json:"status"`
	vitals.Vitals
	DoctorNotes []vitals.Note `db:"doctor_notes" json:"doctor_notes"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// CreateInput carries a new status record. All five vitals are required;
// status defaults to Stable when omitted.
type CreateInput struct {
	PatientID   uuid.UUID          `json:"patient_id"`
	Status      string             `json:"status"`
	vitals.Input
	DoctorNotes []vitals.NoteInput `json:"doctor_notes"`
}

// UpdateInput is a partial update; nil fields are preserved.
type UpdateInput struct {
	Status      *string             `json:"status"`
	vitals.Input
	DoctorNotes *[]vitals.NoteInput `json:"doctor_notes"`
}
