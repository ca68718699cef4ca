package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsd/vitalsd/internal/domain/vitals"
	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

// Service owns the per-patient observation series. Patient reference
// validation happens in the integrity coordinator before Create is reached.
type Service struct {
	entries Repository
}

func NewService(entries Repository) *Service {
	return &Service{entries: entries}
}

func (s *Service) Create(ctx context.Context, in *CreateInput) (*Entry, error) {
	if in.PatientID == uuid.Nil {
		return nil, apperrors.E(apperrors.CodeValidation, "patient_id is required")
	}
	v, err := in.Input.Resolve()
	if err != nil {
		return nil, err
	}
	e := &Entry{
		PatientID:   in.PatientID,
		Vitals:      v,
		DoctorNotes: vitals.StampNotes(in.DoctorNotes, time.Now().UTC()),
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.entries.GetByID(ctx, id)
}

// ListByPatient returns the patient's entries newest-first. A patient with
// no entries at all is reported as not_found rather than an empty page.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	items, total, err := s.entries.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, apperrors.E(apperrors.CodeNotFound,
			"no history for patient %s", patientID)
	}
	return items, total, nil
}

// Update overwrites the entry's vitals and notes in full and touches
// updated_at. All five vitals must be present; there is no partial merge.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *UpdateInput) (*Entry, error) {
	v, err := in.Input.Resolve()
	if err != nil {
		return nil, err
	}
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Vitals = v
	e.DoctorNotes = vitals.StampNotes(in.DoctorNotes, time.Now().UTC())
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
