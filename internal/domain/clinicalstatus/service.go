package clinicalstatus

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsd/vitalsd/internal/domain/vitals"
	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

// Service owns the at-most-one-per-patient current status record. Patient
// reference validation happens above it, in the integrity coordinator; this
// service assumes the patient id it receives has been resolved.
type Service struct {
	statuses Repository
}

func NewService(statuses Repository) *Service {
	return &Service{statuses: statuses}
}

// Create validates the payload and inserts the record. The existing-record
// read is a fast-path advisory check; two concurrent creates can both pass
// it, and the unique index on patient_id settles the race. Both paths
// surface the same conflict kind.
func (s *Service) Create(ctx context.Context, in *CreateInput) (*ClinicalStatus, error) {
	if in.PatientID == uuid.Nil {
		return nil, apperrors.E(apperrors.CodeValidation, "patient_id is required")
	}
	v, err := in.Input.Resolve()
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = StatusStable
	}
	if !validStatuses[status] {
		return nil, apperrors.E(apperrors.CodeValidation, "invalid status: %s", status)
	}

	if _, err := s.statuses.GetByPatientID(ctx, in.PatientID); err == nil {
		return nil, apperrors.E(apperrors.CodeConflict,
			"clinical status already exists for patient %s", in.PatientID)
	} else if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return nil, err
	}

	cs := &ClinicalStatus{
		PatientID:   in.PatientID,
		Status:      status,
		Vitals:      v,
		DoctorNotes: vitals.StampNotes(in.DoctorNotes, time.Now().UTC()),
	}
	if err := s.statuses.Create(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Service) GetAll(ctx context.Context, limit, offset int) ([]*ClinicalStatus, int, error) {
	return s.statuses.List(ctx, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalStatus, error) {
	return s.statuses.GetByID(ctx, id)
}

func (s *Service) GetByPatientID(ctx context.Context, patientID uuid.UUID) (*ClinicalStatus, error) {
	return s.statuses.GetByPatientID(ctx, patientID)
}

// Update merges the provided fields into the existing record; fields not
// mentioned are preserved. Status is re-validated against the enum when
// provided.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *UpdateInput) (*ClinicalStatus, error) {
	cs, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if !validStatuses[*in.Status] {
			return nil, apperrors.E(apperrors.CodeValidation, "invalid status: %s", *in.Status)
		}
		cs.Status = *in.Status
	}
	if in.SystolicPressure != nil {
		cs.SystolicPressure = *in.SystolicPressure
	}
	if in.DiastolicPressure != nil {
		cs.DiastolicPressure = *in.DiastolicPressure
	}
	if in.RespirationRate != nil {
		cs.RespirationRate = *in.RespirationRate
	}
	if in.BloodOxygenation != nil {
		cs.BloodOxygenation = *in.BloodOxygenation
	}
	if in.HeartRate != nil {
		cs.HeartRate = *in.HeartRate
	}
	if in.DoctorNotes != nil {
		cs.DoctorNotes = vitals.StampNotes(*in.DoctorNotes, time.Now().UTC())
	}

	if err := s.statuses.Update(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.statuses.Delete(ctx, id)
}

// DeleteByPatient is the cascade entry point; zero deleted rows is success.
func (s *Service) DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	return s.statuses.DeleteByPatient(ctx, patientID)
}
