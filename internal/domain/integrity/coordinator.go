// Package integrity enforces the cross-entity rules that no single store
// can guarantee alone: patient reference validation before child creates,
// and the clinical status cascade when a patient is deleted.
package integrity

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vitalsd/vitalsd/internal/domain/clinicalstatus"
	"github.com/vitalsd/vitalsd/internal/domain/history"
	"github.com/vitalsd/vitalsd/internal/domain/patient"
	"github.com/vitalsd/vitalsd/internal/platform/metrics"
	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

// PatientRegistry is the slice of the patient service the coordinator needs.
type PatientRegistry interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// StatusStore is the slice of the clinical status service the coordinator
// needs for reference-checked creates and the cascade.
type StatusStore interface {
	Create(ctx context.Context, in *clinicalstatus.CreateInput) (*clinicalstatus.ClinicalStatus, error)
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}

// HistoryLedger is the slice of the history service the coordinator needs.
type HistoryLedger interface {
	Create(ctx context.Context, in *history.CreateInput) (*history.Entry, error)
}

// Coordinator sits between the transport handlers and the three stores.
// Child creates pass through it for patient existence checks; patient
// deletes pass through it for the cascade. History entries survive patient
// deletion: they are the audit trail.
type Coordinator struct {
	patients PatientRegistry
	statuses StatusStore
	entries  HistoryLedger
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

func NewCoordinator(patients PatientRegistry, statuses StatusStore, entries HistoryLedger,
	log zerolog.Logger, m *metrics.Metrics) *Coordinator {
	return &Coordinator{
		patients: patients,
		statuses: statuses,
		entries:  entries,
		log:      log.With().Str("component", "integrity").Logger(),
		metrics:  m,
	}
}

// resolvePatient turns a missing patient into invalid_reference: from the
// child's point of view the failure is a bad foreign key, not a bad lookup.
// The check-then-act window against a concurrent patient delete is accepted
// and documented rather than closed; closing it would need a cross-table
// transaction the storage model does not assume.
func (c *Coordinator) resolvePatient(ctx context.Context, id uuid.UUID) error {
	_, err := c.patients.Get(ctx, id)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		return apperrors.E(apperrors.CodeInvalidReference, "patient %s does not exist", id)
	}
	return err
}

// CreateStatus validates the patient reference, then delegates.
func (c *Coordinator) CreateStatus(ctx context.Context, in *clinicalstatus.CreateInput) (*clinicalstatus.ClinicalStatus, error) {
	if in.PatientID == uuid.Nil {
		return nil, apperrors.E(apperrors.CodeValidation, "patient_id is required")
	}
	if err := c.resolvePatient(ctx, in.PatientID); err != nil {
		return nil, err
	}
	return c.statuses.Create(ctx, in)
}

// CreateHistory validates the patient reference, then delegates.
func (c *Coordinator) CreateHistory(ctx context.Context, in *history.CreateInput) (*history.Entry, error) {
	if in.PatientID == uuid.Nil {
		return nil, apperrors.E(apperrors.CodeValidation, "patient_id is required")
	}
	if err := c.resolvePatient(ctx, in.PatientID); err != nil {
		return nil, err
	}
	return c.entries.Create(ctx, in)
}

// DeletePatient removes the patient, then best-effort deletes any clinical
// status the patient owned. The two writes are not atomic: if the cleanup
// fails after the patient row is gone, the orphaned status is reported as
// partial_failure so an operator can reconcile it. It is never collapsed
// into plain success or a generic storage error.
func (c *Coordinator) DeletePatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, err := c.patients.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	removed, err := c.statuses.DeleteByPatient(ctx, id)
	if err != nil {
		c.log.Error().Err(err).
			Str("patient_id", id.String()).
			Msg("cascade failed: patient removed but clinical status cleanup did not complete")
		c.metrics.CascadeOrphans.Inc()
		return nil, apperrors.Wrap(apperrors.CodePartialFailure,
			"patient "+id.String()+" deleted but clinical status cleanup failed", err)
	}
	if removed > 0 {
		c.log.Info().
			Str("patient_id", id.String()).
			Int64("statuses_removed", removed).
			Msg("cascade delete completed")
	}
	return p, nil
}
