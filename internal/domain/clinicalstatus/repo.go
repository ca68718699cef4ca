package clinicalstatus

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cs *ClinicalStatus) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicalStatus, error)
	GetByPatientID(ctx context.Context, patientID uuid.UUID) (*ClinicalStatus, error)
	List(ctx context.Context, limit, offset int) ([]*ClinicalStatus, int, error)
	Update(ctx context.Context, cs *ClinicalStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByPatient removes whatever status records the patient owns and
	// reports how many went away. Zero rows is a clean result, not an error;
	// the cascade treats it as "nothing to clean up".
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}
