package history

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// ListByPatient returns entries newest-first.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Entry, int, error)
	Update(ctx context.Context, e *Entry) error
}
