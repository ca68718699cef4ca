package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

// Service owns patient identity. It is the leaf component of the system: the
// other stores resolve patient references through it, never the other way
// around.
type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Create registers a new patient. The email pre-check here is advisory UX;
// the unique index on patients.email is the guarantee, and the repository
// reports its rejection as the same conflict kind.
func (s *Service) Create(ctx context.Context, in *CreateInput) (*Patient, error) {
	if in.Name == "" {
		return nil, apperrors.E(apperrors.CodeValidation, "name is required")
	}
	if in.Email == "" {
		return nil, apperrors.E(apperrors.CodeValidation, "email is required")
	}

	email := NormalizeEmail(in.Email)
	existing, err := s.patients.GetByEmail(ctx, email)
	if err != nil && !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, apperrors.E(apperrors.CodeConflict, "email %s already registered", email)
	}

	p := &Patient{
		Name:        in.Name,
		Age:         in.Age,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Email:       email,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// Update applies only the provided fields; nil fields are preserved. A new
// email must not belong to a different patient.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *UpdateInput) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperrors.E(apperrors.CodeValidation, "name cannot be empty")
		}
		p.Name = *in.Name
	}
	if in.Age != nil {
		p.Age = in.Age
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		p.Gender = in.Gender
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email == "" {
			return nil, apperrors.E(apperrors.CodeValidation, "email cannot be empty")
		}
		other, err := s.patients.GetByEmail(ctx, email)
		if err != nil && !apperrors.HasCode(err, apperrors.CodeNotFound) {
			return nil, err
		}
		if other != nil && err == nil && other.ID != id {
			return nil, apperrors.E(apperrors.CodeConflict, "email %s already registered", email)
		}
		p.Email = email
	}

	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the patient and returns the removed record. Callers wanting
// the cross-store cascade go through the integrity coordinator instead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.Delete(ctx, id)
}
