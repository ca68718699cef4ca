package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalsd/vitalsd/internal/platform/db"
	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, name, age, date_of_birth, gender, email, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.DateOfBirth, &p.Gender, &p.Email,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, name, age, date_of_birth, gender, email)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Age, p.DateOfBirth, p.Gender, p.Email).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return apperrors.E(apperrors.CodeConflict, "email %s already registered", p.Email)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "insert patient", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.E(apperrors.CodeNotFound, "patient %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "get patient", err)
	}
	return p, nil
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.E(apperrors.CodeNotFound, "no patient with email %s", email)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "get patient by email", err)
	}
	return p, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE patients
		SET name=$2, age=$3, date_of_birth=$4, gender=$5, email=$6, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Age, p.DateOfBirth, p.Gender, p.Email).
		Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.E(apperrors.CodeNotFound, "patient %s not found", p.ID)
	}
	if db.IsUniqueViolation(err) {
		return apperrors.E(apperrors.CodeConflict, "email %s already registered", p.Email)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "update patient", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`DELETE FROM patients WHERE id = $1 RETURNING `+patientCols, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.E(apperrors.CodeNotFound, "patient %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "delete patient", err)
	}
	return p, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "count patients", err)
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY created_at LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "list patients", err)
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "scan patient", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "iterate patients", err)
	}
	return items, total, nil
}
