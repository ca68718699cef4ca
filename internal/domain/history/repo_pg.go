package history

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const entryCols = `id, patient_id, systolic_pressure, diastolic_pressure,
	respiration_rate, blood_oxygenation, heart_rate, doctor_notes, created_at, updated_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.PatientID,
		&e.SystolicPressure, &e.DiastolicPressure, &e.RespirationRate,
		&e.BloodOxygenation, &e.HeartRate, &e.DoctorNotes,
		&e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO history_entries (id, patient_id, systolic_pressure,
			diastolic_pressure, respiration_rate, blood_oxygenation, heart_rate, doctor_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		e.ID, e.PatientID, e.SystolicPressure, e.DiastolicPressure,
		e.RespirationRate, e.BloodOxygenation, e.HeartRate, e.DoctorNotes).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "insert history entry", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+entryCols+` FROM history_entries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.E(apperrors.CodeNotFound, "history entry %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "get history entry", err)
	}
	return e, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM history_entries WHERE patient_id = $1`, patientID).
		Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "count history entries", err)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryCols+` FROM history_entries
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "list history entries", err)
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "scan history entry", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "iterate history entries", err)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, e *Entry) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE history_entries
		SET systolic_pressure=$2, diastolic_pressure=$3, respiration_rate=$4,
			blood_oxygenation=$5, heart_rate=$6, doctor_notes=$7, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		e.ID, e.SystolicPressure, e.DiastolicPressure, e.RespirationRate,
		e.BloodOxygenation, e.HeartRate, e.DoctorNotes).
		Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.E(apperrors.CodeNotFound, "history entry %s not found", e.ID)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "update history entry", err)
	}
	return nil
}
