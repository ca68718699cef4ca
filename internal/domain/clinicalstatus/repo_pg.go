package clinicalstatus

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

const statusCols = `id, patient_id, status, systolic_pressure, diastolic_pressure,
	respiration_rate, blood_oxygenation, heart_rate, doctor_notes, created_at, updated_at`

func scanStatus(row pgx.Row) (*ClinicalStatus, error) {
	var cs ClinicalStatus
	err := row.Scan(&cs.ID, &cs.PatientID, &cs.Status,
		&cs.SystolicPressure, &cs.DiastolicPressure, &cs.RespirationRate,
		&cs.BloodOxygenation, &cs.HeartRate, &cs.DoctorNotes,
		&cs.CreatedAt, &cs.UpdatedAt)
	return &cs, err
}

func (r *repoPG) Create(ctx context.Context, cs *ClinicalStatus) error {
	cs.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clinical_status (id, patient_id, status, systolic_pressure,
			diastolic_pressure, respiration_rate, blood_oxygenation, heart_rate, doctor_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		cs.ID, cs.PatientID, cs.Status, cs.SystolicPressure, cs.DiastolicPressure,
		cs.RespirationRate, cs.BloodOxygenation, cs.HeartRate, cs.DoctorNotes).
		Scan(&cs.CreatedAt, &cs.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return apperrors.E(apperrors.CodeConflict,
			"clinical status already exists for patient %s", cs.PatientID)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "insert clinical status", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalStatus, error) {
	cs, err := scanStatus(r.pool.QueryRow(ctx,
		`SELECT `+statusCols+` FROM clinical_status WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.E(apperrors.CodeNotFound, "clinical status %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "get clinical status", err)
	}
	return cs, nil
}

func (r *repoPG) GetByPatientID(ctx context.Context, patientID uuid.UUID) (*ClinicalStatus, error) {
	cs, err := scanStatus(r.pool.QueryRow(ctx,
		`SELECT `+statusCols+` FROM clinical_status WHERE patient_id = $1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.E(apperrors.CodeNotFound,
			"no clinical status for patient %s", patientID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "get clinical status by patient", err)
	}
	return cs, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*ClinicalStatus, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clinical_status`).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "count clinical status", err)
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+statusCols+` FROM clinical_status ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "list clinical status", err)
	}
	defer rows.Close()

	var items []*ClinicalStatus
	for rows.Next() {
		cs, err := scanStatus(rows)
		if err != nil {
			return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "scan clinical status", err)
		}
		items = append(items, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeStorage, "iterate clinical status", err)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, cs *ClinicalStatus) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE clinical_status
		SET status=$2, systolic_pressure=$3, diastolic_pressure=$4, respiration_rate=$5,
			blood_oxygenation=$6, heart_rate=$7, doctor_notes=$8, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		cs.ID, cs.Status, cs.SystolicPressure, cs.DiastolicPressure, cs.RespirationRate,
		cs.BloodOxygenation, cs.HeartRate, cs.DoctorNotes).
		Scan(&cs.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.E(apperrors.CodeNotFound, "clinical status %s not found", cs.ID)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "update clinical status", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clinical_status WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "delete clinical status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.E(apperrors.CodeNotFound, "clinical status %s not found", id)
	}
	return nil
}

func (r *repoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clinical_status WHERE patient_id = $1`, patientID)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeStorage, "delete clinical status by patient", err)
	}
	return tag.RowsAffected(), nil
}
