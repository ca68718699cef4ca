package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/vitalsd/vitalsd/internal/domain/clinicalstatus"
	"github.com/vitalsd/vitalsd/internal/domain/history"
	"github.com/vitalsd/vitalsd/internal/domain/integrity"
	"github.com/vitalsd/vitalsd/internal/domain/patient"
	"github.com/vitalsd/vitalsd/internal/domain/vitals"
	"github.com/vitalsd/vitalsd/internal/platform/metrics"
	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

type stack struct {
	patients *patient.Service
	statuses *clinicalstatus.Service
	entries  *history.Service
	coord    *integrity.Coordinator
}

func newStack(t *testing.T) *stack {
	pool := requireDB(t)
	patientSvc := patient.NewService(patient.NewRepoPG(pool))
	statusSvc := clinicalstatus.NewService(clinicalstatus.NewRepoPG(pool))
	historySvc := history.NewService(history.NewRepoPG(pool))
	m := metrics.New(prometheus.NewRegistry())
	coord := integrity.NewCoordinator(patientSvc, statusSvc, historySvc, zerolog.Nop(), m)
	return &stack{patients: patientSvc, statuses: statusSvc, entries: historySvc, coord: coord}
}

func f(v float64) *float64 { return &v }

func fullVitals() vitals.Input {
	return vitals.Input{
		SystolicPressure:  f(120),
		DiastolicPressure: f(80),
		RespirationRate:   f(16),
		BloodOxygenation:  f(98),
		HeartRate:         f(72),
	}
}

func TestPatientLifecycle(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	truncateAll(t, ctx)

	p, err := s.patients.Create(ctx, &patient.CreateInput{Name: "A", Email: "A@X.com"})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	if p.Email != "a@x.com" {
		t.Errorf("email not normalized on write, got %q", p.Email)
	}

	// case-insensitive uniqueness backed by the index
	_, err = s.patients.Create(ctx, &patient.CreateInput{Name: "B", Email: "a@X.COM"})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("expected conflict for same normalized email, got %v", err)
	}

	name := "Updated"
	updated, err := s.patients.Update(ctx, p.ID, &patient.UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update patient: %v", err)
	}
	if updated.Name != "Updated" || updated.Email != "a@x.com" {
		t.Errorf("partial update wrong: %+v", updated)
	}
}

func TestStatusLifecycle(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	truncateAll(t, ctx)

	p, err := s.patients.Create(ctx, &patient.CreateInput{Name: "A", Email: "a@x.com"})
	if err != nil {
		t.Fatal(err)
	}

	// reference check happens before the store is touched
	_, err = s.coord.CreateStatus(ctx, &clinicalstatus.CreateInput{
		PatientID: uuid.New(),
		Input:     fullVitals(),
	})
	if !apperrors.HasCode(err, apperrors.CodeInvalidReference) {
		t.Fatalf("expected invalid_reference, got %v", err)
	}

	cs, err := s.coord.CreateStatus(ctx, &clinicalstatus.CreateInput{
		PatientID: p.ID,
		Input:     fullVitals(),
	})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	if cs.Status != clinicalstatus.StatusStable {
		t.Errorf("expected default Stable, got %q", cs.Status)
	}

	_, err = s.coord.CreateStatus(ctx, &clinicalstatus.CreateInput{
		PatientID: p.ID,
		Input:     fullVitals(),
	})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict for second status, got %v", err)
	}

	critical := clinicalstatus.StatusCritical
	got, err := s.statuses.Update(ctx, cs.ID, &clinicalstatus.UpdateInput{Status: &critical})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != critical || got.HeartRate != 72 {
		t.Errorf("status-only update touched vitals: %+v", got)
	}
}

func TestCascadeDelete(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	truncateAll(t, ctx)

	p, err := s.patients.Create(ctx, &patient.CreateInput{Name: "A", Email: "a@x.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.coord.CreateStatus(ctx, &clinicalstatus.CreateInput{
		PatientID: p.ID,
		Input:     fullVitals(),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.coord.CreateHistory(ctx, &history.CreateInput{
		PatientID: p.ID,
		Input:     fullVitals(),
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.coord.DeletePatient(ctx, p.ID); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}

	_, err = s.statuses.GetByPatientID(ctx, p.ID)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("status should be gone after cascade, got %v", err)
	}

	// history survives patient deletion
	_, total, err := s.entries.ListByPatient(ctx, p.ID, 20, 0)
	if err != nil {
		t.Errorf("history should survive cascade: %v", err)
	} else if total != 1 {
		t.Errorf("expected 1 retained history entry, got %d", total)
	}
}

func TestHistoryOrdering(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	truncateAll(t, ctx)

	p, err := s.patients.Create(ctx, &patient.CreateInput{Name: "A", Email: "a@x.com"})
	if err != nil {
		t.Fatal(err)
	}

	rates := []float64{60, 70, 80}
	for _, hr := range rates {
		in := fullVitals()
		in.HeartRate = f(hr)
		if _, err := s.coord.CreateHistory(ctx, &history.CreateInput{
			PatientID: p.ID,
			Input:     in,
		}); err != nil {
			t.Fatal(err)
		}
	}

	items, total, err := s.entries.ListByPatient(ctx, p.ID, 20, 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 entries, got %d", total)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].CreatedAt.Before(items[i].CreatedAt) {
			t.Errorf("entries not newest-first at index %d", i)
		}
	}
}
