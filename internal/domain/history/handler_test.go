package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vitalsd/vitalsd/pkg/pagination"
)

type creatorStub struct {
	svc *Service
	err error
}

func (c *creatorStub) CreateHistory(ctx context.Context, in *CreateInput) (*Entry, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.svc.Create(ctx, in)
}

func newTestHandler() (*Handler, *creatorStub) {
	svc, _ := newTestService()
	stub := &creatorStub{svc: svc}
	return NewHandler(svc, stub), stub
}

func doRequest(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestHandlerCreate(t *testing.T) {
	h, _ := newTestHandler()
	pid := uuid.New()
	body := `{"systolic_pressure":125,"diastolic_pressure":82,"respiration_rate":17,` +
		`"blood_oxygenation":96,"heart_rate":78,"doctor_notes":[{"note":"follow-up"}]}`

	rec := doRequest(t, h.Create, http.MethodPost, "/patients/x/history", body,
		map[string]string{"id": pid.String()})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.PatientID != pid {
		t.Errorf("patient id from the route must win, got %s", got.PatientID)
	}
}

func TestHandlerCreate_RouteOverridesBodyPatient(t *testing.T) {
	h, _ := newTestHandler()
	routePID := uuid.New()
	body := `{"patient_id":"` + uuid.NewString() + `","systolic_pressure":120,` +
		`"diastolic_pressure":80,"respiration_rate":16,"blood_oxygenation":98,"heart_rate":72}`

	rec := doRequest(t, h.Create, http.MethodPost, "/patients/x/history", body,
		map[string]string{"id": routePID.String()})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.PatientID != routePID {
		t.Errorf("expected route patient id %s, got %s", routePID, got.PatientID)
	}
}

func TestHandlerCreate_MissingVitals(t *testing.T) {
	h, _ := newTestHandler()
	rec := doRequest(t, h.Create, http.MethodPost, "/patients/x/history",
		`{"heart_rate":72}`, map[string]string{"id": uuid.NewString()})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlerListByPatient(t *testing.T) {
	h, stub := newTestHandler()
	pid := uuid.New()
	for i := 0; i < 3; i++ {
		if _, err := stub.svc.Create(context.Background(), &CreateInput{PatientID: pid, Input: fullVitals()}); err != nil {
			t.Fatal(err)
		}
	}

	rec := doRequest(t, h.ListByPatient, http.MethodGet, "/patients/x/history", "",
		map[string]string{"id": pid.String()})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp pagination.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
}

func TestHandlerListByPatient_EmptyIs404(t *testing.T) {
	h, _ := newTestHandler()
	rec := doRequest(t, h.ListByPatient, http.MethodGet, "/patients/x/history", "",
		map[string]string{"id": uuid.NewString()})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty history, got %d", rec.Code)
	}
}

func TestHandlerUpdate(t *testing.T) {
	h, stub := newTestHandler()
	e, err := stub.svc.Create(context.Background(), &CreateInput{PatientID: uuid.New(), Input: fullVitals()})
	if err != nil {
		t.Fatal(err)
	}

	body := `{"systolic_pressure":150,"diastolic_pressure":95,"respiration_rate":22,` +
		`"blood_oxygenation":90,"heart_rate":105}`
	rec := doRequest(t, h.Update, http.MethodPut, "/history/"+e.ID.String(), body,
		map[string]string{"id": e.ID.String()})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.SystolicPressure != 150 || got.HeartRate != 105 {
		t.Errorf("vitals not overwritten: %+v", got.Vitals)
	}
}

func TestHandlerUpdate_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"systolic_pressure":120,"diastolic_pressure":80,"respiration_rate":16,` +
		`"blood_oxygenation":98,"heart_rate":72}`
	rec := doRequest(t, h.Update, http.MethodPut, "/history/x", body,
		map[string]string{"id": uuid.NewString()})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerUpdate_BadUUID(t *testing.T) {
	h, _ := newTestHandler()
	rec := doRequest(t, h.Update, http.MethodPut, "/history/nope", "",
		map[string]string{"id": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
