package httpx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.E(apperrors.CodeValidation, "missing vitals"), http.StatusBadRequest},
		{apperrors.E(apperrors.CodeInvalidReference, "no such patient"), http.StatusBadRequest},
		{apperrors.E(apperrors.CodeConflict, "email taken"), http.StatusConflict},
		{apperrors.E(apperrors.CodeNotFound, "absent"), http.StatusNotFound},
		{apperrors.E(apperrors.CodeStorage, "db down"), http.StatusInternalServerError},
		{apperrors.E(apperrors.CodePartialFailure, "orphaned status"), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		he := Error(tc.err)
		if he.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, he.Code)
		}
	}
}

func TestError_BodyCarriesCode(t *testing.T) {
	he := Error(apperrors.E(apperrors.CodePartialFailure, "patient removed, cleanup failed"))
	body, ok := he.Message.(map[string]string)
	if !ok {
		t.Fatalf("expected map body, got %T", he.Message)
	}
	if body["code"] != "partial_failure" {
		t.Errorf("expected partial_failure code in body, got %q", body["code"])
	}
}
