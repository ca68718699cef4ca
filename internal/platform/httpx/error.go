// Package httpx maps coded failures onto HTTP responses. It is the only
// place that knows about status codes; the domain services never do.
package httpx

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitalsd/vitalsd/pkg/apperrors"
)

var statusByCode = map[apperrors.Code]int{
	apperrors.CodeValidation:       http.StatusBadRequest,
	apperrors.CodeInvalidReference: http.StatusBadRequest,
	apperrors.CodeConflict:         http.StatusConflict,
	apperrors.CodeNotFound:         http.StatusNotFound,
	apperrors.CodeStorage:          http.StatusInternalServerError,
	apperrors.CodePartialFailure:   http.StatusInternalServerError,
}

// Error converts a service failure into an echo HTTPError. The response body
// carries the code so clients can distinguish kinds programmatically;
// partial_failure in particular must stay distinguishable from storage.
func Error(err error) *echo.HTTPError {
	code := apperrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return echo.NewHTTPError(status, map[string]string{
		"code":    string(code),
		"message": err.Error(),
	})
}
