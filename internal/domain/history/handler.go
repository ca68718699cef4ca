package history

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vitalsd/vitalsd/internal/platform/httpx"
	"github.com/vitalsd/vitalsd/pkg/pagination"
)

// EntryCreator is implemented by the integrity coordinator: it resolves the
// patient reference before delegating to Service.Create.
type EntryCreator interface {
	CreateHistory(ctx context.Context, in *CreateInput) (*Entry, error)
}

type Handler struct {
	svc     *Service
	creator EntryCreator
}

func NewHandler(svc *Service, creator EntryCreator) *Handler {
	return &Handler{svc: svc, creator: creator}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/history", h.ListByPatient)
	api.POST("/patients/:id/history", h.Create)
	api.GET("/history/:id", h.GetByID)
	api.PUT("/history/:id", h.Update)
}

func (h *Handler) Create(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in.PatientID = patientID
	e, err := h.creator.CreateHistory(c.Request().Context(), &in)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, e)
}
