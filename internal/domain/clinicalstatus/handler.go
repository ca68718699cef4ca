package clinicalstatus

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vitalsd/vitalsd/internal/platform/httpx"
	"github.com/vitalsd/vitalsd/pkg/pagination"
)

// RefCreator is implemented by the integrity coordinator: it resolves the
// patient reference before delegating to Service.Create.
type RefCreator interface {
	CreateStatus(ctx context.Context, in *CreateInput) (*ClinicalStatus, error)
}

type Handler struct {
	svc     *Service
	creator RefCreator
}

func NewHandler(svc *Service, creator RefCreator) *Handler {
	return &Handler{svc: svc, creator: creator}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/clinical-statuses", h.GetAll)
	api.POST("/clinical-statuses", h.Create)
	api.GET("/clinical-statuses/:id", h.GetByID)
	api.PUT("/clinical-statuses/:id", h.Update)
	api.DELETE("/clinical-statuses/:id", h.Delete)
	api.GET("/patients/:id/clinical-status", h.GetByPatient)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cs, err := h.creator.CreateStatus(c.Request().Context(), &in)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusCreated, cs)
}

func (h *Handler) GetAll(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.GetAll(c.Request().Context(), pg.Limit, pg.Offset)
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
	cs, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) GetByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cs, err := h.svc.GetByPatientID(c.Request().Context(), patientID)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, cs)
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
	cs, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpx.Error(err)
	}
	return c.NoContent(http.StatusNoContent)
}
