package patient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vitalsd/vitalsd/internal/platform/httpx"
	"github.com/vitalsd/vitalsd/pkg/pagination"
)

// CascadeDeleter is implemented by the integrity coordinator. Patient
// deletion always routes through it so the clinical status cascade cannot be
// bypassed from the transport layer.
type CascadeDeleter interface {
	DeletePatient(ctx context.Context, id uuid.UUID) (*Patient, error)
}

type Handler struct {
	svc     *Service
	cascade CascadeDeleter
}

func NewHandler(svc *Service, cascade CascadeDeleter) *Handler {
	return &Handler{svc: svc, cascade: cascade}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.List)
	api.POST("/patients", h.Create)
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update)
	api.DELETE("/patients/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, pg.Limit, pg.Offset))
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
	p, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.cascade.DeletePatient(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "patient deleted",
		"patient": p,
	})
}
