package patients

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospital/hospital/internal/platform/auth"
	"github.com/hospital/hospital/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/records/mine", h.MyMedicalHistory)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)

	api.GET("/patients/:patient_pk/records", h.ListRecords)
	api.POST("/patients/:patient_pk/records", h.CreateRecord)
	api.GET("/patients/:patient_pk/records/:id", h.GetRecord)
}

func identity(c echo.Context) (auth.Identity, error) {
	ident, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return ident, nil
}

func domainError(err error) error {
	switch {
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "you do not have permission to perform this action")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func (h *Handler) ListPatients(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	list, total, err := h.svc.ListPatients(c.Request().Context(), ident, pg.Limit, pg.Offset)
	if err != nil {
		return domainError(err)
	}
	if list == nil {
		list = []*Patient{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg, c.Path()))
}

func (h *Handler) GetPatient(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPatient(c.Request().Context(), ident, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	var in CreatePatientInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.CreatePatient(c.Request().Context(), ident, in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in UpdatePatientInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.UpdatePatient(c.Request().Context(), ident, id, in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeletePatient(c.Request().Context(), ident, id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListRecords(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	patientID, err := uuid.Parse(c.Param("patient_pk"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pg := pagination.FromContext(c)
	recs, total, err := h.svc.ListRecords(c.Request().Context(), ident, patientID, pg.Limit, pg.Offset)
	if err != nil {
		return domainError(err)
	}
	if recs == nil {
		recs = []*MedicalRecord{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(recs, total, pg, c.Path()))
}

func (h *Handler) GetRecord(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), ident, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	patientID, err := uuid.Parse(c.Param("patient_pk"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var in CreateRecordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.CreateRecord(c.Request().Context(), ident, patientID, in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) MyMedicalHistory(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	recs, total, err := h.svc.MyMedicalHistory(c.Request().Context(), ident, pg.Limit, pg.Offset)
	if err != nil {
		return domainError(err)
	}
	if recs == nil {
		recs = []*MedicalRecord{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(recs, total, pg, c.Path()))
}
