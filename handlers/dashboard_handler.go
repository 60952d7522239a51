package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/dashboard"
	"github.com/devsparksuporte-web/PotencialCameras/services"
	"github.com/devsparksuporte-web/PotencialCameras/validation"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *services.CameraService
	now     func() time.Time
}

func NewDashboardHandler(service *services.CameraService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		now:     time.Now,
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	snapshot, err := h.service.Snapshot(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *DashboardHandler) ExportCameras(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.service.Export(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := dashboard.ExportFilename(h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	if err := dashboard.WriteCSV(c.Writer, rows); err != nil {
		// headers are already sent
		_ = c.Error(err)
	}
}

// parseFilter reads the quick, status, store and q query parameters.
func parseFilter(c *gin.Context) (dashboard.Filter, error) {
	var violations []validation.FieldViolation

	quick, err := dashboard.ParseQuickFilter(c.Query("quick"))
	if err != nil {
		violations = append(violations, validation.FieldViolation{Field: "quick", Message: err.Error()})
	}

	status, err := dashboard.ParseStatusFilter(c.Query("status"))
	if err != nil {
		violations = append(violations, validation.FieldViolation{Field: "status", Message: err.Error()})
	}

	if len(violations) > 0 {
		return dashboard.Filter{}, &validation.ValidationError{Violations: violations}
	}

	return dashboard.Filter{
		Quick:  quick,
		Status: status,
		Store:  c.Query("store"),
		Query:  c.Query("q"),
	}, nil
}
