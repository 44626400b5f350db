package handler

import (
	"net/http"

	"greengrocer/internal/apierror"
	"greengrocer/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ reports service.ReportService }

func NewDashboardHandler(reports service.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.reports.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error loading dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetAll wipes the ledger. Every failure is a 500.
func (h *DashboardHandler) ResetAll(c *gin.Context) {
	resp, err := h.reports.ResetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error resetting data"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
