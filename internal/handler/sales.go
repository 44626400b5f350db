package handler

import (
	"net/http"

	"greengrocer/internal/apierror"
	"greengrocer/internal/dto"
	"greengrocer/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	sales   service.SaleService
	reports service.ReportService
}

func NewSalesHandler(sales service.SaleService, reports service.ReportService) *SalesHandler {
	return &SalesHandler{sales: sales, reports: reports}
}

func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.CreateSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error recording sale")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) List(c *gin.Context) {
	resp, err := h.sales.ListSales(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error listing sales")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary serves GET /sales/summary?period=daily|weekly|monthly.
func (h *SalesHandler) Summary(c *gin.Context) {
	var filter dto.SummaryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.reports.Summary(c.Request.Context(), filter.Period)
	if err != nil {
		respondError(c, err, "Error building summary")
		return
	}
	c.JSON(http.StatusOK, resp)
}
