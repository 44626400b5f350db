package handler

import (
	"net/http"

	"greengrocer/internal/dto"
	"greengrocer/internal/service"

	"github.com/gin-gonic/gin"
)

type ReceiptsHandler struct {
	receipts service.ReceiptService
	reports  service.ReportService
}

func NewReceiptsHandler(receipts service.ReceiptService, reports service.ReportService) *ReceiptsHandler {
	return &ReceiptsHandler{receipts: receipts, reports: reports}
}

func (h *ReceiptsHandler) Create(c *gin.Context) {
	var req dto.CreateReceiptRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.receipts.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Error creating receipt")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReceiptsHandler) List(c *gin.Context) {
	resp, err := h.receipts.ListReceipts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error listing receipts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReceiptsHandler) Get(c *gin.Context) {
	resp, err := h.receipts.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error loading receipt")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF streams the receipt as a printable ticket.
func (h *ReceiptsHandler) PDF(c *gin.Context) {
	body, filename, err := h.receipts.ReceiptPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error rendering receipt")
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

func (h *ReceiptsHandler) Totals(c *gin.Context) {
	resp, err := h.reports.ReceiptTotals(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error loading receipt totals")
		return
	}
	c.JSON(http.StatusOK, resp)
}
