package handler

import (
	"net/http"

	"greengrocer/internal/apierror"
	"greengrocer/internal/dto"
	"greengrocer/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Movements serves GET /inventory/movements?product_id=&limit=.
func (h *InventoryHandler) Movements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if !validateStruct(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Error listing stock movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}
