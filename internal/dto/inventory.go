package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementFilter is bound from the query string of GET /inventory/movements.
type MovementFilter struct {
	ProductID string `form:"product_id"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockMovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Kind           string          `json:"kind"`
	Delta          decimal.Decimal `json:"delta"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reference      string          `json:"reference,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
