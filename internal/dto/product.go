package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required,max=120"`
	Category     string          `json:"category"      validate:"required,max=60"`
	CostPrice    decimal.Decimal `json:"cost_price"    validate:"min=0"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"min=0"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"min=0"`
	Unit         string          `json:"unit"          validate:"required,max=20"`
}

// UpdateProductRequest is a partial update: nil fields are left untouched.
type UpdateProductRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=1,max=120"`
	Category     *string          `json:"category"      validate:"omitempty,min=1,max=60"`
	CostPrice    *decimal.Decimal `json:"cost_price"    validate:"omitempty,min=0"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty,min=0"`
	Quantity     *decimal.Decimal `json:"quantity"      validate:"omitempty,min=0"`
	Unit         *string          `json:"unit"          validate:"omitempty,min=1,max=20"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
