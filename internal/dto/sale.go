package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"gt=0"`
	// SaleDate defaults to the time the sale is recorded.
	SaleDate *time.Time `json:"sale_date"`
}

type SaleResponse struct {
	ID            string          `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Profit        decimal.Decimal `json:"profit"`
	SaleDate      time.Time       `json:"sale_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
