package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ReceiptItemRequest carries the prices the till displayed; they are trusted
// as sent.
type ReceiptItemRequest struct {
	ProductID    string          `json:"product_id"    validate:"required"`
	ProductName  string          `json:"product_name"  validate:"required,max=120"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"gt=0"`
	Unit         string          `json:"unit"          validate:"max=20"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"min=0"`
	CostPrice    decimal.Decimal `json:"cost_price"    validate:"min=0"`
}

type CreateReceiptRequest struct {
	Items []ReceiptItemRequest `json:"items" validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CreateReceiptResponse struct {
	Message       string          `json:"message"`
	ReceiptNumber string          `json:"receipt_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
}

type ReceiptItemResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Total        decimal.Decimal `json:"total"`
	Profit       decimal.Decimal `json:"profit"`
}

type ReceiptResponse struct {
	ID            string                `json:"id"`
	ReceiptNumber string                `json:"receipt_number"`
	Items         []ReceiptItemResponse `json:"items"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	TotalProfit   decimal.Decimal       `json:"total_profit"`
	CreatedAt     time.Time             `json:"created_at"`
}

type ReceiptTotalsResponse struct {
	TotalReceipts int64           `json:"total_receipts"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TodayReceipts int64           `json:"today_receipts"`
	TodayTotal    decimal.Decimal `json:"today_total"`
}
