package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement kinds.
const (
	MovementSale       = "sale"
	MovementReceipt    = "receipt"
	MovementAdjustment = "adjustment"
)

// StockMovement records every change to a product's quantity. It is written in
// the same transaction as the change itself.
type StockMovement struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind           string          `gorm:"not null"`
	Delta          decimal.Decimal `gorm:"type:decimal(12,3);not null"` // positive = in, negative = out
	QuantityBefore decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reference      string          // receipt number for sale/receipt movements
	CreatedAt      time.Time       `gorm:"index"`
}
