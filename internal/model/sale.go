package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a single-product sale. Product name and prices are copied at sale
// time. ProductID is not a foreign key: deleting a product leaves its sales.
// Totals hold quantity x price at full scale (3 + 2 decimal places).
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReceiptNumber string          `gorm:"uniqueIndex;not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName   string          `gorm:"not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(24,5);not null"`
	Profit        decimal.Decimal `gorm:"type:decimal(24,5);not null"`
	SaleDate      time.Time       `gorm:"index;not null"`
	CreatedAt     time.Time
}
