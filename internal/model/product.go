package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Numeric describes a numeric(Precision, Scale) column.
type Numeric struct {
	Precision int32
	Scale     int32
}

// Column shapes shared by every quantity and unit price in the ledger. They
// mirror the gorm type tags on those fields.
var (
	QuantityColumn = Numeric{Precision: 12, Scale: 3}
	MoneyColumn    = Numeric{Precision: 12, Scale: 2}
)

// LowStockThreshold is the quantity below which a product is reported as low stock.
var LowStockThreshold = decimal.NewFromInt(5)

// Product is a stocked item. Quantity is fractional because most produce is
// sold by weight.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"index;not null"`
	Category     string          `gorm:"not null"` // conventionally "fruit" | "vegetable"
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit         string          `gorm:"not null;default:'kg'"`
	CreatedAt    time.Time       `gorm:"index"`
	UpdatedAt    time.Time
}
