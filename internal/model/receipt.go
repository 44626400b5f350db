package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is a multi-item sale. Totals are rounded to cents.
type Receipt struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReceiptNumber string          `gorm:"uniqueIndex;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(24,2);not null"`
	TotalProfit   decimal.Decimal `gorm:"type:decimal(24,2);not null"`
	CreatedAt     time.Time       `gorm:"index"`

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

// ReceiptItem is one line of a receipt; Position keeps the input order.
type ReceiptItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReceiptID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position     int             `gorm:"not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit         string          `gorm:"not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(24,5);not null"`
	Profit       decimal.Decimal `gorm:"type:decimal(24,5);not null"`
}
