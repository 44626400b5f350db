package repository

import (
	"context"
	"time"

	"greengrocer/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptTotals aggregates receipts, optionally restricted to a window.
type ReceiptTotals struct {
	Count  int64
	Amount decimal.Decimal
	Profit decimal.Decimal
}

type ReceiptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, r *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	List(ctx context.Context) ([]model.Receipt, error)
	// Totals sums every receipt created at or after since; a zero since
	// covers all receipts.
	Totals(ctx context.Context, since time.Time) (ReceiptTotals, error)
	DeleteAllTx(tx *gorm.DB) error
	DB() *gorm.DB
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) DB() *gorm.DB { return r.db }

func (r *receiptRepo) Create(ctx context.Context, tx *gorm.DB, rc *model.Receipt) error {
	return tx.WithContext(ctx).Create(rc).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rc model.Receipt
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&rc, "id = ?", id).Error
	return &rc, err
}

func (r *receiptRepo) List(ctx context.Context) ([]model.Receipt, error) {
	var receipts []model.Receipt
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).
		Order("created_at DESC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepo) Totals(ctx context.Context, since time.Time) (ReceiptTotals, error) {
	var row struct {
		Count  int64
		Amount decimal.Decimal
		Profit decimal.Decimal
	}
	q := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount, COALESCE(SUM(total_profit), 0) AS profit")
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	err := q.Scan(&row).Error
	return ReceiptTotals{Count: row.Count, Amount: row.Amount, Profit: row.Profit}, err
}

func (r *receiptRepo) DeleteAllTx(tx *gorm.DB) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ReceiptItem{}).Error; err != nil {
		return err
	}
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Receipt{}).Error
}

func orderedItems(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }
