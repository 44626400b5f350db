package repository

import (
	"context"
	"time"

	"greengrocer/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleTotals aggregates sales inside a reporting window.
type SaleTotals struct {
	Count   int64
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	// List returns sales by sale_date descending; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]model.Sale, error)
	TotalsSince(ctx context.Context, since time.Time) (SaleTotals, error)
	DeleteAllTx(tx *gorm.DB) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) List(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).Order("sale_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TotalsSince(ctx context.Context, since time.Time) (SaleTotals, error) {
	var row struct {
		Count   int64
		Revenue decimal.Decimal
		Profit  decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(profit), 0) AS profit").
		Where("sale_date >= ?", since).
		Scan(&row).Error
	return SaleTotals{Count: row.Count, Revenue: row.Revenue, Profit: row.Profit}, err
}

func (r *saleRepo) DeleteAllTx(tx *gorm.DB) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Sale{}).Error
}
