package repository

import (
	"context"
	"time"

	"greengrocer/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// so they can be unit tested against in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	// ListLowStock returns up to limit products with quantity below threshold
	// (oldest first) and the total number of such products.
	ListLowStock(ctx context.Context, threshold decimal.Decimal, limit int) ([]model.Product, int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// Used inside transactions; callers must pass the tx instance
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateTx(tx *gorm.DB, p *model.Product) error
	// DecrementStockTx subtracts qty only while enough stock remains and
	// returns the number of rows changed (0 means the guard failed).
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal, at time.Time) (int64, error)
	DeleteAllTx(tx *gorm.DB) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Product) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold decimal.Decimal, limit int) ([]model.Product, int64, error) {
	lowStock := func(db *gorm.DB) *gorm.DB { return db.Where("quantity < ?", threshold) }

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Scopes(lowStock).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := r.db.WithContext(ctx).Scopes(lowStock).Order("created_at ASC").Limit(limit).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	return res.RowsAffected, res.Error
}

func (r *productRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) UpdateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Save(p).Error
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty decimal.Decimal, at time.Time) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *productRepo) DeleteAllTx(tx *gorm.DB) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Product{}).Error
}
