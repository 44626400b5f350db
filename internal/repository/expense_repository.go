package repository

import (
	"context"
	"time"

	"greengrocer/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseTotals aggregates expenses inside a reporting window.
type ExpenseTotals struct {
	Count  int64
	Amount decimal.Decimal
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context) ([]model.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	TotalsSince(ctx context.Context, since time.Time) (ExpenseTotals, error)
	DeleteAllTx(tx *gorm.DB) error
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) List(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Order("expense_date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Expense{})
	return res.RowsAffected, res.Error
}

func (r *expenseRepo) TotalsSince(ctx context.Context, since time.Time) (ExpenseTotals, error) {
	var row struct {
		Count  int64
		Amount decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("expense_date >= ?", since).
		Scan(&row).Error
	return ExpenseTotals{Count: row.Count, Amount: row.Amount}, err
}

func (r *expenseRepo) DeleteAllTx(tx *gorm.DB) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Expense{}).Error
}
