package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"      validate:"min=0"`
	// ExpenseDate defaults to the time the expense is recorded.
	ExpenseDate *time.Time `json:"expense_date"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
}
