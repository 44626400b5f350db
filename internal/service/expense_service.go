package service

import (
	"context"

	"greengrocer/internal/clock"
	"greengrocer/internal/dto"
	"greengrocer/internal/model"
	"greengrocer/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context) ([]dto.ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
}

type expenseService struct {
	repo  repository.ExpenseRepository
	cache ReportCache
	clock clock.Clock
}

func NewExpenseService(repo repository.ExpenseRepository, cache ReportCache, clk clock.Clock) ExpenseService {
	return &expenseService{repo: repo, cache: cacheOrNoop(cache), clock: clk}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.Amount.IsNegative() {
		return nil, invalidf("Amount must not be negative")
	}
	if err := fitsColumn("amount", req.Amount, model.MoneyColumn); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = req.ExpenseDate.UTC()
	}
	e := &model.Expense{
		ID:          uuid.New(),
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	resp := expenseToResponse(e)
	return &resp, nil
}

func (s *expenseService) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, expenseToResponse(&expenses[i]))
	}
	return resp, nil
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return notFoundf("Expense not found")
	}
	n, err := s.repo.Delete(ctx, eid)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFoundf("Expense not found")
	}
	s.cache.Invalidate(ctx)
	return nil
}
