package service

import (
	"context"
	"fmt"

	"greengrocer/internal/clock"
	"greengrocer/internal/dto"
	"greengrocer/internal/model"
	"greengrocer/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	ListSales(ctx context.Context) ([]dto.SaleResponse, error)
}

type saleService struct {
	repo      repository.SaleRepository
	inventory InventoryService
	cache     ReportCache
	clock     clock.Clock
}

func NewSaleService(repo repository.SaleRepository, inventory InventoryService, cache ReportCache, clk clock.Clock) SaleService {
	return &saleService{repo: repo, inventory: inventory, cache: cacheOrNoop(cache), clock: clk}
}

// ── CreateSale ────────────────────────────────────────────────────────────────
// Single transaction:
//   1. Reserve stock (row lock, guard, decrement, movement)
//   2. Derive total and profit from the reserved price snapshot
//   3. Insert the sale
// Any failure rolls back the reservation, so a rejected sale mutates nothing.

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, notFoundf("Product not found")
	}
	if !req.Quantity.IsPositive() {
		return nil, invalidf("Quantity must be greater than zero")
	}
	if err := fitsColumn("quantity", req.Quantity, model.QuantityColumn); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	saleDate := now
	if req.SaleDate != nil {
		saleDate = req.SaleDate.UTC()
	}
	// The receipt number always carries the recording date, not sale_date.
	receiptNumber := NewReceiptNumber(now)

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		res, err := s.inventory.Reserve(ctx, tx, productID, req.Quantity, model.MovementSale, receiptNumber)
		if err != nil {
			return err
		}
		sale = model.Sale{
			ID:            uuid.New(),
			ReceiptNumber: receiptNumber,
			ProductID:     productID,
			ProductName:   res.ProductName,
			Quantity:      req.Quantity,
			CostPrice:     res.UnitCost,
			SellingPrice:  res.UnitPrice,
			TotalAmount:   req.Quantity.Mul(res.UnitPrice),
			Profit:        res.UnitPrice.Sub(res.UnitCost).Mul(req.Quantity),
			SaleDate:      saleDate,
			CreatedAt:     now,
		}
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx)
	log.Info().
		Str("receipt_number", sale.ReceiptNumber).
		Str("product_id", sale.ProductID.String()).
		Str("quantity", sale.Quantity.String()).
		Str("total_amount", sale.TotalAmount.String()).
		Msg("sale recorded")

	resp := saleToResponse(&sale)
	return &resp, nil
}

func (s *saleService) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp = append(resp, saleToResponse(&sales[i]))
	}
	return resp, nil
}
