package service

import (
	"context"
	"errors"
	"fmt"

	"greengrocer/internal/clock"
	"greengrocer/internal/dto"
	"greengrocer/internal/model"
	"greengrocer/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reservation is the product snapshot taken while stock was decremented.
type Reservation struct {
	ProductID      uuid.UUID
	ProductName    string
	Unit           string
	UnitCost       decimal.Decimal
	UnitPrice      decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
}

// StockLine is one requested quantity for CheckAvailability.
type StockLine struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// InventoryService owns product stock levels.
type InventoryService interface {
	// Reserve locks the product row, checks stock and decrements it inside tx.
	// kind and reference are recorded on the stock movement.
	Reserve(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, kind, reference string) (*Reservation, error)
	// CheckAvailability verifies every line (quantities summed per product)
	// without mutating anything.
	CheckAvailability(ctx context.Context, lines []StockLine) error
	// RecordAdjustmentTx logs an explicit stock edit made through the catalog.
	RecordAdjustmentTx(tx *gorm.DB, productID uuid.UUID, before, after decimal.Decimal) error
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.StockMovementResponse, error)
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	clock     clock.Clock
}

func NewInventoryService(products repository.ProductRepository, movements repository.StockMovementRepository, clk clock.Clock) InventoryService {
	return &inventoryService{products: products, movements: movements, clock: clk}
}

func (s *inventoryService) Reserve(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, kind, reference string) (*Reservation, error) {
	if !qty.IsPositive() {
		return nil, invalidf("Quantity must be greater than zero")
	}

	p, err := s.products.FindByIDForUpdateTx(tx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("Product %s not found", productID)
	}
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", productID, err)
	}

	before := p.Quantity
	if before.LessThan(qty) {
		return nil, insufficientStockf("Insufficient stock for %s. Available: %s", p.Name, before.String())
	}

	now := s.clock.Now().UTC()
	n, err := s.products.DecrementStockTx(tx, productID, qty, now)
	if err != nil {
		return nil, fmt.Errorf("decrement stock of %s: %w", p.Name, err)
	}
	if n == 0 {
		return nil, insufficientStockf("Insufficient stock for %s. Available: %s", p.Name, before.String())
	}

	after := before.Sub(qty)
	mov := &model.StockMovement{
		ID:             uuid.New(),
		ProductID:      productID,
		Kind:           kind,
		Delta:          qty.Neg(),
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      reference,
		CreatedAt:      now,
	}
	if err := s.movements.CreateTx(tx, mov); err != nil {
		return nil, fmt.Errorf("record stock movement: %w", err)
	}

	return &Reservation{
		ProductID:      productID,
		ProductName:    p.Name,
		Unit:           p.Unit,
		UnitCost:       p.CostPrice,
		UnitPrice:      p.SellingPrice,
		QuantityBefore: before,
		QuantityAfter:  after,
	}, nil
}

func (s *inventoryService) CheckAvailability(ctx context.Context, lines []StockLine) error {
	requested := make(map[uuid.UUID]decimal.Decimal, len(lines))
	order := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return invalidf("Quantity must be greater than zero")
		}
		if _, seen := requested[l.ProductID]; !seen {
			order = append(order, l.ProductID)
		}
		requested[l.ProductID] = requested[l.ProductID].Add(l.Quantity)
	}

	for _, id := range order {
		p, err := s.products.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Product %s not found", id)
		}
		if err != nil {
			return fmt.Errorf("load product %s: %w", id, err)
		}
		if p.Quantity.LessThan(requested[id]) {
			return insufficientStockf("Insufficient stock for %s. Available: %s", p.Name, p.Quantity.String())
		}
	}
	return nil
}

func (s *inventoryService) RecordAdjustmentTx(tx *gorm.DB, productID uuid.UUID, before, after decimal.Decimal) error {
	if before.Equal(after) {
		return nil
	}
	return s.movements.CreateTx(tx, &model.StockMovement{
		ID:             uuid.New(),
		ProductID:      productID,
		Kind:           model.MovementAdjustment,
		Delta:          after.Sub(before),
		QuantityBefore: before,
		QuantityAfter:  after,
		CreatedAt:      s.clock.Now().UTC(),
	})
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.StockMovementResponse, error) {
	var f repository.StockMovementFilter
	if filter.ProductID != "" {
		id, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, invalidf("Invalid product_id")
		}
		f.ProductID = &id
	}
	f.Limit = filter.Limit

	movements, err := s.movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		resp = append(resp, movementToResponse(&movements[i]))
	}
	return resp, nil
}
