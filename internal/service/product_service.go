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

// ProductService defines the business logic contract for the product catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id string) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo      repository.ProductRepository
	inventory InventoryService
	cache     ReportCache
	clock     clock.Clock
}

func NewProductService(repo repository.ProductRepository, inventory InventoryService, cache ReportCache, clk clock.Clock) ProductService {
	return &productService{repo: repo, inventory: inventory, cache: cacheOrNoop(cache), clock: clk}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := checkProductFigures(&req.CostPrice, &req.SellingPrice, &req.Quantity); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	p := &model.Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Category:     req.Category,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, p); err != nil {
			return err
		}
		return s.inventory.RecordAdjustmentTx(tx, p.ID, decimal.Zero, p.Quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.cache.Invalidate(ctx)
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFoundf("Product not found")
	}
	p, err := s.repo.FindByID(ctx, pid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("Product not found")
	}
	if err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, productToResponse(&products[i]))
	}
	return resp, nil
}

// Update applies the non-nil fields. A quantity change is logged as a stock
// adjustment in the same transaction.
func (s *productService) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFoundf("Product not found")
	}
	if err := checkProductFigures(req.CostPrice, req.SellingPrice, req.Quantity); err != nil {
		return nil, err
	}

	var updated *model.Product
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDForUpdateTx(tx, pid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("Product not found")
		}
		if err != nil {
			return err
		}

		before := p.Quantity
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.CostPrice != nil {
			p.CostPrice = *req.CostPrice
		}
		if req.SellingPrice != nil {
			p.SellingPrice = *req.SellingPrice
		}
		if req.Quantity != nil {
			p.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			p.Unit = *req.Unit
		}
		p.UpdatedAt = s.clock.Now().UTC()

		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		updated = p
		return s.inventory.RecordAdjustmentTx(tx, p.ID, before, p.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	resp := productToResponse(updated)
	return &resp, nil
}

// Delete removes the product only; sales and receipts keep their snapshot.
func (s *productService) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return notFoundf("Product not found")
	}
	n, err := s.repo.Delete(ctx, pid)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFoundf("Product not found")
	}
	s.cache.Invalidate(ctx)
	return nil
}

// checkProductFigures validates the figures that are present; nil means the
// field is not being set.
func checkProductFigures(cost, price, qty *decimal.Decimal) error {
	if cost != nil {
		if err := fitsColumn("cost_price", *cost, model.MoneyColumn); err != nil {
			return err
		}
	}
	if price != nil {
		if err := fitsColumn("selling_price", *price, model.MoneyColumn); err != nil {
			return err
		}
	}
	if qty != nil {
		return fitsColumn("quantity", *qty, model.QuantityColumn)
	}
	return nil
}
