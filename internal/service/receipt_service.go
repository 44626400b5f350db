package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"greengrocer/internal/clock"
	"greengrocer/internal/dto"
	"greengrocer/internal/infra"
	"greengrocer/internal/model"
	"greengrocer/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultReceiptUnit = "kg"

type ReceiptService interface {
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*dto.CreateReceiptResponse, error)
	ListReceipts(ctx context.Context) ([]dto.ReceiptResponse, error)
	GetReceipt(ctx context.Context, id string) (*dto.ReceiptResponse, error)
	// ReceiptPDF renders the stored receipt as a printable ticket.
	ReceiptPDF(ctx context.Context, id string) ([]byte, string, error)
}

type receiptService struct {
	repo      repository.ReceiptRepository
	inventory InventoryService
	cache     ReportCache
	clock     clock.Clock
	storeName string
}

func NewReceiptService(repo repository.ReceiptRepository, inventory InventoryService, cache ReportCache, clk clock.Clock, storeName string) ReceiptService {
	return &receiptService{repo: repo, inventory: inventory, cache: cacheOrNoop(cache), clock: clk, storeName: storeName}
}

// ── CreateReceipt ─────────────────────────────────────────────────────────────
// All-or-nothing:
//   1. Reject an empty receipt and unparseable product ids
//   2. Pre-flight: every product exists and covers the summed quantity
//   3. BEGIN TX: reserve each line in input order, insert receipt + items
//   4. COMMIT; a failure at any line rolls back every earlier reservation
// Line prices come from the request and are not re-read from the catalog.

func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*dto.CreateReceiptResponse, error) {
	if len(req.Items) == 0 {
		return nil, invalidf("No items provided")
	}

	ids := make([]uuid.UUID, len(req.Items))
	lines := make([]StockLine, len(req.Items))
	for i, item := range req.Items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, notFoundf("Product %s not found", item.ProductID)
		}
		if err := checkReceiptLine(i, item); err != nil {
			return nil, err
		}
		ids[i] = id
		lines[i] = StockLine{ProductID: id, Quantity: item.Quantity}
	}

	if err := s.inventory.CheckAvailability(ctx, lines); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	receipt := model.Receipt{
		ID:            uuid.New(),
		ReceiptNumber: NewReceiptNumber(now),
		CreatedAt:     now,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		totalAmount := decimal.Zero
		totalProfit := decimal.Zero
		receipt.Items = make([]model.ReceiptItem, 0, len(req.Items))

		for i, item := range req.Items {
			if _, err := s.inventory.Reserve(ctx, tx, ids[i], item.Quantity, model.MovementReceipt, receipt.ReceiptNumber); err != nil {
				return err
			}

			lineTotal := item.Quantity.Mul(item.SellingPrice)
			lineProfit := item.SellingPrice.Sub(item.CostPrice).Mul(item.Quantity)
			totalAmount = totalAmount.Add(lineTotal)
			totalProfit = totalProfit.Add(lineProfit)

			unit := item.Unit
			if unit == "" {
				unit = defaultReceiptUnit
			}
			receipt.Items = append(receipt.Items, model.ReceiptItem{
				ID:           uuid.New(),
				ReceiptID:    receipt.ID,
				Position:     i,
				ProductID:    ids[i],
				ProductName:  item.ProductName,
				Quantity:     item.Quantity,
				Unit:         unit,
				SellingPrice: item.SellingPrice,
				CostPrice:    item.CostPrice,
				Total:        lineTotal,
				Profit:       lineProfit,
			})
		}

		receipt.TotalAmount = totalAmount.Round(2)
		receipt.TotalProfit = totalProfit.Round(2)
		if err := s.repo.Create(ctx, tx, &receipt); err != nil {
			return fmt.Errorf("insert receipt: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx)
	log.Info().
		Str("receipt_number", receipt.ReceiptNumber).
		Int("items", len(receipt.Items)).
		Str("total_amount", receipt.TotalAmount.String()).
		Msg("receipt created")

	return &dto.CreateReceiptResponse{
		Message:       "Receipt created successfully",
		ReceiptNumber: receipt.ReceiptNumber,
		TotalAmount:   receipt.TotalAmount,
		TotalProfit:   receipt.TotalProfit,
	}, nil
}

// checkReceiptLine keeps every figure of a line within its column, so the
// stored line multiplies out to the stored total.
func checkReceiptLine(i int, item dto.ReceiptItemRequest) error {
	checks := []struct {
		field string
		value decimal.Decimal
		col   model.Numeric
	}{
		{"quantity", item.Quantity, model.QuantityColumn},
		{"selling_price", item.SellingPrice, model.MoneyColumn},
		{"cost_price", item.CostPrice, model.MoneyColumn},
	}
	for _, c := range checks {
		if err := fitsColumn(fmt.Sprintf("items[%d].%s", i, c.field), c.value, c.col); err != nil {
			return err
		}
	}
	return nil
}

func (s *receiptService) ListReceipts(ctx context.Context) ([]dto.ReceiptResponse, error) {
	receipts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		resp = append(resp, receiptToResponse(&receipts[i]))
	}
	return resp, nil
}

func (s *receiptService) GetReceipt(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := receiptToResponse(r)
	return &resp, nil
}

func (s *receiptService) ReceiptPDF(ctx context.Context, id string) ([]byte, string, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := infra.RenderReceiptPDF(&buf, s.storeName, r); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), r.ReceiptNumber + ".pdf", nil
}

func (s *receiptService) find(ctx context.Context, id string) (*model.Receipt, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFoundf("Receipt not found")
	}
	r, err := s.repo.FindByID(ctx, rid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("Receipt not found")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
