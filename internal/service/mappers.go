package service

import (
	"greengrocer/internal/dto"
	"greengrocer/internal/model"
)

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Category:     p.Category,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func saleToResponse(s *model.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID.String(),
		ReceiptNumber: s.ReceiptNumber,
		ProductID:     s.ProductID.String(),
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		CostPrice:     s.CostPrice,
		SellingPrice:  s.SellingPrice,
		TotalAmount:   s.TotalAmount,
		Profit:        s.Profit,
		SaleDate:      s.SaleDate,
		CreatedAt:     s.CreatedAt,
	}
}

func receiptToResponse(r *model.Receipt) dto.ReceiptResponse {
	items := make([]dto.ReceiptItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReceiptItemResponse{
			ProductID:    it.ProductID.String(),
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			SellingPrice: it.SellingPrice,
			CostPrice:    it.CostPrice,
			Total:        it.Total,
			Profit:       it.Profit,
		})
	}
	return dto.ReceiptResponse{
		ID:            r.ID.String(),
		ReceiptNumber: r.ReceiptNumber,
		Items:         items,
		TotalAmount:   r.TotalAmount,
		TotalProfit:   r.TotalProfit,
		CreatedAt:     r.CreatedAt,
	}
}

func expenseToResponse(e *model.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
	}
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:             m.ID.String(),
		ProductID:      m.ProductID.String(),
		Kind:           m.Kind,
		Delta:          m.Delta,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reference:      m.Reference,
		CreatedAt:      m.CreatedAt,
	}
}
