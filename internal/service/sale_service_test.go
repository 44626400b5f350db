package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"greengrocer/internal/dto"
	"greengrocer/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var receiptNumberRe = regexp.MustCompile(`^RCP-\d{8}-[A-Z0-9]{8}$`)

func TestCreateSale_DeductsStockAndComputesProfit(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Apple", "1.00", "2.50", "20")

	sale, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{
		ProductID: p.ID.String(),
		Quantity:  dec("2"),
	})
	require.NoError(t, err)

	assertDecimal(t, "18", l.products.quantity(t, p.ID))
	assertDecimal(t, "5.0", sale.TotalAmount)
	assertDecimal(t, "3.0", sale.Profit)
	assert.Equal(t, "Apple", sale.ProductName)
	assertDecimal(t, "1.00", sale.CostPrice)
	assertDecimal(t, "2.50", sale.SellingPrice)
	assert.Equal(t, fixedNow, sale.SaleDate)
	assert.Regexp(t, receiptNumberRe, sale.ReceiptNumber)
	assert.Equal(t, "RCP-20260314-", sale.ReceiptNumber[:13])
	require.Len(t, l.sales.sales, 1)
	assert.Equal(t, 1, l.cache.invalidations)
}

func TestCreateSale_FractionalQuantity(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Grapes", "2.10", "3.30", "4")

	sale, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{
		ProductID: p.ID.String(),
		Quantity:  dec("1.5"),
	})
	require.NoError(t, err)
	assertDecimal(t, "2.5", l.products.quantity(t, p.ID))
	assertDecimal(t, "4.95", sale.TotalAmount)
	assertDecimal(t, "1.8", sale.Profit)
}

func TestCreateSale_ReceiptNumberUsesRecordingDate(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Apple", "1.00", "2.50", "20")
	backdated := time.Date(2025, 12, 31, 9, 0, 0, 0, time.UTC)

	sale, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{
		ProductID: p.ID.String(),
		Quantity:  dec("1"),
		SaleDate:  &backdated,
	})
	require.NoError(t, err)
	assert.Equal(t, backdated, sale.SaleDate)
	assert.Equal(t, "RCP-20260314-", sale.ReceiptNumber[:13])
}

func TestCreateSale_InsufficientStockMutatesNothing(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Apple", "1.00", "2.50", "1")

	_, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{
		ProductID: p.ID.String(),
		Quantity:  dec("2"),
	})
	require.ErrorIs(t, err, service.ErrInsufficientStock)
	assertDecimal(t, "1", l.products.quantity(t, p.ID))
	assert.Empty(t, l.sales.sales)
	assert.Empty(t, l.movements.movements)
	assert.Zero(t, l.cache.invalidations)
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	l := newLedger()

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: id, Quantity: dec("1")})
		require.ErrorIs(t, err, service.ErrNotFound, id)
	}
	assert.Empty(t, l.sales.sales)
}

func TestCreateSale_RejectsZeroQuantity(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Apple", "1.00", "2.50", "5")

	_, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: p.ID.String(), Quantity: dec("0")})
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestListSales_NewestFirst(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Apple", "1.00", "2.50", "20")
	ctx := context.Background()

	older := fixedNow.Add(-48 * time.Hour)
	_, err := l.saleSv.CreateSale(ctx, dto.CreateSaleRequest{ProductID: p.ID.String(), Quantity: dec("1"), SaleDate: &older})
	require.NoError(t, err)
	_, err = l.saleSv.CreateSale(ctx, dto.CreateSaleRequest{ProductID: p.ID.String(), Quantity: dec("2")})
	require.NoError(t, err)

	sales, err := l.saleSv.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assertDecimal(t, "2", sales[0].Quantity)
	assertDecimal(t, "1", sales[1].Quantity)
}

func TestCreateSale_RejectsQuantityFinerThanStock(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Apple", "1.00", "2.50", "20")

	for _, qty := range []string{"0.0004", "1.0005", "1000000000"} {
		_, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: p.ID.String(), Quantity: dec(qty)})
		require.ErrorIs(t, err, service.ErrValidation, qty)
	}
	assertDecimal(t, "20", l.products.quantity(t, p.ID))
	assert.Empty(t, l.sales.sales)
	assert.Empty(t, l.movements.movements)
}

func TestCreateSale_TrailingZerosAreNotExtraPrecision(t *testing.T) {
	l := newLedger()
	p := l.seedProduct("Apple", "1.00", "2.50", "20")

	sale, err := l.saleSv.CreateSale(context.Background(), dto.CreateSaleRequest{ProductID: p.ID.String(), Quantity: dec("0.0010")})
	require.NoError(t, err)
	assertDecimal(t, "19.999", l.products.quantity(t, p.ID))
	assertDecimal(t, "0.0025", sale.TotalAmount)
	assertDecimal(t, "0.0015", sale.Profit)
}
