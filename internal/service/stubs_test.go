package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"greengrocer/internal/clock"
	"greengrocer/internal/model"
	"greengrocer/internal/repository"
	"greengrocer/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// The repositories are in-memory and ignore tx: with a nil DB the services run
// their transaction body directly (see runTx).

type stubProductRepo struct {
	products map[uuid.UUID]model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, _ *gorm.DB, p *model.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *stubProductRepo) sorted() []model.Product {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	return r.sorted(), nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, threshold decimal.Decimal, limit int) ([]model.Product, int64, error) {
	var low []model.Product
	for _, p := range r.sorted() {
		if p.Quantity.LessThan(threshold) {
			low = append(low, p)
		}
	}
	total := int64(len(low))
	if len(low) > limit {
		low = low[:limit]
	}
	return low, total, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) UpdateTx(_ *gorm.DB, p *model.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty decimal.Decimal, at time.Time) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Quantity.LessThan(qty) {
		return 0, nil
	}
	p.Quantity = p.Quantity.Sub(qty)
	p.UpdatedAt = at
	r.products[id] = p
	return 1, nil
}

func (r *stubProductRepo) DeleteAllTx(_ *gorm.DB) error {
	r.products = make(map[uuid.UUID]model.Product)
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) quantity(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	p, ok := r.products[id]
	if !ok {
		t.Fatalf("product %s missing from stub", id)
	}
	return p.Quantity
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubSaleRepo struct {
	sales []model.Sale
	// afterTotals, when set, runs once after TotalsSince has summed.
	afterTotals func()
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	r.sales = append(r.sales, *s)
	return nil
}

func (r *stubSaleRepo) List(_ context.Context, limit int) ([]model.Sale, error) {
	out := append([]model.Sale(nil), r.sales...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSaleRepo) TotalsSince(_ context.Context, since time.Time) (repository.SaleTotals, error) {
	t := repository.SaleTotals{Revenue: decimal.Zero, Profit: decimal.Zero}
	for _, s := range r.sales {
		if s.SaleDate.Before(since) {
			continue
		}
		t.Count++
		t.Revenue = t.Revenue.Add(s.TotalAmount)
		t.Profit = t.Profit.Add(s.Profit)
	}
	if hook := r.afterTotals; hook != nil {
		r.afterTotals = nil
		hook()
	}
	return t, nil
}

func (r *stubSaleRepo) DeleteAllTx(_ *gorm.DB) error {
	r.sales = nil
	return nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubExpenseRepo struct {
	expenses []model.Expense
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *stubExpenseRepo) List(_ context.Context) ([]model.Expense, error) {
	out := append([]model.Expense(nil), r.expenses...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpenseDate.After(out[j].ExpenseDate) })
	return out, nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	for i, e := range r.expenses {
		if e.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubExpenseRepo) TotalsSince(_ context.Context, since time.Time) (repository.ExpenseTotals, error) {
	t := repository.ExpenseTotals{Amount: decimal.Zero}
	for _, e := range r.expenses {
		if e.ExpenseDate.Before(since) {
			continue
		}
		t.Count++
		t.Amount = t.Amount.Add(e.Amount)
	}
	return t, nil
}

func (r *stubExpenseRepo) DeleteAllTx(_ *gorm.DB) error {
	r.expenses = nil
	return nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

type stubReceiptRepo struct {
	receipts []model.Receipt
}

func (r *stubReceiptRepo) Create(_ context.Context, _ *gorm.DB, rc *model.Receipt) error {
	r.receipts = append(r.receipts, *rc)
	return nil
}

func (r *stubReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	for i := range r.receipts {
		if r.receipts[i].ID == id {
			rc := r.receipts[i]
			return &rc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubReceiptRepo) List(_ context.Context) ([]model.Receipt, error) {
	out := append([]model.Receipt(nil), r.receipts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubReceiptRepo) Totals(_ context.Context, since time.Time) (repository.ReceiptTotals, error) {
	t := repository.ReceiptTotals{Amount: decimal.Zero, Profit: decimal.Zero}
	for _, rc := range r.receipts {
		if !since.IsZero() && rc.CreatedAt.Before(since) {
			continue
		}
		t.Count++
		t.Amount = t.Amount.Add(rc.TotalAmount)
		t.Profit = t.Profit.Add(rc.TotalProfit)
	}
	return t, nil
}

func (r *stubReceiptRepo) DeleteAllTx(_ *gorm.DB) error {
	r.receipts = nil
	return nil
}

func (r *stubReceiptRepo) DB() *gorm.DB { return nil }

var _ repository.ReceiptRepository = (*stubReceiptRepo)(nil)

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, f repository.StockMovementFilter) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if f.ProductID != nil && m.ProductID != *f.ProductID {
			continue
		}
		out = append(out, m)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubMovementRepo) DeleteAllTx(_ *gorm.DB) error {
	r.movements = nil
	return nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubCache is a JSON round-tripping ReportCache that counts invalidations.
// Entries are keyed "<generation>/<key>".
type stubCache struct {
	gen           int64
	entries       map[string][]byte
	invalidations int
}

func newStubCache() *stubCache { return &stubCache{entries: make(map[string][]byte)} }

func (c *stubCache) Generation(context.Context) (int64, bool) { return c.gen, true }

func (c *stubCache) Get(_ context.Context, gen int64, key string, dest any) bool {
	b, ok := c.entries[fmt.Sprintf("%d/%s", gen, key)]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *stubCache) Set(_ context.Context, gen int64, key string, value any) {
	if b, err := json.Marshal(value); err == nil {
		c.entries[fmt.Sprintf("%d/%s", gen, key)] = b
	}
}

func (c *stubCache) Invalidate(_ context.Context) {
	c.gen++
	c.entries = make(map[string][]byte)
	c.invalidations++
}

// keys lists the cache keys currently held in the live generation.
func (c *stubCache) keys() []string {
	prefix := fmt.Sprintf("%d/", c.gen)
	var out []string
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			out = append(out, strings.TrimPrefix(k, prefix))
		}
	}
	return out
}

var _ service.ReportCache = (*stubCache)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

// fixedNow is mid-afternoon so "yesterday" and "earlier today" are both
// easy to express.
var fixedNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

type ledger struct {
	clock     *clock.MockClock
	cache     *stubCache
	products  *stubProductRepo
	sales     *stubSaleRepo
	expenses  *stubExpenseRepo
	receipts  *stubReceiptRepo
	movements *stubMovementRepo

	inventory service.InventoryService
	productSv service.ProductService
	saleSv    service.SaleService
	receiptSv service.ReceiptService
	expenseSv service.ExpenseService
	reportSv  service.ReportService
}

func newLedger() *ledger {
	l := &ledger{
		clock:     clock.NewMockClock(fixedNow),
		cache:     newStubCache(),
		products:  newStubProductRepo(),
		sales:     &stubSaleRepo{},
		expenses:  &stubExpenseRepo{},
		receipts:  &stubReceiptRepo{},
		movements: &stubMovementRepo{},
	}
	l.inventory = service.NewInventoryService(l.products, l.movements, l.clock)
	l.productSv = service.NewProductService(l.products, l.inventory, l.cache, l.clock)
	l.saleSv = service.NewSaleService(l.sales, l.inventory, l.cache, l.clock)
	l.receiptSv = service.NewReceiptService(l.receipts, l.inventory, l.cache, l.clock, "Test Grocer")
	l.expenseSv = service.NewExpenseService(l.expenses, l.cache, l.clock)
	l.reportSv = service.NewReportService(service.ReportRepositories{
		Products:  l.products,
		Sales:     l.sales,
		Expenses:  l.expenses,
		Receipts:  l.receipts,
		Movements: l.movements,
	}, l.cache, l.clock)
	return l
}

// seedProduct inserts a product directly into the stub store. Each call is
// one second younger than the previous so list order is deterministic.
func (l *ledger) seedProduct(name, cost, price, qty string) model.Product {
	p := model.Product{
		ID:           uuid.New(),
		Name:         name,
		Category:     "fruit",
		CostPrice:    decimal.RequireFromString(cost),
		SellingPrice: decimal.RequireFromString(price),
		Quantity:     decimal.RequireFromString(qty),
		Unit:         "kg",
		CreatedAt:    fixedNow.Add(-time.Hour).Add(time.Duration(len(l.products.products)) * time.Second),
	}
	p.UpdatedAt = p.CreatedAt
	l.products.products[p.ID] = p
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}
