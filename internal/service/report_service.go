package service

import (
	"context"
	"fmt"
	"time"

	"greengrocer/internal/clock"
	"greengrocer/internal/dto"
	"greengrocer/internal/model"
	"greengrocer/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Report periods. Anything else is reported over the daily window.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

const (
	dashboardListSize = 5

	cacheKeyDashboard     = "dashboard"
	cacheKeyReceiptTotals = "receipts:totals"
	cacheKeySummary       = "summary"
)

type ReportService interface {
	Summary(ctx context.Context, period string) (*dto.SummaryResponse, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	ReceiptTotals(ctx context.Context) (*dto.ReceiptTotalsResponse, error)
	// ResetAll wipes products, sales, expenses, receipts and stock movements.
	ResetAll(ctx context.Context) (*dto.ResetResponse, error)
}

// ReportRepositories groups the stores the aggregator reads.
type ReportRepositories struct {
	Products  repository.ProductRepository
	Sales     repository.SaleRepository
	Expenses  repository.ExpenseRepository
	Receipts  repository.ReceiptRepository
	Movements repository.StockMovementRepository
}

type reportService struct {
	repos ReportRepositories
	cache ReportCache
	clock clock.Clock
}

func NewReportService(repos ReportRepositories, cache ReportCache, clk clock.Clock) ReportService {
	return &reportService{repos: repos, cache: cacheOrNoop(cache), clock: clk}
}

// startOfDay truncates t to 00:00:00 UTC.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// canonicalPeriod folds unknown periods into daily.
func canonicalPeriod(period string) string {
	switch period {
	case PeriodWeekly, PeriodMonthly:
		return period
	default:
		return PeriodDaily
	}
}

// windowStart returns the inclusive lower bound for a summary period.
// Weekly and monthly are rolling windows, not calendar-aligned.
func windowStart(period string, now time.Time) time.Time {
	switch canonicalPeriod(period) {
	case PeriodWeekly:
		return now.UTC().AddDate(0, 0, -7)
	case PeriodMonthly:
		return now.UTC().AddDate(0, 0, -30)
	default:
		return startOfDay(now)
	}
}

// dayKey scopes a cache key to the UTC day, so snapshots holding "today"
// figures are never served after midnight.
func dayKey(key string, now time.Time) string {
	return key + ":" + now.UTC().Format("20060102")
}

func (s *reportService) Summary(ctx context.Context, period string) (*dto.SummaryResponse, error) {
	if period == "" {
		period = PeriodDaily
	}
	now := s.clock.Now()
	key := dayKey(cacheKeySummary+":"+canonicalPeriod(period), now)

	resp, err := readThrough(ctx, s.cache, key, func() (*dto.SummaryResponse, error) {
		since := windowStart(period, now)
		sales, err := s.repos.Sales.TotalsSince(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("sum sales: %w", err)
		}
		expenses, err := s.repos.Expenses.TotalsSince(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("sum expenses: %w", err)
		}
		return &dto.SummaryResponse{
			TotalRevenue:       sales.Revenue.Round(2),
			TotalProfit:        sales.Profit.Round(2),
			TotalExpenses:      expenses.Amount.Round(2),
			NetProfit:          sales.Profit.Sub(expenses.Amount).Round(2),
			TotalSalesCount:    sales.Count,
			TotalExpensesCount: expenses.Count,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	// Unknown periods share the daily snapshot but echo what was asked for.
	resp.Period = period
	return resp, nil
}

func (s *reportService) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := s.clock.Now()
	return readThrough(ctx, s.cache, dayKey(cacheKeyDashboard, now), func() (*dto.DashboardStatsResponse, error) {
		totalProducts, err := s.repos.Products.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count products: %w", err)
		}
		lowStock, lowStockCount, err := s.repos.Products.ListLowStock(ctx, model.LowStockThreshold, dashboardListSize)
		if err != nil {
			return nil, fmt.Errorf("list low stock: %w", err)
		}
		today, err := s.repos.Sales.TotalsSince(ctx, startOfDay(now))
		if err != nil {
			return nil, fmt.Errorf("sum today's sales: %w", err)
		}
		recent, err := s.repos.Sales.List(ctx, dashboardListSize)
		if err != nil {
			return nil, fmt.Errorf("list recent sales: %w", err)
		}

		resp := &dto.DashboardStatsResponse{
			TotalProducts:    totalProducts,
			LowStockCount:    lowStockCount,
			LowStockProducts: make([]dto.ProductResponse, 0, len(lowStock)),
			TodayRevenue:     today.Revenue.Round(2),
			TodayProfit:      today.Profit.Round(2),
			TodaySalesCount:  today.Count,
			RecentSales:      make([]dto.SaleResponse, 0, len(recent)),
		}
		for i := range lowStock {
			resp.LowStockProducts = append(resp.LowStockProducts, productToResponse(&lowStock[i]))
		}
		for i := range recent {
			resp.RecentSales = append(resp.RecentSales, saleToResponse(&recent[i]))
		}
		return resp, nil
	})
}

func (s *reportService) ReceiptTotals(ctx context.Context) (*dto.ReceiptTotalsResponse, error) {
	now := s.clock.Now()
	return readThrough(ctx, s.cache, dayKey(cacheKeyReceiptTotals, now), func() (*dto.ReceiptTotalsResponse, error) {
		all, err := s.repos.Receipts.Totals(ctx, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("sum receipts: %w", err)
		}
		today, err := s.repos.Receipts.Totals(ctx, startOfDay(now))
		if err != nil {
			return nil, fmt.Errorf("sum today's receipts: %w", err)
		}
		return &dto.ReceiptTotalsResponse{
			TotalReceipts: all.Count,
			TotalAmount:   all.Amount.Round(2),
			TotalProfit:   all.Profit.Round(2),
			TodayReceipts: today.Count,
			TodayTotal:    today.Amount.Round(2),
		}, nil
	})
}

func (s *reportService) ResetAll(ctx context.Context) (*dto.ResetResponse, error) {
	err := runTx(ctx, s.repos.Products.DB(), func(tx *gorm.DB) error {
		if err := s.repos.Products.DeleteAllTx(tx); err != nil {
			return fmt.Errorf("delete products: %w", err)
		}
		if err := s.repos.Sales.DeleteAllTx(tx); err != nil {
			return fmt.Errorf("delete sales: %w", err)
		}
		if err := s.repos.Expenses.DeleteAllTx(tx); err != nil {
			return fmt.Errorf("delete expenses: %w", err)
		}
		if err := s.repos.Receipts.DeleteAllTx(tx); err != nil {
			return fmt.Errorf("delete receipts: %w", err)
		}
		if err := s.repos.Movements.DeleteAllTx(tx); err != nil {
			return fmt.Errorf("delete stock movements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reset ledger: %w", err)
	}

	s.cache.Invalidate(ctx)
	log.Warn().Msg("ledger reset: all products, sales, expenses and receipts deleted")

	return &dto.ResetResponse{
		Message:         "All data has been reset successfully",
		ProductsDeleted: true,
		SalesDeleted:    true,
		ExpensesDeleted: true,
		ReceiptsDeleted: true,
	}, nil
}
