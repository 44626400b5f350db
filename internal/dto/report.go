package dto

import "github.com/shopspring/decimal"

// SummaryFilter is bound from the query string of GET /sales/summary.
type SummaryFilter struct {
	Period string `form:"period,default=daily"`
}

type SummaryResponse struct {
	Period             string          `json:"period"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetProfit          decimal.Decimal `json:"net_profit"`
	TotalSalesCount    int64           `json:"total_sales_count"`
	TotalExpensesCount int64           `json:"total_expenses_count"`
}

type DashboardStatsResponse struct {
	TotalProducts    int64             `json:"total_products"`
	LowStockCount    int64             `json:"low_stock_count"`
	LowStockProducts []ProductResponse `json:"low_stock_products"`
	TodayRevenue     decimal.Decimal   `json:"today_revenue"`
	TodayProfit      decimal.Decimal   `json:"today_profit"`
	TodaySalesCount  int64             `json:"today_sales_count"`
	RecentSales      []SaleResponse    `json:"recent_sales"`
}

type ResetResponse struct {
	Message         string `json:"message"`
	ProductsDeleted bool   `json:"products_deleted"`
	SalesDeleted    bool   `json:"sales_deleted"`
	ExpensesDeleted bool   `json:"expenses_deleted"`
	ReceiptsDeleted bool   `json:"receipts_deleted"`
}
