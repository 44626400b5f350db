package router

import (
	"time"

	"greengrocer/internal/clock"
	"greengrocer/internal/config"
	"greengrocer/internal/handler"
	"greengrocer/internal/infra"
	"greengrocer/internal/middleware"
	"greengrocer/internal/repository"
	"greengrocer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// rdb may be nil, in which case reports are always computed from the store.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	clk := clock.NewRealClock()

	var cache service.ReportCache
	if rdb != nil {
		ttl := time.Duration(cfg.ReportCacheTTLSeconds) * time.Second
		cache = infra.NewReportCache(rdb, ttl, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, clk)
	productSvc := service.NewProductService(productRepo, inventorySvc, cache, clk)
	saleSvc := service.NewSaleService(saleRepo, inventorySvc, cache, clk)
	receiptSvc := service.NewReceiptService(receiptRepo, inventorySvc, cache, clk, cfg.StoreName)
	expenseSvc := service.NewExpenseService(expenseRepo, cache, clk)
	reportSvc := service.NewReportService(service.ReportRepositories{
		Products:  productRepo,
		Sales:     saleRepo,
		Expenses:  expenseRepo,
		Receipts:  receiptRepo,
		Movements: movementRepo,
	}, cache, clk)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc, reportSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	receiptsH := handler.NewReceiptsHandler(receiptSvc, reportSvc)
	dashboardH := handler.NewDashboardHandler(reportSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")
	Register(api, Handlers{
		Products:  productsH,
		Sales:     salesH,
		Expenses:  expensesH,
		Receipts:  receiptsH,
		Dashboard: dashboardH,
		Inventory: inventoryH,
	})

	return r
}

// Handlers groups the route targets so tests can mount them on a bare engine.
type Handlers struct {
	Products  *handler.ProductsHandler
	Sales     *handler.SalesHandler
	Expenses  *handler.ExpensesHandler
	Receipts  *handler.ReceiptsHandler
	Dashboard *handler.DashboardHandler
	Inventory *handler.InventoryHandler
}

// Register mounts every ledger route on g.
func Register(g *gin.RouterGroup, h Handlers) {
	products := g.Group("/products")
	{
		products.GET("", h.Products.List)
		products.POST("", h.Products.Create)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
	}

	sales := g.Group("/sales")
	{
		sales.POST("", h.Sales.Create)
		sales.GET("", h.Sales.List)
		sales.GET("/summary", h.Sales.Summary)
	}

	expenses := g.Group("/expenses")
	{
		expenses.POST("", h.Expenses.Create)
		expenses.GET("", h.Expenses.List)
		expenses.DELETE("/:id", h.Expenses.Delete)
	}

	receipts := g.Group("/receipts")
	{
		receipts.GET("", h.Receipts.List)
		receipts.POST("/create", h.Receipts.Create)
		receipts.GET("/summary/totals", h.Receipts.Totals)
		receipts.GET("/:id", h.Receipts.Get)
		receipts.GET("/:id/pdf", h.Receipts.PDF)
	}

	g.GET("/dashboard/stats", h.Dashboard.Stats)
	g.GET("/inventory/movements", h.Inventory.Movements)
	g.DELETE("/reset-all-data", h.Dashboard.ResetAll)
}
