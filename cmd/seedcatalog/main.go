// Command seedcatalog loads a demo produce catalog into an empty store.
// Usage: go run ./cmd/seedcatalog
package main

import (
	"context"
	"os"
	"time"

	"greengrocer/internal/clock"
	"greengrocer/internal/config"
	"greengrocer/internal/dto"
	"greengrocer/internal/infra"
	"greengrocer/internal/repository"
	"greengrocer/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var demoCatalog = []dto.CreateProductRequest{
	{Name: "Apple", Category: "fruit", CostPrice: decimal.RequireFromString("1.20"), SellingPrice: decimal.RequireFromString("2.50"), Quantity: decimal.NewFromInt(40), Unit: "kg"},
	{Name: "Banana", Category: "fruit", CostPrice: decimal.RequireFromString("0.90"), SellingPrice: decimal.RequireFromString("1.80"), Quantity: decimal.NewFromInt(35), Unit: "kg"},
	{Name: "Orange", Category: "fruit", CostPrice: decimal.RequireFromString("1.10"), SellingPrice: decimal.RequireFromString("2.20"), Quantity: decimal.NewFromInt(3), Unit: "kg"},
	{Name: "Tomato", Category: "vegetable", CostPrice: decimal.RequireFromString("1.50"), SellingPrice: decimal.RequireFromString("3.00"), Quantity: decimal.NewFromInt(25), Unit: "kg"},
	{Name: "Lettuce", Category: "vegetable", CostPrice: decimal.RequireFromString("0.60"), SellingPrice: decimal.RequireFromString("1.40"), Quantity: decimal.NewFromInt(12), Unit: "piece"},
	{Name: "Carrot", Category: "vegetable", CostPrice: decimal.RequireFromString("0.70"), SellingPrice: decimal.RequireFromString("1.50"), Quantity: decimal.RequireFromString("2.5"), Unit: "kg"},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	dsn, err := cfg.DatabaseDSN()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}
	db, err := infra.NewDatabase(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx := context.Background()
	products := repository.NewProductRepository(db)
	n, err := products.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("count products")
	}
	if n > 0 {
		log.Info().Int64("products", n).Msg("catalog not empty, nothing to seed")
		return
	}

	clk := clock.NewRealClock()
	inventory := service.NewInventoryService(products, repository.NewStockMovementRepository(db), clk)
	svc := service.NewProductService(products, inventory, nil, clk)
	for _, req := range demoCatalog {
		p, err := svc.Create(ctx, req)
		if err != nil {
			log.Fatal().Err(err).Str("product", req.Name).Msg("seed failed")
		}
		log.Info().Str("id", p.ID).Str("product", p.Name).Msg("seeded")
	}
}
