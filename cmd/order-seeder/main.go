package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/Apurer/order-board/internal/app/api"
	orderspostgres "github.com/Apurer/order-board/internal/domains/orders/adapters/persistence/postgres"
	ordersseed "github.com/Apurer/order-board/internal/domains/orders/adapters/seed"
	"github.com/Apurer/order-board/internal/platform/migrations"
	platformobservability "github.com/Apurer/order-board/internal/platform/observability"
	platformpostgres "github.com/Apurer/order-board/internal/platform/postgres"
)

func main() {
	file := flag.String("file", "", "seed file to load (defaults to ORDERS_SEED_FILE, then the built-in orders)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := platformobservability.NewLogger(nil, cfg.LogLevel)

	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot seed orders")
	}
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate order schema: %v", err)
	}

	path := cfg.SeedFile
	if *file != "" {
		path = *file
	}
	orders, err := ordersseed.LoadFileOrDefault(path)
	if err != nil {
		log.Fatalf("failed to load seed: %v", err)
	}
	n, err := ordersseed.Apply(ctx, orderspostgres.NewRepository(db), orders)
	if err != nil {
		log.Fatalf("failed to seed orders after %d records: %v", n, err)
	}
	logger.Info("order seed completed", slog.Int("orders", n))
}
