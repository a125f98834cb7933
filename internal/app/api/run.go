package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	orderhttp "github.com/Apurer/order-board/internal/domains/orders/adapters/http"
	ordersmemory "github.com/Apurer/order-board/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/order-board/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/order-board/internal/domains/orders/adapters/persistence/postgres"
	ordersseed "github.com/Apurer/order-board/internal/domains/orders/adapters/seed"
	ordersworkflows "github.com/Apurer/order-board/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/order-board/internal/domains/orders/application"
	ordersports "github.com/Apurer/order-board/internal/domains/orders/ports"
	"github.com/Apurer/order-board/internal/domains/orders/query"
	"github.com/Apurer/order-board/internal/domains/orders/selection"
	"github.com/Apurer/order-board/internal/platform/migrations"
	platformobservability "github.com/Apurer/order-board/internal/platform/observability"
	platformpostgres "github.com/Apurer/order-board/internal/platform/postgres"
)

const serviceName = "order-board-api"

// Run boots the order board HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, cleanupRepo, err := OpenRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepo()

	committer, closeCommitter := newStatusCommitter(cfg, repo, instruments, logger)
	defer closeCommitter()

	coreService := ordersapp.NewService(
		repo,
		ordersapp.WithEngine(query.NewEngine(query.WithLocale(cfg.LocaleTag()))),
		ordersapp.WithWorkflow(selection.NewWorkflow(selection.WithLastUpdatedPolicy(cfg.LastUpdatedPolicy()))),
		ordersapp.WithStatusCommitter(committer),
	)
	boardService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := orderhttp.NewRouter(orderhttp.NewOrdersAPI(boardService), otelgin.Middleware(serviceName))
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("order board API listening", slog.String("addr", server.Addr), slog.String("policy", string(cfg.LastUpdatedPolicy())))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("order board API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("order board API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// OpenRepository returns the PostgreSQL repository when POSTGRES_DSN is reachable and
// the in-memory one otherwise. An empty store is seeded from ORDERS_SEED_FILE or the
// built-in collection.
func OpenRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func(), error) {
	var (
		repo    ordersports.Repository
		cleanup = func() {}
	)
	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("failed to migrate order schema: %w", err)
		}
		repo, cleanup = orderspostgres.NewRepository(db), closeDB
		logger.Info("order repository configured with postgres")
	} else {
		repo = ordersmemory.NewRepository()
	}

	if err := seedIfEmpty(ctx, repo, cfg.SeedFile, logger); err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}

// SharedRepository reports whether repo is visible to other processes. A Temporal
// worker can only persist commits the API reads back through a shared repository.
func SharedRepository(repo ordersports.Repository) bool {
	_, ok := repo.(*orderspostgres.Repository)
	return ok
}

// newStatusCommitter routes commits through Temporal when the repository is shared
// with the worker and Temporal is reachable, and applies them inline otherwise.
func newStatusCommitter(cfg Config, repo ordersports.Repository, instruments *platformobservability.Instruments, logger *slog.Logger) (ordersports.StatusCommitter, func()) {
	inline := ordersapp.NewInlineCommitter(repo)
	if !SharedRepository(repo) {
		logger.Info("order repository is process-local, committing status changes inline")
		return inline, func() {}
	}
	temporalClient, err := DialTemporal(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, committing status changes inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return ordersworkflows.NewTemporalStatusCommitter(temporalClient), temporalClient.Close
}

func seedIfEmpty(ctx context.Context, repo ordersports.Repository, seedFile string, logger *slog.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect order repository: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("order repository already populated, skipping seed", slog.Int("orders", len(existing)))
		return nil
	}
	orders, err := ordersseed.LoadFileOrDefault(seedFile)
	if err != nil {
		return fmt.Errorf("failed to load order seed: %w", err)
	}
	n, err := ordersseed.Apply(ctx, repo, orders)
	if err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}
	logger.Info("order repository seeded", slog.Int("orders", n), slog.String("source", seedSource(seedFile)))
	return nil
}

func seedSource(seedFile string) string {
	if seedFile == "" {
		return "built-in"
	}
	return seedFile
}

// DialTemporal connects to Temporal with tracing and structured logging, unless disabled.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
