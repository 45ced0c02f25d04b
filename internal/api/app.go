package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderhub/config"
	"orderhub/internal/api/handlers"
	"orderhub/internal/domain/order"
	"orderhub/internal/external/kafka"
	"orderhub/internal/external/opensearch"
	"orderhub/internal/external/ubereats"
	"orderhub/internal/messaging"
	"orderhub/internal/pipeline"
	didifood_adapter "orderhub/internal/platform/didifood"
	rappi_adapter "orderhub/internal/platform/rappi"
	ubereats_adapter "orderhub/internal/platform/ubereats"
	order_repo "orderhub/internal/repo/order"
	"orderhub/pkg/health"
	"orderhub/pkg/logger"
	"orderhub/pkg/postgres"

	"golang.org/x/sync/errgroup"
)

//go:embed migrations/*.sql
var MIGRATION_FS embed.FS

const shutdownTimeout = 10 * time.Second

func Run(cfg config.Config) {
	l := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.LogFormat == "console",
	})

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := NewGinEngine(l)

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("api - Run - postgres.New: %w", err))
	}
	defer pool.Close()

	if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
		l.Fatal(fmt.Errorf("api - Run - ApplyMigrations: %w", err))
	}

	orderStore := order_repo.NewPgOrderRepo(pool)

	// Uber Eats outbound clients share one capped HTTP client so a stalled
	// platform cannot hold a pipeline task indefinitely.
	uberHTTP := &http.Client{Timeout: cfg.HTTPUberEatsTimeout}
	broker := ubereats.NewCredentialBroker(cfg.UberEatsTokenURL, cfg.UberEatsClientID, cfg.UberEatsClientSecret, uberHTTP)
	fetcher := ubereats.NewClient(uberHTTP)

	adapters := pipeline.Adapters{
		UberEats: ubereats_adapter.NewAdapter(),
		Rappi:    rappi_adapter.NewAdapter(),
		DidiFood: didifood_adapter.NewAdapter(),
	}

	var publisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
		defer publisher.Close()
	}

	var auditSink *opensearch.AuditSink
	if len(cfg.OpensearchURLs) > 0 {
		auditSink, err = opensearch.NewAuditSink(ctx, cfg.OpensearchURLs, cfg.OpensearchIndexOrders)
		if err != nil {
			l.Fatal(fmt.Errorf("api - Run - opensearch.NewAuditSink: %w", err))
		}
	}

	ingestion := pipeline.New(
		orderStore,
		broker,
		fetcher,
		adapters,
		publisherOrNil(publisher),
		auditSinkOrNil(auditSink),
		l,
	)

	webhookHandler := handlers.NewWebhookHandler(ingestion)
	orderHandler := handlers.NewOrderHandler(orderStore)

	healthRegistry := health.NewRegistry(health.NewPostgresChecker(pool.Pool))

	router := NewRouter(webhookHandler, orderHandler, healthRegistry)
	router.SetUp(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("Starting HTTP server: port=%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down gracefully...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		l.Error("Server error: %v", err)
	}
}

// publisherOrNil keeps a nil *kafka.Publisher from becoming a non-nil
// messaging.Publisher interface value.
func publisherOrNil(p *kafka.Publisher) messaging.Publisher {
	if p == nil {
		return nil
	}
	return p
}

func auditSinkOrNil(s *opensearch.AuditSink) order.AuditSink {
	if s == nil {
		return nil
	}
	return s
}
