package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"obs_ingestor/internal/catalog"
	"obs_ingestor/internal/collector"
	"obs_ingestor/internal/config"
	"obs_ingestor/internal/domain"
	"obs_ingestor/internal/publisher"
	"obs_ingestor/internal/scheduler"
	"obs_ingestor/internal/service"
	"obs_ingestor/internal/source/httpapi"
	"obs_ingestor/internal/storage"
	"obs_ingestor/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize RabbitMQ publisher
	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	// Storage engine on top of the Postgres metadata index
	metaStore := postgres.NewMetadataStore(db)
	engine := storage.NewEngine(storage.Config{
		BasePath:         cfg.Storage.BasePath,
		CompressionLevel: cfg.Storage.CompressionLevel,
	}, metaStore, logger)

	// One generic HTTP adapter serves every category; provider-specific
	// adapters register over it as they are added.
	httpCollector := httpapi.New(httpapi.Config{
		Timeout:        cfg.Collector.Timeout,
		MaxAttempts:    cfg.Collector.Retry.MaxAttempts,
		InitialBackoff: cfg.Collector.Retry.InitialBackoff,
		MaxBackoff:     cfg.Collector.Retry.MaxBackoff,
	}, logger)

	collectors := collector.NewRegistry()
	for _, category := range []domain.SourceCategory{
		domain.CategorySatellite,
		domain.CategoryGroundSensor,
		domain.CategoryModel,
		domain.CategoryAgricultural,
	} {
		collectors.Register(category, httpCollector)
	}

	sources := catalog.New()

	sched := scheduler.New(scheduler.Config{
		TickInterval:  cfg.Scheduler.TickInterval,
		MaxRetries:    cfg.Scheduler.MaxRetries,
		RetryBackoff:  cfg.Scheduler.RetryBackoff,
		MaxConcurrent: cfg.Scheduler.MaxConcurrent,
	}, sources, collectors, engine, rabbitMQ, logger)

	ingest := service.NewIngestService(sources, collectors, engine, sched, rabbitMQ, logger)

	if err := ingest.InitializeSources(cfg.Sources); err != nil {
		logger.Error("failed to initialize sources", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting observational data ingestor",
		"sources", len(cfg.Sources),
		"tick_interval", cfg.Scheduler.TickInterval,
		"storage_path", cfg.Storage.BasePath,
	)

	if err := ingest.StartIngestion(ctx); err != nil && err != context.Canceled {
		logger.Error("ingestion error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
