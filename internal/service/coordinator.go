// Package service wires the catalog, collector registry, scheduler, and
// storage engine into the operations consumed by the API layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"obs_ingestor/internal/domain"
	"obs_ingestor/internal/scheduler"
	"obs_ingestor/internal/storage"
)

// IngestService is the ingestion coordinator.
type IngestService struct {
	catalog    SourceCatalog
	collectors CollectorRegistry
	storage    Storage
	scheduler  TaskScheduler
	publisher  Publisher
	logger     *slog.Logger
}

func NewIngestService(
	catalog SourceCatalog,
	collectors CollectorRegistry,
	store Storage,
	sched TaskScheduler,
	publisher Publisher,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		catalog:    catalog,
		collectors: collectors,
		storage:    store,
		scheduler:  sched,
		publisher:  publisher,
		logger:     logger.With("component", "ingest"),
	}
}

// RegisterSource validates and registers one source. A category without a
// registered collector is rejected immediately rather than being silently
// skipped later.
func (s *IngestService) RegisterSource(source domain.DataSource) error {
	if source.ID == "" {
		return &domain.ConfigurationError{Detail: "source id must not be empty"}
	}
	if source.Priority < 1 || source.Priority > 10 {
		return &domain.ConfigurationError{
			Detail: fmt.Sprintf("source %s priority %d outside 1..10", source.ID, source.Priority),
		}
	}
	if err := s.collectors.Validate([]domain.SourceCategory{source.Category}); err != nil {
		return err
	}
	if source.Status == "" {
		source.Status = domain.StatusActive
	}

	s.catalog.Register(source)
	s.logger.Info("source registered",
		"source", source.ID,
		"category", source.Category,
		"frequency", source.Frequency,
		"priority", source.Priority,
	)
	return nil
}

// InitializeSources bulk-registers sources from an external catalog.
func (s *IngestService) InitializeSources(sources []domain.DataSource) error {
	for _, source := range sources {
		if err := s.RegisterSource(source); err != nil {
			return fmt.Errorf("initialize source %s: %w", source.ID, err)
		}
	}
	s.logger.Info("sources initialized", "count", len(sources))
	return nil
}

// StartIngestion builds one task per active source and runs the scheduler
// until the context is cancelled. Startup fails if any active source's
// category has no collector.
func (s *IngestService) StartIngestion(ctx context.Context) error {
	active := s.catalog.ListActive()

	categories := make([]domain.SourceCategory, 0, len(active))
	for _, source := range active {
		categories = append(categories, source.Category)
	}
	if err := s.collectors.Validate(categories); err != nil {
		return fmt.Errorf("start ingestion: %w", err)
	}

	s.scheduler.InitTasks(active)
	s.logger.Info("ingestion started", "sources", len(active))

	return s.scheduler.Start(ctx)
}

// CollectFromSource performs one synchronous on-demand collection for a
// source, bypassing the schedule. Errors surface directly to the caller.
func (s *IngestService) CollectFromSource(ctx context.Context, sourceID string) ([]domain.RawDataRecord, error) {
	source, ok := s.catalog.Get(sourceID)
	if !ok {
		return nil, fmt.Errorf("collect from %s: %w", sourceID, domain.ErrSourceNotFound)
	}

	c, err := s.collectors.Resolve(source.Category)
	if err != nil {
		return nil, err
	}

	records, err := c.CollectData(ctx, source)
	if err != nil {
		return nil, &domain.CollectorError{SourceID: sourceID, Err: err}
	}

	metas, err := s.storage.StoreBatch(ctx, records)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		for _, meta := range metas {
			if err := s.publisher.PublishBatchStored(ctx, meta); err != nil {
				s.logger.Warn("publish batch event failed", "file", meta.FileID, "error", err)
			}
		}
	}

	if err := s.catalog.MarkIngested(sourceID, time.Now().UTC()); err != nil {
		s.logger.Warn("marking ingestion time failed", "source", sourceID, "error", err)
	}

	s.logger.Info("manual collection completed",
		"source", sourceID,
		"records", len(records),
		"batches", len(metas),
	)
	return records, nil
}

// Records answers a range/parameter query against stored data.
func (s *IngestService) Records(ctx context.Context, q storage.Query) ([]domain.RawDataRecord, error) {
	return s.storage.Records(ctx, q)
}

// StorageStats returns the aggregate view over all stored batches.
func (s *IngestService) StorageStats(ctx context.Context) (domain.StorageStats, error) {
	return s.storage.Stats(ctx)
}

// SchedulerStats returns the aggregate background-ingestion counters.
func (s *IngestService) SchedulerStats() scheduler.Stats {
	return s.scheduler.Stats()
}

// Tasks exposes a snapshot of the task table.
func (s *IngestService) Tasks() []domain.ScheduledTask {
	return s.scheduler.Tasks()
}
