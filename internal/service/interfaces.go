package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"obs_ingestor/internal/collector"
	"obs_ingestor/internal/domain"
	"obs_ingestor/internal/scheduler"
	"obs_ingestor/internal/storage"
)

type SourceCatalog interface {
	Register(source domain.DataSource)
	Get(id string) (domain.DataSource, bool)
	ListActive() []domain.DataSource
	SetStatus(id string, status domain.SourceStatus) error
	MarkIngested(id string, at time.Time) error
}

type CollectorRegistry interface {
	Resolve(category domain.SourceCategory) (collector.Collector, error)
	Validate(categories []domain.SourceCategory) error
}

type Storage interface {
	StoreBatch(ctx context.Context, records []domain.RawDataRecord) ([]domain.DataFileMetadata, error)
	Records(ctx context.Context, q storage.Query) ([]domain.RawDataRecord, error)
	Stats(ctx context.Context) (domain.StorageStats, error)
}

type TaskScheduler interface {
	InitTasks(sources []domain.DataSource)
	Start(ctx context.Context) error
	Stats() scheduler.Stats
	Tasks() []domain.ScheduledTask
}

type Publisher interface {
	PublishBatchStored(ctx context.Context, meta domain.DataFileMetadata) error
	Close() error
}
