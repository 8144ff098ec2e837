package scheduler

import (
	"context"
	"time"

	"obs_ingestor/internal/domain"
)

// RecordStore receives collected records for durable batch storage.
type RecordStore interface {
	StoreBatch(ctx context.Context, records []domain.RawDataRecord) ([]domain.DataFileMetadata, error)
}

// SourceCatalog is the view of the source registry the scheduler needs.
type SourceCatalog interface {
	Get(id string) (domain.DataSource, bool)
	SetStatus(id string, status domain.SourceStatus) error
	MarkIngested(id string, at time.Time) error
}

// EventPublisher announces successfully stored batches to downstream
// consumers. Optional; publish failures never fail the task.
type EventPublisher interface {
	PublishBatchStored(ctx context.Context, meta domain.DataFileMetadata) error
}
