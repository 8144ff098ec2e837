package storage

import (
	"context"
	"time"

	"obs_ingestor/internal/domain"
)

// FileQuery is the coarse batch-level filter applied to the metadata index.
// Zero values mean "unfiltered". It only prunes candidate files; exact
// filtering always happens per record.
type FileQuery struct {
	SourceID   string
	Start      time.Time
	End        time.Time
	Parameters []string
}

// MetadataStore persists the batch metadata and per-record index. Index rows
// are written only after the backing blob exists, in one transaction.
type MetadataStore interface {
	InsertBatch(ctx context.Context, meta domain.DataFileMetadata, entries []domain.RecordIndexEntry) error
	FindFiles(ctx context.Context, q FileQuery) ([]domain.DataFileMetadata, error)
	Stats(ctx context.Context) (domain.StorageStats, error)
}
