// Package collector defines the boundary contract between the ingestion
// core and provider-specific adapters.
package collector

import (
	"context"

	"obs_ingestor/internal/domain"
)

// Collector is implemented by one adapter per source category. Adapters own
// their network access and call timeouts. CollectData must be safe to call
// repeatedly; duplicate records across calls are tolerated downstream.
type Collector interface {
	CollectData(ctx context.Context, source domain.DataSource) ([]domain.RawDataRecord, error)
	ValidateConnection(ctx context.Context, source domain.DataSource) bool
	AvailableParameters(ctx context.Context, source domain.DataSource) ([]string, error)
	EstimateVolume(ctx context.Context, source domain.DataSource) (int64, error)
}
