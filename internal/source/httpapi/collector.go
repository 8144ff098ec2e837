// Package httpapi is a generic collector for providers exposing a JSON
// observation feed over HTTP. Provider-specific wire formats get their own
// adapters; this one covers the common REST shape.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"obs_ingestor/internal/domain"
)

// Config holds the adapter's network settings.
type Config struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Collector fetches observations from a provider's HTTP API. The client
// timeout is the adapter's own watchdog; the scheduler imposes none.
type Collector struct {
	httpClient     *http.Client
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Collector {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	return &Collector{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("collector", "httpapi"),
	}
}

// CollectData fetches the provider's current observation feed and transforms
// it into raw records. Safe to call repeatedly; duplicates are tolerated
// downstream.
func (c *Collector) CollectData(ctx context.Context, source domain.DataSource) ([]domain.RawDataRecord, error) {
	resp, err := c.fetchWithRetry(ctx, source.BaseURL+"/observations")
	if err != nil {
		return nil, err
	}
	return c.transform(source, resp.Observations), nil
}

// ValidateConnection probes the provider's feed endpoint.
func (c *Collector) ValidateConnection(ctx context.Context, source domain.DataSource) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, source.BaseURL+"/observations", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}

// AvailableParameters asks the provider which parameters it serves.
func (c *Collector) AvailableParameters(ctx context.Context, source domain.DataSource) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.BaseURL+"/parameters", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var parsed parametersResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parsed.Parameters, nil
}

// EstimateVolume reports the provider's feed size as a capacity-planning
// hint, not a guarantee.
func (c *Collector) EstimateVolume(ctx context.Context, source domain.DataSource) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, source.BaseURL+"/observations", nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.ContentLength >= 0 {
		return resp.ContentLength, nil
	}
	return 0, nil
}

func (c *Collector) fetchWithRetry(ctx context.Context, url string) (*apiResponse, error) {
	var resp *apiResponse
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err = c.doRequest(ctx, url)
		if err == nil {
			return resp, nil
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Collector) doRequest(ctx context.Context, url string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ObsIngestor/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &parsed, nil
}

func (c *Collector) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func (c *Collector) transform(source domain.DataSource, observations []observation) []domain.RawDataRecord {
	now := time.Now().UTC()
	records := make([]domain.RawDataRecord, 0, len(observations))

	for _, obs := range observations {
		observedAt, err := time.Parse(time.RFC3339, obs.Timestamp)
		if err != nil {
			c.logger.Warn("failed to parse timestamp",
				"source", source.ID,
				"timestamp", obs.Timestamp,
			)
			continue
		}

		record := domain.RawDataRecord{
			ID:         obs.ID,
			SourceID:   source.ID,
			ObservedAt: observedAt,
			IngestedAt: now,
			Payload:    obs.Payload,
			Metadata: domain.RecordMetadata{
				Parameters: obs.Parameters,
				Units:      obs.Units,
				Elevation:  obs.Elevation,
				Instrument: obs.Instrument,
			},
		}
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if obs.Latitude != nil && obs.Longitude != nil {
			record.Metadata.Location = &domain.Coordinates{
				Latitude:  *obs.Latitude,
				Longitude: *obs.Longitude,
			}
		}
		if flag := qualityFlag(obs.Quality); flag != "" {
			record.QualityFlags = []domain.QualityFlag{flag}
		}

		records = append(records, record)
	}

	return records
}

func qualityFlag(quality string) domain.QualityFlag {
	switch quality {
	case "good":
		return domain.QualityGood
	case "suspect":
		return domain.QualitySuspect
	case "estimated":
		return domain.QualityEstimated
	case "missing":
		return domain.QualityMissing
	default:
		return ""
	}
}
