package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obs_ingestor/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sourceFor(server *httptest.Server) domain.DataSource {
	return domain.DataSource{
		ID:        "station-1",
		Category:  domain.CategoryGroundSensor,
		Frequency: domain.FrequencyHourly,
		Priority:  5,
		Status:    domain.StatusActive,
		BaseURL:   server.URL,
	}
}

func TestCollectData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/observations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"observations": [
				{
					"id": "obs-1",
					"timestamp": "2026-04-01T09:30:00Z",
					"parameters": {"temperature": 12.5, "humidity": 61},
					"units": {"temperature": "C", "humidity": "%"},
					"latitude": 48.2,
					"longitude": 16.4,
					"quality": "good",
					"payload": {"raw": "line"}
				},
				{
					"timestamp": "not-a-timestamp",
					"parameters": {"temperature": 1}
				}
			]
		}`))
	}))
	defer server.Close()

	c := New(Config{}, testLogger())
	records, err := c.CollectData(context.Background(), sourceFor(server))
	require.NoError(t, err)
	require.Len(t, records, 1) // unparsable timestamp is dropped

	record := records[0]
	assert.Equal(t, "obs-1", record.ID)
	assert.Equal(t, "station-1", record.SourceID)
	assert.Equal(t, time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC), record.ObservedAt)
	assert.Equal(t, 12.5, record.Metadata.Parameters["temperature"])
	require.NotNil(t, record.Metadata.Location)
	assert.Equal(t, 48.2, record.Metadata.Location.Latitude)
	assert.Equal(t, []domain.QualityFlag{domain.QualityGood}, record.QualityFlags)
	assert.False(t, record.IngestedAt.IsZero())
}

func TestCollectData_AssignsIDWhenMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"observations": [{"timestamp": "2026-04-01T09:30:00Z", "parameters": {"t": 1}}]}`))
	}))
	defer server.Close()

	c := New(Config{}, testLogger())
	records, err := c.CollectData(context.Background(), sourceFor(server))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
}

func TestCollectData_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"observations": []}`))
	}))
	defer server.Close()

	c := New(Config{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}, testLogger())
	records, err := c.CollectData(context.Background(), sourceFor(server))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCollectData_ExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(Config{MaxAttempts: 2, InitialBackoff: time.Millisecond}, testLogger())
	_, err := c.CollectData(context.Background(), sourceFor(server))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestValidateConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(Config{}, testLogger())
	assert.True(t, c.ValidateConnection(context.Background(), sourceFor(server)))

	bad := sourceFor(server)
	server.Close()
	assert.False(t, c.ValidateConnection(context.Background(), bad))
}

func TestAvailableParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/parameters", r.URL.Path)
		_, _ = w.Write([]byte(`{"parameters": ["temperature", "humidity"]}`))
	}))
	defer server.Close()

	c := New(Config{}, testLogger())
	params, err := c.AvailableParameters(context.Background(), sourceFor(server))
	require.NoError(t, err)
	assert.Equal(t, []string{"temperature", "humidity"}, params)
}

func TestEstimateVolume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "2048")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(Config{}, testLogger())
	size, err := c.EstimateVolume(context.Background(), sourceFor(server))
	require.NoError(t, err)
	assert.Equal(t, int64(2048), size)
}
