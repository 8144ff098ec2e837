package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obs_ingestor/internal/catalog"
	"obs_ingestor/internal/collector"
	"obs_ingestor/internal/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type fakeCollector struct {
	mu      sync.Mutex
	calls   int
	err     error
	records []domain.RawDataRecord
	block   chan struct{} // if set, CollectData waits until closed
}

func (c *fakeCollector) CollectData(ctx context.Context, source domain.DataSource) ([]domain.RawDataRecord, error) {
	c.mu.Lock()
	c.calls++
	block := c.block
	c.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.records, nil
}

func (c *fakeCollector) ValidateConnection(context.Context, domain.DataSource) bool { return true }

func (c *fakeCollector) AvailableParameters(context.Context, domain.DataSource) ([]string, error) {
	return []string{"temperature"}, nil
}

func (c *fakeCollector) EstimateVolume(context.Context, domain.DataSource) (int64, error) {
	return 1024, nil
}

func (c *fakeCollector) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fakeStore struct {
	mu       sync.Mutex
	batches  [][]domain.RawDataRecord
	active   int
	overlap  bool
	storeErr error
}

func (s *fakeStore) StoreBatch(_ context.Context, records []domain.RawDataRecord) ([]domain.DataFileMetadata, error) {
	s.mu.Lock()
	s.active++
	if s.active > 1 {
		s.overlap = true
	}
	s.mu.Unlock()

	time.Sleep(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active--

	if s.storeErr != nil {
		return nil, s.storeErr
	}
	s.batches = append(s.batches, records)
	if len(records) == 0 {
		return nil, nil
	}
	return []domain.DataFileMetadata{{
		FileID:      "file-1",
		SourceID:    records[0].SourceID,
		RecordCount: len(records),
	}}, nil
}

func (s *fakeStore) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.DataFileMetadata
	err    error
}

func (p *fakePublisher) PublishBatchStored(_ context.Context, meta domain.DataFileMetadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, meta)
	return nil
}

func activeSource(id string, frequency domain.UpdateFrequency) domain.DataSource {
	return domain.DataSource{
		ID:        id,
		Name:      "Source " + id,
		Category:  domain.CategoryGroundSensor,
		Provider:  "test",
		Frequency: frequency,
		Priority:  5,
		Status:    domain.StatusActive,
	}
}

func sampleRecords(sourceID string, at time.Time) []domain.RawDataRecord {
	return []domain.RawDataRecord{{
		ID:         sourceID + "-rec",
		SourceID:   sourceID,
		ObservedAt: at,
		Metadata: domain.RecordMetadata{
			Parameters: map[string]float64{"temperature": 11.5},
		},
	}}
}

type fixture struct {
	clock     *fakeClock
	catalog   *catalog.Catalog
	registry  *collector.Registry
	store     *fakeStore
	publisher *fakePublisher
	sched     *Scheduler
}

func newFixture(t *testing.T, cfg Config, sources ...domain.DataSource) (*fixture, *fakeCollector) {
	t.Helper()

	f := &fixture{
		clock:     &fakeClock{t: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
		catalog:   catalog.New(),
		registry:  collector.NewRegistry(),
		store:     &fakeStore{},
		publisher: &fakePublisher{},
	}

	fake := &fakeCollector{}
	f.registry.Register(domain.CategoryGroundSensor, fake)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	f.sched = New(cfg, f.catalog, f.registry, f.store, f.publisher, logger)
	f.sched.nowFn = f.clock.now

	for _, source := range sources {
		f.catalog.Register(source)
	}
	f.sched.InitTasks(f.catalog.ListActive())

	return f, fake
}

func TestTick_HourlySourceScenario(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f, fake := newFixture(t, Config{}, activeSource("s1", domain.FrequencyHourly))
	fake.records = sampleRecords("s1", t0)

	// T0+5min: not due yet.
	f.clock.set(t0.Add(5 * time.Minute))
	assert.Equal(t, 0, f.sched.Tick(context.Background(), f.clock.now()))
	f.sched.Wait()
	assert.Equal(t, 0, fake.callCount())

	// T0+61min: due, exactly one collection.
	execTime := t0.Add(61 * time.Minute)
	f.clock.set(execTime)
	assert.Equal(t, 1, f.sched.Tick(context.Background(), f.clock.now()))
	f.sched.Wait()

	assert.Equal(t, 1, fake.callCount())
	assert.Equal(t, 1, f.store.batchCount())

	task, ok := f.sched.Task("s1")
	require.True(t, ok)
	assert.Equal(t, domain.TaskScheduled, task.Status)
	assert.Equal(t, 0, task.RetryCount)
	assert.True(t, task.LastSuccess.Equal(execTime))
	assert.True(t, task.NextExecution.Equal(execTime.Add(time.Hour)),
		"next execution must be completion-relative: got %v", task.NextExecution)

	source, _ := f.catalog.Get("s1")
	assert.True(t, source.LastIngestionAt.Equal(execTime))

	stats := f.sched.Stats()
	assert.Equal(t, int64(1), stats.SuccessfulTasks)
	assert.Equal(t, int64(0), stats.FailedTasks)
}

func TestTick_RetryBoundAndExhaustion(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	cfg := Config{MaxRetries: 3, RetryBackoff: 5 * time.Minute}
	f, fake := newFixture(t, cfg, activeSource("s1", domain.FrequencyHourly))
	fake.err = errors.New("provider down")

	now := t0.Add(time.Hour)

	// First failure: transitions to Retrying with the fixed backoff.
	f.clock.set(now)
	require.Equal(t, 1, f.sched.Tick(context.Background(), now))
	f.sched.Wait()

	task, _ := f.sched.Task("s1")
	assert.Equal(t, domain.TaskRetrying, task.Status)
	assert.Equal(t, 1, task.RetryCount)
	assert.True(t, task.NextExecution.Equal(now.Add(5*time.Minute)))
	assert.Contains(t, task.LastError, "provider down")
	assert.Equal(t, int64(0), f.sched.Stats().FailedTasks,
		"a task still being retried is not a failed task")

	// Second failure.
	now = task.NextExecution
	f.clock.set(now)
	require.Equal(t, 1, f.sched.Tick(context.Background(), now))
	f.sched.Wait()

	task, _ = f.sched.Task("s1")
	assert.Equal(t, domain.TaskRetrying, task.Status)
	assert.Equal(t, 2, task.RetryCount)

	// Third failure exhausts retries: Failed and never rescheduled.
	now = task.NextExecution
	f.clock.set(now)
	require.Equal(t, 1, f.sched.Tick(context.Background(), now))
	f.sched.Wait()

	task, _ = f.sched.Task("s1")
	assert.Equal(t, domain.TaskFailed, task.Status)
	assert.Equal(t, 2, task.RetryCount)

	source, _ := f.catalog.Get("s1")
	assert.Equal(t, domain.StatusError, source.Status)

	// No further dispatches, ever.
	f.clock.set(now.Add(48 * time.Hour))
	assert.Equal(t, 0, f.sched.Tick(context.Background(), f.clock.now()))
	f.sched.Wait()

	assert.Equal(t, 3, fake.callCount())
	assert.Equal(t, int64(1), f.sched.Stats().FailedTasks,
		"one exhausted task counts once regardless of attempts")
}

func TestTick_FailureIsolation(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f, _ := newFixture(t, Config{},
		activeSource("ok-source", domain.FrequencyHourly),
	)

	// Second category with a collector that always fails.
	badSource := activeSource("bad-source", domain.FrequencyHourly)
	badSource.Category = domain.CategorySatellite
	f.catalog.Register(badSource)

	bad := &fakeCollector{err: errors.New("satellite link down")}
	f.registry.Register(domain.CategorySatellite, bad)

	good, err := f.registry.Resolve(domain.CategoryGroundSensor)
	require.NoError(t, err)
	good.(*fakeCollector).records = sampleRecords("ok-source", t0)

	f.sched.InitTasks(f.catalog.ListActive())

	now := t0.Add(time.Hour)
	f.clock.set(now)
	require.Equal(t, 2, f.sched.Tick(context.Background(), now))
	f.sched.Wait()

	okTask, _ := f.sched.Task("ok-source")
	assert.Equal(t, domain.TaskScheduled, okTask.Status)
	assert.Equal(t, 1, f.store.batchCount())

	badTask, _ := f.sched.Task("bad-source")
	assert.Equal(t, domain.TaskRetrying, badTask.Status)
	assert.Contains(t, badTask.LastError, "satellite link down")

	stats := f.sched.Stats()
	assert.Equal(t, int64(1), stats.SuccessfulTasks)
	assert.Equal(t, int64(0), stats.FailedTasks)
}

func TestTick_SingleFlightPerSource(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f, fake := newFixture(t, Config{}, activeSource("s1", domain.FrequencyHourly))
	fake.block = make(chan struct{})
	fake.records = sampleRecords("s1", t0)

	now := t0.Add(time.Hour)
	f.clock.set(now)
	require.Equal(t, 1, f.sched.Tick(context.Background(), now))

	// The first execution is still blocked inside the collector; later ticks
	// must not dispatch the same source again.
	f.clock.set(now.Add(2 * time.Hour))
	assert.Equal(t, 0, f.sched.Tick(context.Background(), f.clock.now()))
	assert.Equal(t, 0, f.sched.Tick(context.Background(), f.clock.now()))

	close(fake.block)
	f.sched.Wait()

	assert.Equal(t, 1, fake.callCount())
	assert.Equal(t, 1, f.store.batchCount())
	assert.False(t, f.store.overlap, "storage writes for one source must never overlap")
}

func TestTick_StorageErrorFailsTask(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f, fake := newFixture(t, Config{}, activeSource("s1", domain.FrequencyHourly))
	fake.records = sampleRecords("s1", t0)
	f.store.storeErr = &domain.StorageError{Op: "write blob", Err: errors.New("disk full")}

	now := t0.Add(time.Hour)
	f.clock.set(now)
	require.Equal(t, 1, f.sched.Tick(context.Background(), now))
	f.sched.Wait()

	task, _ := f.sched.Task("s1")
	assert.Equal(t, domain.TaskRetrying, task.Status)
	assert.Contains(t, task.LastError, "disk full")
	assert.Equal(t, int64(0), f.sched.Stats().FailedTasks)
}

func TestTick_PublishesStoredBatches(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f, fake := newFixture(t, Config{}, activeSource("s1", domain.FrequencyHourly))
	fake.records = sampleRecords("s1", t0)

	f.clock.set(t0.Add(time.Hour))
	f.sched.Tick(context.Background(), f.clock.now())
	f.sched.Wait()

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "s1", f.publisher.events[0].SourceID)
}

func TestTick_PublishErrorDoesNotFailTask(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f, fake := newFixture(t, Config{}, activeSource("s1", domain.FrequencyHourly))
	fake.records = sampleRecords("s1", t0)
	f.publisher.err = errors.New("broker unavailable")

	f.clock.set(t0.Add(time.Hour))
	f.sched.Tick(context.Background(), f.clock.now())
	f.sched.Wait()

	task, _ := f.sched.Task("s1")
	assert.Equal(t, domain.TaskScheduled, task.Status)
	assert.Equal(t, int64(1), f.sched.Stats().SuccessfulTasks)
}

func TestInitTasks_OnlyActiveAndIdempotent(t *testing.T) {
	f, _ := newFixture(t, Config{},
		activeSource("s1", domain.FrequencyHourly),
	)

	inactive := activeSource("s2", domain.FrequencyDaily)
	inactive.Status = domain.StatusMaintenance
	f.catalog.Register(inactive)

	f.sched.InitTasks(f.catalog.ListActive())
	f.sched.InitTasks(f.catalog.ListActive())

	assert.Equal(t, 1, f.sched.Stats().TaskCount)

	_, ok := f.sched.Task("s2")
	assert.False(t, ok)
}

func TestTick_DeactivatedSourceIsSkipped(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f, fake := newFixture(t, Config{}, activeSource("s1", domain.FrequencyHourly))

	require.NoError(t, f.catalog.SetStatus("s1", domain.StatusMaintenance))

	f.clock.set(t0.Add(time.Hour))
	require.Equal(t, 1, f.sched.Tick(context.Background(), f.clock.now()))
	f.sched.Wait()

	assert.Equal(t, 0, fake.callCount())

	task, _ := f.sched.Task("s1")
	assert.Equal(t, domain.TaskScheduled, task.Status)
}
