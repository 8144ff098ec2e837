// Package scheduler owns the per-source collection tasks and the periodic
// loop that dispatches due ones through the collector registry into storage.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"obs_ingestor/internal/collector"
	"obs_ingestor/internal/domain"
)

// Config holds the scheduler's constructor parameters.
type Config struct {
	TickInterval  time.Duration
	MaxRetries    int
	RetryBackoff  time.Duration
	MaxConcurrent int
}

// Stats are the aggregate counters for background scheduling, the only
// observability surface for failures besides per-task last_error.
// FailedTasks counts tasks that exhausted their retries, not individual
// failed attempts; attempts still being retried show up as Retrying tasks.
type Stats struct {
	SuccessfulTasks int64
	FailedTasks     int64
	TaskCount       int
}

// Scheduler runs one ScheduledTask per active source. A fixed-interval tick
// scans all tasks for due ones; due tasks are dispatched on a bounded worker
// pool so one slow provider cannot starve the rest. Executions for the same
// source never overlap: a task is only dispatchable while it is not Running.
type Scheduler struct {
	cfg        Config
	catalog    SourceCatalog
	collectors *collector.Registry
	store      RecordStore
	publisher  EventPublisher
	logger     *slog.Logger

	nowFn func() time.Time

	mu         sync.Mutex
	tasks      map[string]*domain.ScheduledTask
	successful int64
	failed     int64

	sem chan struct{}
	wg  sync.WaitGroup
}

func New(
	cfg Config,
	catalog SourceCatalog,
	collectors *collector.Registry,
	store RecordStore,
	publisher EventPublisher,
	logger *slog.Logger,
) *Scheduler {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Minute
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 5 * time.Minute
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	return &Scheduler{
		cfg:        cfg,
		catalog:    catalog,
		collectors: collectors,
		store:      store,
		publisher:  publisher,
		logger:     logger.With("component", "scheduler"),
		nowFn:      time.Now,
		tasks:      make(map[string]*domain.ScheduledTask),
		sem:        make(chan struct{}, cfg.MaxConcurrent),
	}
}

// InitTasks builds one task per given source. Existing tasks are kept, so
// re-initialization never resets retry state. The first execution is due one
// frequency offset after initialization.
func (s *Scheduler) InitTasks(sources []domain.DataSource) {
	now := s.nowFn()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, source := range sources {
		if source.Status != domain.StatusActive {
			continue
		}
		if _, exists := s.tasks[source.ID]; exists {
			continue
		}
		s.tasks[source.ID] = &domain.ScheduledTask{
			ID:            uuid.NewString(),
			SourceID:      source.ID,
			NextExecution: now.Add(Offset(source.Frequency)),
			Frequency:     source.Frequency,
			Priority:      source.Priority,
			MaxRetries:    s.cfg.MaxRetries,
			Status:        domain.TaskScheduled,
		}
	}

	s.logger.Info("tasks initialized", "count", len(s.tasks))
}

// Start runs the tick loop until the context is cancelled, then waits for
// in-flight executions to drain.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"tick_interval", s.cfg.TickInterval,
		"max_concurrent", s.cfg.MaxConcurrent,
	)

	s.Tick(ctx, s.nowFn())

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx, s.nowFn())
		}
	}
}

// Tick scans the task table for due tasks and dispatches them. Dispatched
// tasks are marked Running before their goroutine starts, so a task can
// never be picked up twice. Returns the number of tasks dispatched.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) int {
	due := s.claimDue(now)

	for _, task := range due {
		s.wg.Add(1)
		go func(sourceID string) {
			defer s.wg.Done()
			s.sem <- struct{}{}
			defer func() { <-s.sem }()
			s.execute(ctx, sourceID)
		}(task.SourceID)
	}

	if len(due) > 0 {
		s.logger.Debug("tick dispatched", "due", len(due))
	}
	return len(due)
}

// Wait blocks until all dispatched executions have finished. Test hook and
// shutdown aid.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) claimDue(now time.Time) []*domain.ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*domain.ScheduledTask
	for _, task := range s.tasks {
		switch task.Status {
		case domain.TaskScheduled, domain.TaskRetrying:
		default:
			continue
		}
		if task.NextExecution.After(now) {
			continue
		}
		task.Status = domain.TaskRunning
		due = append(due, task)
	}
	return due
}

// execute performs one collection for a source. Collector and storage errors
// are converted into task-state transitions; nothing escapes to the tick
// loop, so one broken source never affects the others.
func (s *Scheduler) execute(ctx context.Context, sourceID string) {
	logger := s.logger.With("source", sourceID)

	source, ok := s.catalog.Get(sourceID)
	if !ok {
		s.completeFailure(sourceID, domain.ErrSourceNotFound)
		return
	}
	if source.Status != domain.StatusActive {
		// Deactivated after scheduling; put the task back without running.
		s.reschedule(sourceID)
		return
	}

	c, err := s.collectors.Resolve(source.Category)
	if err != nil {
		logger.Error("collector resolution failed", "error", err)
		s.completeFailure(sourceID, err)
		return
	}

	records, err := c.CollectData(ctx, source)
	if err != nil {
		logger.Warn("collection failed", "error", err)
		s.completeFailure(sourceID, &domain.CollectorError{SourceID: sourceID, Err: err})
		return
	}

	metas, err := s.store.StoreBatch(ctx, records)
	if err != nil {
		logger.Error("storing collected records failed", "error", err)
		s.completeFailure(sourceID, err)
		return
	}

	if s.publisher != nil {
		for _, meta := range metas {
			if err := s.publisher.PublishBatchStored(ctx, meta); err != nil {
				logger.Warn("publish batch event failed", "file", meta.FileID, "error", err)
			}
		}
	}

	completion := s.nowFn()
	s.completeSuccess(sourceID, completion, len(records))

	if err := s.catalog.MarkIngested(sourceID, completion); err != nil {
		logger.Warn("marking ingestion time failed", "error", err)
	}

	logger.Info("collection completed", "records", len(records), "batches", len(metas))
}

func (s *Scheduler) completeSuccess(sourceID string, completion time.Time, recordCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[sourceID]
	if !ok {
		return
	}

	// Completed is transient: immediately recomputed into Scheduled,
	// relative to completion time rather than grid-aligned.
	task.Status = domain.TaskScheduled
	task.RetryCount = 0
	task.LastSuccess = completion
	task.LastError = ""
	task.NextExecution = completion.Add(Offset(task.Frequency))
	s.successful++
}

func (s *Scheduler) completeFailure(sourceID string, cause error) {
	now := s.nowFn()

	s.mu.Lock()
	task, ok := s.tasks[sourceID]
	if !ok {
		s.mu.Unlock()
		return
	}

	task.LastError = cause.Error()

	exhausted := task.RetryCount+1 >= task.MaxRetries
	if exhausted {
		// Quasi-terminal: requires external intervention to resume.
		task.Status = domain.TaskFailed
		s.failed++
	} else {
		task.RetryCount++
		task.Status = domain.TaskRetrying
		task.NextExecution = now.Add(s.cfg.RetryBackoff)
	}
	s.mu.Unlock()

	if exhausted {
		if err := s.catalog.SetStatus(sourceID, domain.StatusError); err != nil {
			s.logger.Warn("marking source errored failed", "source", sourceID, "error", err)
		}
	}
}

func (s *Scheduler) reschedule(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[sourceID]
	if !ok {
		return
	}
	task.Status = domain.TaskScheduled
	task.NextExecution = s.nowFn().Add(Offset(task.Frequency))
}

// Stats returns the aggregate execution counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		SuccessfulTasks: s.successful,
		FailedTasks:     s.failed,
		TaskCount:       len(s.tasks),
	}
}

// Tasks returns a snapshot of the task table for observability.
func (s *Scheduler) Tasks() []domain.ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ScheduledTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, *task)
	}
	return out
}

// Task returns the task for one source, if it exists.
func (s *Scheduler) Task(sourceID string) (domain.ScheduledTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[sourceID]
	if !ok {
		return domain.ScheduledTask{}, false
	}
	return *task, true
}
