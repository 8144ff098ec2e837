package catalog

import (
	"sort"
	"sync"
	"time"

	"obs_ingestor/internal/domain"
)

// Catalog is the authoritative in-memory registry of known data sources.
// Read-mostly; scheduler ticks and API reads share the read lock.
type Catalog struct {
	mu      sync.RWMutex
	sources map[string]domain.DataSource
}

func New() *Catalog {
	return &Catalog{
		sources: make(map[string]domain.DataSource),
	}
}

// Register upserts a source by id. Idempotent.
func (c *Catalog) Register(source domain.DataSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[source.ID] = source
}

// Get looks up a source by id.
func (c *Catalog) Get(id string) (domain.DataSource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	source, ok := c.sources[id]
	return source, ok
}

// ListActive returns all active sources ordered by descending priority.
// Used to seed the scheduler.
func (c *Catalog) ListActive() []domain.DataSource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var active []domain.DataSource
	for _, source := range c.sources {
		if source.Status == domain.StatusActive {
			active = append(active, source)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	return active
}

// SetStatus updates the operational status of a source.
func (c *Catalog) SetStatus(id string, status domain.SourceStatus) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	source, ok := c.sources[id]
	if !ok {
		return domain.ErrSourceNotFound
	}
	source.Status = status
	c.sources[id] = source
	return nil
}

// MarkIngested records the time of the latest successful ingestion for a
// source.
func (c *Catalog) MarkIngested(id string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	source, ok := c.sources[id]
	if !ok {
		return domain.ErrSourceNotFound
	}
	source.LastIngestionAt = at
	c.sources[id] = source
	return nil
}

// Len returns the number of registered sources.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sources)
}
