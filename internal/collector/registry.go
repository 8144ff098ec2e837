package collector

import (
	"fmt"
	"sort"

	"obs_ingestor/internal/domain"
)

// Registry maps each source category to exactly one collector instance.
// Collectors are registered once at startup and shared read-only thereafter.
type Registry struct {
	collectors map[domain.SourceCategory]Collector
}

func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[domain.SourceCategory]Collector),
	}
}

// Register binds a collector to a category, replacing any previous binding.
func (r *Registry) Register(category domain.SourceCategory, c Collector) {
	r.collectors[category] = c
}

// Resolve returns the collector for a category. A missing binding is a
// configuration error; Validate should have caught it at startup.
func (r *Registry) Resolve(category domain.SourceCategory) (Collector, error) {
	c, ok := r.collectors[category]
	if !ok {
		return nil, &domain.ConfigurationError{
			Detail: fmt.Sprintf("no collector registered for category %q", category),
		}
	}
	return c, nil
}

// Validate checks that every given category has a registered collector.
// Called at startup so misconfiguration fails loudly instead of sources
// being silently skipped.
func (r *Registry) Validate(categories []domain.SourceCategory) error {
	var missing []string
	seen := make(map[domain.SourceCategory]bool)
	for _, category := range categories {
		if seen[category] {
			continue
		}
		seen[category] = true
		if _, ok := r.collectors[category]; !ok {
			missing = append(missing, string(category))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &domain.ConfigurationError{
			Detail: fmt.Sprintf("no collector registered for categories: %v", missing),
		}
	}
	return nil
}
