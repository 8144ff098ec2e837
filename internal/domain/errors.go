package domain

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned for lookups of unregistered source ids.
var ErrSourceNotFound = errors.New("source not found")

// ConfigurationError reports an invalid wiring of the ingestion engine,
// such as a source category with no registered collector. It should fail
// startup validation rather than be skipped at runtime.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}

// CollectorError wraps a network or parse failure at a provider. Recoverable;
// it drives the scheduler's retry transition.
type CollectorError struct {
	SourceID string
	Err      error
}

func (e *CollectorError) Error() string {
	return fmt.Sprintf("collector error for source %s: %v", e.SourceID, e.Err)
}

func (e *CollectorError) Unwrap() error { return e.Err }

// StorageError wraps an I/O, serialization, or compression failure on the
// storage write path. The affected batch fails atomically.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
