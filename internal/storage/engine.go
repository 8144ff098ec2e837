package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"obs_ingestor/internal/domain"
)

// DefaultCompressionLevel balances throughput and ratio for observational
// payloads.
const DefaultCompressionLevel = gzip.DefaultCompression

// Config holds the constructor parameters of the storage engine.
// CompressionLevel 0 selects DefaultCompressionLevel; any other valid gzip
// level, including gzip.DefaultCompression (-1), is used as given. Blobs are
// always compressed.
type Config struct {
	BasePath         string
	CompressionLevel int
}

// Engine writes collected records as compressed, checksummed batch blobs
// partitioned by source and hour, and answers range queries through the
// metadata index. Blob paths are unique and never overwritten; corrections
// are new batches.
type Engine struct {
	basePath string
	level    int
	meta     MetadataStore
	logger   *slog.Logger
}

func NewEngine(cfg Config, meta MetadataStore, logger *slog.Logger) *Engine {
	level := cfg.CompressionLevel
	if level == 0 {
		level = DefaultCompressionLevel
	}
	return &Engine{
		basePath: cfg.BasePath,
		level:    level,
		meta:     meta,
		logger:   logger.With("component", "storage"),
	}
}

type batchKey struct {
	sourceID string
	hour     time.Time
}

// StoreBatch persists records grouped by (source, hour bucket). Each group
// becomes one blob plus one metadata row and per-record index entries.
// Metadata is committed only after its blob is on disk. A failing group
// aborts atomically without affecting the other groups; metadata for the
// groups that succeeded is returned alongside the joined error.
func (e *Engine) StoreBatch(ctx context.Context, records []domain.RawDataRecord) ([]domain.DataFileMetadata, error) {
	if len(records) == 0 {
		return nil, nil
	}

	groups := make(map[batchKey][]domain.RawDataRecord)
	for _, record := range records {
		key := batchKey{
			sourceID: record.SourceID,
			hour:     record.ObservedAt.UTC().Truncate(time.Hour),
		}
		groups[key] = append(groups[key], record)
	}

	keys := make([]batchKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sourceID != keys[j].sourceID {
			return keys[i].sourceID < keys[j].sourceID
		}
		return keys[i].hour.Before(keys[j].hour)
	})

	var (
		stored []domain.DataFileMetadata
		errs   []error
	)
	for _, key := range keys {
		meta, err := e.storeGroup(ctx, key, groups[key])
		if err != nil {
			e.logger.Error("batch write failed",
				"source", key.sourceID,
				"hour", key.hour,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		stored = append(stored, meta)
	}

	return stored, errors.Join(errs...)
}

func (e *Engine) storeGroup(ctx context.Context, key batchKey, records []domain.RawDataRecord) (domain.DataFileMetadata, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return domain.DataFileMetadata{}, &domain.StorageError{Op: "serialize", Err: err}
	}

	compressed, err := e.compress(raw)
	if err != nil {
		return domain.DataFileMetadata{}, &domain.StorageError{Op: "compress", Err: err}
	}

	sum := sha256.Sum256(compressed)

	fileID := uuid.NewString()
	relPath := filepath.Join(
		"raw",
		key.hour.Format("2006"),
		key.hour.Format("01"),
		key.hour.Format("02"),
		key.hour.Format("15"),
		fileID+".blob",
	)
	absPath := filepath.Join(e.basePath, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return domain.DataFileMetadata{}, &domain.StorageError{Op: "mkdir", Err: err}
	}
	if err := os.WriteFile(absPath, compressed, 0o644); err != nil {
		return domain.DataFileMetadata{}, &domain.StorageError{Op: "write blob", Err: err}
	}

	rangeStart, rangeEnd := records[0].ObservedAt, records[0].ObservedAt
	paramSet := make(map[string]bool)
	entries := make([]domain.RecordIndexEntry, 0, len(records))
	for _, record := range records {
		if record.ObservedAt.Before(rangeStart) {
			rangeStart = record.ObservedAt
		}
		if record.ObservedAt.After(rangeEnd) {
			rangeEnd = record.ObservedAt
		}
		for name := range record.Metadata.Parameters {
			paramSet[name] = true
		}
		entries = append(entries, domain.RecordIndexEntry{
			RecordID:   record.ID,
			SourceID:   record.SourceID,
			ObservedAt: record.ObservedAt,
			FilePath:   relPath,
			Parameters: record.Metadata.ParameterNames(),
		})
	}

	parameters := make([]string, 0, len(paramSet))
	for name := range paramSet {
		parameters = append(parameters, name)
	}
	sort.Strings(parameters)

	meta := domain.DataFileMetadata{
		FileID:          fileID,
		SourceID:        key.sourceID,
		FilePath:        relPath,
		SizeBytes:       int64(len(raw)),
		CompressedBytes: int64(len(compressed)),
		RecordCount:     len(records),
		Checksum:        hex.EncodeToString(sum[:]),
		CreatedAt:       time.Now().UTC(),
		TimeRangeStart:  rangeStart,
		TimeRangeEnd:    rangeEnd,
		Parameters:      parameters,
	}

	// Blob is durable at this point. An index failure leaves an orphan blob,
	// which is reclaimable; the reverse (metadata without blob) cannot occur.
	if err := e.meta.InsertBatch(ctx, meta, entries); err != nil {
		return domain.DataFileMetadata{}, &domain.StorageError{Op: "index batch", Err: err}
	}

	e.logger.Info("stored batch",
		"source", key.sourceID,
		"file", relPath,
		"records", len(records),
		"bytes", len(raw),
		"compressed", len(compressed),
	)

	return meta, nil
}

func (e *Engine) compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, e.level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
