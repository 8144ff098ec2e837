package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"

	"obs_ingestor/internal/domain"
)

var errChecksumMismatch = errors.New("checksum mismatch")

// Query selects stored records. Zero fields are unfiltered; Limit 0 means
// unlimited. Parameters require every named parameter to be present on a
// matching record. The time window is inclusive on both ends.
type Query struct {
	SourceID   string
	Start      time.Time
	End        time.Time
	Parameters []string
	Limit      int
}

// Records returns the stored records matching the query, in time order of
// their containing batches. The metadata index only prunes candidate files;
// every returned record passed the exact per-record filter. Corrupt or
// malformed blobs are skipped and logged rather than failing the query.
func (e *Engine) Records(ctx context.Context, q Query) ([]domain.RawDataRecord, error) {
	files, err := e.meta.FindFiles(ctx, FileQuery{
		SourceID:   q.SourceID,
		Start:      q.Start,
		End:        q.End,
		Parameters: q.Parameters,
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "find files", Err: err}
	}

	var results []domain.RawDataRecord
	for _, file := range files {
		if q.Limit > 0 && len(results) >= q.Limit {
			break
		}

		records, err := e.readBlob(file)
		if err != nil {
			e.logger.Warn("skipping unreadable blob",
				"file", file.FilePath,
				"error", err,
			)
			continue
		}

		for _, record := range records {
			if !q.matches(record) {
				continue
			}
			results = append(results, record)
			if q.Limit > 0 && len(results) >= q.Limit {
				break
			}
		}
	}

	return results, nil
}

// Stats aggregates the metadata index into an on-demand storage overview.
func (e *Engine) Stats(ctx context.Context) (domain.StorageStats, error) {
	stats, err := e.meta.Stats(ctx)
	if err != nil {
		return domain.StorageStats{}, &domain.StorageError{Op: "stats", Err: err}
	}
	if stats.CompressedBytes > 0 {
		stats.CompressionRatio = float64(stats.TotalBytes) / float64(stats.CompressedBytes)
	}
	return stats, nil
}

func (e *Engine) readBlob(meta domain.DataFileMetadata) ([]domain.RawDataRecord, error) {
	compressed, err := os.ReadFile(filepath.Join(e.basePath, meta.FilePath))
	if err != nil {
		return nil, &domain.StorageError{Op: "read blob", Err: err}
	}

	sum := sha256.Sum256(compressed)
	if hex.EncodeToString(sum[:]) != meta.Checksum {
		return nil, &domain.StorageError{Op: "verify checksum", Err: errChecksumMismatch}
	}

	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &domain.StorageError{Op: "decompress", Err: err}
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.StorageError{Op: "decompress", Err: err}
	}

	var records []domain.RawDataRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &domain.StorageError{Op: "deserialize", Err: err}
	}

	return records, nil
}

func (q Query) matches(record domain.RawDataRecord) bool {
	if q.SourceID != "" && record.SourceID != q.SourceID {
		return false
	}
	if !q.Start.IsZero() && record.ObservedAt.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && record.ObservedAt.After(q.End) {
		return false
	}
	for _, name := range q.Parameters {
		if _, ok := record.Metadata.Parameters[name]; !ok {
			return false
		}
	}
	return true
}
