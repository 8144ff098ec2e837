package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"obs_ingestor/internal/domain"
	"obs_ingestor/internal/storage"
)

// MetadataStore is the Postgres-backed batch metadata and record index.
type MetadataStore struct {
	db *sqlx.DB
}

func NewMetadataStore(db *sqlx.DB) *MetadataStore {
	return &MetadataStore{db: db}
}

// InsertBatch writes one metadata row and its record index entries in a
// single transaction, so a batch is either fully indexed or not at all.
func (s *MetadataStore) InsertBatch(ctx context.Context, meta domain.DataFileMetadata, entries []domain.RecordIndexEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO data_file_metadata (
			file_id, source_id, file_path, size_bytes, compressed_bytes,
			record_count, checksum, created_at, time_range_start, time_range_end, parameters
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		meta.FileID,
		meta.SourceID,
		meta.FilePath,
		meta.SizeBytes,
		meta.CompressedBytes,
		meta.RecordCount,
		meta.Checksum,
		meta.CreatedAt,
		meta.TimeRangeStart,
		meta.TimeRangeEnd,
		pq.Array(meta.Parameters),
	)
	if err != nil {
		return err
	}

	if err := insertIndexEntries(ctx, tx, entries); err != nil {
		return err
	}

	return tx.Commit()
}

func insertIndexEntries(ctx context.Context, tx *sqlx.Tx, entries []domain.RecordIndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO data_record_index (record_id, source_id, observed_at, file_path, parameters) VALUES ")
	args := make([]interface{}, 0, len(entries)*5)

	for i, entry := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		sb.WriteString("($" + strconv.Itoa(base+1))
		sb.WriteString(", $" + strconv.Itoa(base+2))
		sb.WriteString(", $" + strconv.Itoa(base+3))
		sb.WriteString(", $" + strconv.Itoa(base+4))
		sb.WriteString(", $" + strconv.Itoa(base+5) + ")")
		args = append(args,
			entry.RecordID,
			entry.SourceID,
			entry.ObservedAt,
			entry.FilePath,
			pq.Array(entry.Parameters),
		)
	}
	sb.WriteString(" ON CONFLICT (record_id) DO NOTHING")

	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// FindFiles returns metadata rows consistent with the coarse filter, ordered
// by time range start. Parameter matching here is overlap-based; exact
// filtering happens per record in the engine.
func (s *MetadataStore) FindFiles(ctx context.Context, q storage.FileQuery) ([]domain.DataFileMetadata, error) {
	query := `
		SELECT file_id, source_id, file_path, size_bytes, compressed_bytes,
		       record_count, checksum, created_at, time_range_start, time_range_end, parameters
		FROM data_file_metadata`

	var (
		conds []string
		args  []interface{}
	)
	addCond := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if q.SourceID != "" {
		addCond("source_id = ?", q.SourceID)
	}
	if !q.Start.IsZero() {
		addCond("time_range_end >= ?", q.Start)
	}
	if !q.End.IsZero() {
		addCond("time_range_start <= ?", q.End)
	}
	if len(q.Parameters) > 0 {
		addCond("parameters && ?", pq.Array(q.Parameters))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY time_range_start, file_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.DataFileMetadata
	for rows.Next() {
		var (
			meta   domain.DataFileMetadata
			params pq.StringArray
		)
		err := rows.Scan(
			&meta.FileID,
			&meta.SourceID,
			&meta.FilePath,
			&meta.SizeBytes,
			&meta.CompressedBytes,
			&meta.RecordCount,
			&meta.Checksum,
			&meta.CreatedAt,
			&meta.TimeRangeStart,
			&meta.TimeRangeEnd,
			&params,
		)
		if err != nil {
			return nil, err
		}
		meta.Parameters = params
		files = append(files, meta)
	}

	return files, rows.Err()
}

// Stats aggregates over all metadata rows.
func (s *MetadataStore) Stats(ctx context.Context) (domain.StorageStats, error) {
	var (
		stats  domain.StorageStats
		oldest sql.NullTime
		newest sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(record_count), 0),
			COALESCE(SUM(size_bytes), 0),
			COALESCE(SUM(compressed_bytes), 0),
			MIN(time_range_start),
			MAX(time_range_end),
			COUNT(DISTINCT source_id)
		FROM data_file_metadata`,
	).Scan(
		&stats.TotalRecords,
		&stats.TotalBytes,
		&stats.CompressedBytes,
		&oldest,
		&newest,
		&stats.SourceCount,
	)
	if err != nil {
		return domain.StorageStats{}, err
	}

	if oldest.Valid {
		stats.OldestRecord = oldest.Time
	}
	if newest.Valid {
		stats.NewestRecord = newest.Time
	}

	return stats, nil
}

var _ storage.MetadataStore = (*MetadataStore)(nil)
