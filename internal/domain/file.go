package domain

import "time"

// DataFileMetadata describes one compressed batch blob on disk. Written
// exactly once per successful batch; never mutated. Corrections produce a
// new file, never an edit.
type DataFileMetadata struct {
	FileID           string    `db:"file_id"`
	SourceID         string    `db:"source_id"`
	FilePath         string    `db:"file_path"`
	SizeBytes        int64     `db:"size_bytes"`
	CompressedBytes  int64     `db:"compressed_bytes"`
	RecordCount      int       `db:"record_count"`
	Checksum         string    `db:"checksum"` // sha256 over the compressed bytes
	CreatedAt        time.Time `db:"created_at"`
	TimeRangeStart   time.Time `db:"time_range_start"`
	TimeRangeEnd     time.Time `db:"time_range_end"`
	Parameters       []string  `db:"-"`
}

// RecordIndexEntry locates one stored record inside a batch blob.
type RecordIndexEntry struct {
	RecordID   string    `db:"record_id"`
	SourceID   string    `db:"source_id"`
	ObservedAt time.Time `db:"observed_at"`
	FilePath   string    `db:"file_path"`
	Parameters []string  `db:"-"`
}

// StorageStats is an on-demand aggregate over all stored batch metadata.
type StorageStats struct {
	TotalRecords     int64
	TotalBytes       int64
	CompressedBytes  int64
	CompressionRatio float64
	OldestRecord     time.Time
	NewestRecord     time.Time
	SourceCount      int
}
