package domain

import (
	"encoding/json"
	"time"
)

// QualityFlag marks the assessed quality of a collected observation.
type QualityFlag string

const (
	QualityGood      QualityFlag = "good"
	QualitySuspect   QualityFlag = "suspect"
	QualityEstimated QualityFlag = "estimated"
	QualityMissing   QualityFlag = "missing"
)

// Coordinates locates an observation on the globe.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RecordMetadata carries the descriptive context of one observation.
type RecordMetadata struct {
	Parameters map[string]float64 `json:"parameters"`
	Units      map[string]string  `json:"units,omitempty"`
	Location   *Coordinates       `json:"location,omitempty"`
	Elevation  *float64           `json:"elevation,omitempty"`
	Instrument string             `json:"instrument,omitempty"`
	Processing string             `json:"processing,omitempty"`
}

// ParameterNames returns the parameter names present in the metadata.
func (m RecordMetadata) ParameterNames() []string {
	names := make([]string, 0, len(m.Parameters))
	for name := range m.Parameters {
		names = append(names, name)
	}
	return names
}

// RawDataRecord is one collected observation prior to domain analysis.
// Immutable once stored.
type RawDataRecord struct {
	ID           string          `json:"id"`
	SourceID     string          `json:"source_id"`
	ObservedAt   time.Time       `json:"observed_at"`
	IngestedAt   time.Time       `json:"ingested_at"`
	Payload      json.RawMessage `json:"payload"`
	Metadata     RecordMetadata  `json:"metadata"`
	QualityFlags []QualityFlag   `json:"quality_flags,omitempty"`
	FilePath     string          `json:"file_path,omitempty"` // externalized large payloads
}
