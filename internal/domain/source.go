package domain

import "time"

// SourceCategory identifies the kind of provider a source belongs to and
// selects the collector implementation used to fetch from it.
type SourceCategory string

const (
	CategorySatellite    SourceCategory = "satellite"
	CategoryGroundSensor SourceCategory = "ground_sensor"
	CategoryModel        SourceCategory = "model"
	CategoryAgricultural SourceCategory = "agricultural"
)

// UpdateFrequency describes how often a source publishes new data.
type UpdateFrequency string

const (
	FrequencyRealTime      UpdateFrequency = "realtime"
	FrequencyHighFrequency UpdateFrequency = "high_frequency"
	FrequencyHourly        UpdateFrequency = "hourly"
	FrequencyDaily         UpdateFrequency = "daily"
	FrequencyWeekly        UpdateFrequency = "weekly"
	FrequencyMonthly       UpdateFrequency = "monthly"
	FrequencyIrregular     UpdateFrequency = "irregular"
)

// SourceStatus is the operational state of a registered source.
type SourceStatus string

const (
	StatusActive               SourceStatus = "active"
	StatusInactive             SourceStatus = "inactive"
	StatusError                SourceStatus = "error"
	StatusMaintenance          SourceStatus = "maintenance"
	StatusRateLimited          SourceStatus = "rate_limited"
	StatusAuthenticationFailed SourceStatus = "authentication_failed"
)

// DataSource is a registered provider of observational data. Sources are
// never deleted; deactivation is a status change.
type DataSource struct {
	ID              string          `yaml:"id"`
	Name            string          `yaml:"name"`
	Category        SourceCategory  `yaml:"category"`
	Provider        string          `yaml:"provider"`
	Frequency       UpdateFrequency `yaml:"frequency"`
	Priority        int             `yaml:"priority"` // 1..10, higher is more important
	Status          SourceStatus    `yaml:"status"`
	BaseURL         string          `yaml:"base_url"`
	LastIngestionAt time.Time       `yaml:"-"`
}
