package scheduler

import (
	"time"

	"obs_ingestor/internal/domain"
)

// Offset returns the fixed delay between a completed execution and the next
// one for a given update frequency. Pure and independent of wall-clock time;
// next_execution after a run completing at C is exactly C + Offset(freq).
func Offset(frequency domain.UpdateFrequency) time.Duration {
	switch frequency {
	case domain.FrequencyRealTime:
		return time.Minute
	case domain.FrequencyHighFrequency:
		return 15 * time.Minute
	case domain.FrequencyHourly:
		return time.Hour
	case domain.FrequencyDaily:
		return 24 * time.Hour
	case domain.FrequencyWeekly:
		return 7 * 24 * time.Hour
	case domain.FrequencyMonthly:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
