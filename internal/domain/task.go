package domain

import "time"

// TaskStatus is the lifecycle state of a scheduled collection task.
type TaskStatus string

const (
	TaskScheduled TaskStatus = "scheduled"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
	TaskRetrying  TaskStatus = "retrying"
)

// ScheduledTask tracks the collection schedule for one active source.
// One task exists per active source; it is mutated on every execution and
// never deleted while its source stays active.
type ScheduledTask struct {
	ID            string
	SourceID      string
	NextExecution time.Time
	Frequency     UpdateFrequency
	Priority      int
	RetryCount    int
	MaxRetries    int
	LastSuccess   time.Time
	LastError     string
	Status        TaskStatus
}
