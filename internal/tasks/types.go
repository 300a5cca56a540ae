package tasks

import "time"

// Task Types
const (
	TaskTypeBulkImport  = "import:bulk"
	TaskTypeImportSweep = "import:sweep"
	TaskTypeAuditPrune  = "audit:prune"
)

// Task Queues
const (
	QueueCritical = "critical" // time-sensitive work
	QueueDefault  = "default"  // bulk imports
	QueueLow      = "low"      // sweeps and retention
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// BulkImportPayload is the task payload for one queued import job. The
// caller's backend token rides along so row creates run on their behalf; it
// lives only in the queue, never in the local store.
type BulkImportPayload struct {
	JobID      string `json:"job_id"`
	Token      string `json:"token"`
	ActorID    string `json:"actor_id"`
	ActorEmail string `json:"actor_email"`
}
