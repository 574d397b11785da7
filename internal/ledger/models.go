package ledger

import "time"

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// TableCount is the row count of one table written by a run.
type TableCount struct {
	Name string
	Rows int
}

// Run is one stage execution. A CLI invocation shares RunID across its stages.
type Run struct {
	ID         int64
	RunID      string
	Stage      string
	Source     string
	TargetDir  string
	Status     Status
	Error      string
	ErrorKind  string
	StartedAt  time.Time
	FinishedAt time.Time
	Tables     []TableCount
}

// Rows returns the total rows across the run's tables.
func (r Run) Rows() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// Duration is zero while the run is still in progress.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
