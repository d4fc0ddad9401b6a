package history

import "time"

// Action describes the outcome of a pipeline run.
type Action string

// Run outcomes.
const (
	ActionBuilt   Action = "built"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID             int64
	RunID          string
	Action         Action
	Digest         string
	PreviousDigest string
	TrackCount     int
	TotalBytes     int64
	OutputPath     string
	ErrorMessage   string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Duration returns the elapsed wall time of the run.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
