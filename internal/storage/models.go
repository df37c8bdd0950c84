package storage

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// Run records one matching invocation.
type Run struct {
	ID              uuid.UUID
	StartedAt       time.Time
	FinishedAt      time.Time
	SecondsPath     string
	TemperaturePath string
	OutputPath      string
	Step            float64
	Rounding        int
	Rows            int
	Adjusted        int
	Status          string
	Error           *string
}

// NewRun stamps a fresh run with an ID and start time.
func NewRun(secondsPath, temperaturePath string, step float64, rounding int) Run {
	return Run{
		ID:              uuid.New(),
		StartedAt:       time.Now().UTC(),
		SecondsPath:     secondsPath,
		TemperaturePath: temperaturePath,
		Step:            step,
		Rounding:        rounding,
	}
}

// Finish marks the run complete, or failed when err is non-nil.
func (r *Run) Finish(err error) {
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		msg := err.Error()
		r.Status = StatusFailed
		r.Error = &msg
		return
	}
	r.Status = StatusComplete
}
