package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusProcessed   Status = "processed"
	StatusNotAGoodFit Status = "not_a_good_fit"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusNotAGoodFit:
		return true
	}
	return false
}

// Job is a job description submitted by a user. FitScore is set once, when
// the job leaves the pending state.
type Job struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Company     string
	Description string
	SourceURL   *string
	Status      Status
	FitScore    *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
