package tailor

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

// Tailor is the generated resume, cover letter and portfolio for one job.
type Tailor struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	UserID         uuid.UUID
	TailoredResume string
	CoverLetter    string
	Portfolio      string
	FitScore       int
	TokenUsage     int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
