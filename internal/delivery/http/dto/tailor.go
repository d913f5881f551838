package dto

import (
	"time"

	"resume-tailor/internal/domain/application"
	"resume-tailor/internal/domain/tailor"

	"github.com/google/uuid"
)

type TailorResponse struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	TailoredResume string    `json:"tailored_resume"`
	CoverLetter    string    `json:"cover_letter"`
	Portfolio      string    `json:"portfolio"`
	FitScore       int       `json:"fit_score"`
	TokenUsage     int       `json:"token_usage"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewTailorResponse(t tailor.Tailor) TailorResponse {
	return TailorResponse{
		ID:             t.ID,
		JobID:          t.JobID,
		TailoredResume: t.TailoredResume,
		CoverLetter:    t.CoverLetter,
		Portfolio:      t.Portfolio,
		FitScore:       t.FitScore,
		TokenUsage:     t.TokenUsage,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	TailorID  uuid.UUID `json:"tailor_id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		TailorID:  a.TailorID,
		Status:    a.Status,
		AppliedAt: a.AppliedAt,
	}
}
