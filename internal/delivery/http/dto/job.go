package dto

import (
	"time"

	"resume-tailor/internal/domain/job"
	"resume-tailor/internal/usecase"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

type ImportJobRequest struct {
	URL string `json:"url"`
}

type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	SourceURL   *string   `json:"source_url"`
	Status      string    `json:"status"`
	FitScore    *int      `json:"fit_score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Description: j.Description,
		SourceURL:   j.SourceURL,
		Status:      string(j.Status),
		FitScore:    j.FitScore,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

type ProcessJobResponse struct {
	JobID    uuid.UUID  `json:"job_id"`
	FitScore int        `json:"fit_score"`
	Status   string     `json:"status"`
	TailorID *uuid.UUID `json:"tailor_id,omitempty"`
}

func NewProcessJobResponse(r usecase.ProcessResult) ProcessJobResponse {
	return ProcessJobResponse{
		JobID:    r.JobID,
		FitScore: r.FitScore,
		Status:   string(r.Status),
		TailorID: r.TailorID,
	}
}

// ProcessFailedResponse is returned with 502 when the AI provider fails.
type ProcessFailedResponse struct {
	Status string `json:"status"`
}
