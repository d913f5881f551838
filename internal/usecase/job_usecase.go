package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"resume-tailor/internal/domain/job"
	"resume-tailor/internal/jdfetch"
	"resume-tailor/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxDescriptionChars = 50_000

type CreateJobParams struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Description string
	SourceURL   *string
}

type ListJobsParams struct {
	UserID uuid.UUID
	Status string
	Limit  int
	Offset int
}

type JobUsecase interface {
	Create(ctx context.Context, p CreateJobParams) (job.Job, error)
	Import(ctx context.Context, userID uuid.UUID, rawURL string) (job.Job, error)
	Get(ctx context.Context, userID, jobID uuid.UUID) (job.Job, error)
	List(ctx context.Context, p ListJobsParams) ([]job.Job, error)
}

type JDFetcher interface {
	Fetch(ctx context.Context, rawURL string) (jdfetch.Posting, error)
}

type Jobs struct {
	jobs    repository.JobRepository
	fetcher JDFetcher
	logger  *zap.Logger
}

func NewJobUsecase(jobs repository.JobRepository, fetcher JDFetcher, logger *zap.Logger) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{jobs: jobs, fetcher: fetcher, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, p CreateJobParams) (job.Job, error) {
	title := strings.TrimSpace(p.Title)
	desc := strings.TrimSpace(p.Description)
	if p.UserID == uuid.Nil || title == "" || desc == "" || len([]rune(desc)) > maxDescriptionChars {
		return job.Job{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	j := job.Job{
		ID:          uuid.New(),
		UserID:      p.UserID,
		Title:       title,
		Company:     strings.TrimSpace(p.Company),
		Description: desc,
		SourceURL:   p.SourceURL,
		Status:      job.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.jobs.Create(ctx, j); err != nil {
		u.logger.Error("create job failed", zap.String("user_id", p.UserID.String()), zap.Error(err))
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) Import(ctx context.Context, userID uuid.UUID, rawURL string) (job.Job, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return job.Job{}, ErrInvalidInput
	}
	if u.fetcher == nil {
		return job.Job{}, ErrImportFailed
	}

	posting, err := u.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		u.logger.Warn("import job description failed", zap.String("url", rawURL), zap.Error(err))
		return job.Job{}, ErrImportFailed
	}

	title := posting.Title
	if strings.TrimSpace(title) == "" {
		title = parsed.Host
	}
	return u.Create(ctx, CreateJobParams{
		UserID:      userID,
		Title:       title,
		Company:     posting.Company,
		Description: posting.Description,
		SourceURL:   &rawURL,
	})
}

func (u *Jobs) Get(ctx context.Context, userID, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		u.logger.Error("get job failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) List(ctx context.Context, p ListJobsParams) ([]job.Job, error) {
	if p.Limit < 0 || p.Limit > 100 || p.Offset < 0 {
		return nil, ErrInvalidInput
	}
	var status *job.Status
	if s := strings.TrimSpace(p.Status); s != "" {
		st := job.Status(s)
		if !st.Valid() {
			return nil, ErrInvalidInput
		}
		status = &st
	}

	items, err := u.jobs.List(ctx, p.UserID, status, p.Limit, p.Offset)
	if err != nil {
		u.logger.Error("list jobs failed", zap.String("user_id", p.UserID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}
