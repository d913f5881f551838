package usecase

import (
	"context"
	"errors"
	"time"

	"resume-tailor/internal/domain/application"
	"resume-tailor/internal/domain/tailor"
	"resume-tailor/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TailorUsecase interface {
	Get(ctx context.Context, userID, tailorID uuid.UUID) (tailor.Tailor, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]tailor.Tailor, error)
	Approve(ctx context.Context, userID, tailorID uuid.UUID) (application.Application, error)
	Reject(ctx context.Context, userID, tailorID uuid.UUID) error
	ListApplications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]application.Application, error)
}

type Tailors struct {
	tailors repository.TailorRepository
	apps    repository.ApplicationRepository
	logger  *zap.Logger
}

func NewTailorUsecase(tailors repository.TailorRepository, apps repository.ApplicationRepository, logger *zap.Logger) *Tailors {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tailors{tailors: tailors, apps: apps, logger: logger}
}

func (u *Tailors) Get(ctx context.Context, userID, tailorID uuid.UUID) (tailor.Tailor, error) {
	t, err := u.tailors.GetByID(ctx, userID, tailorID)
	if err != nil {
		return tailor.Tailor{}, u.mapErr("get tailor", err)
	}
	return t, nil
}

func (u *Tailors) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]tailor.Tailor, error) {
	if limit < 0 || limit > 100 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.tailors.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, u.mapErr("list tailors", err)
	}
	return items, nil
}

// Approve marks the tailor approved and records an application for its job.
func (u *Tailors) Approve(ctx context.Context, userID, tailorID uuid.UUID) (application.Application, error) {
	t, err := u.tailors.GetByID(ctx, userID, tailorID)
	if err != nil {
		return application.Application{}, u.mapErr("get tailor", err)
	}

	app := application.Application{
		ID:        uuid.New(),
		UserID:    userID,
		JobID:     t.JobID,
		TailorID:  t.ID,
		Status:    application.StatusApplied,
		AppliedAt: time.Now().UTC(),
	}
	if err := u.tailors.Review(ctx, userID, tailorID, tailor.StatusApproved, &app); err != nil {
		return application.Application{}, u.mapErr("approve tailor", err)
	}
	return app, nil
}

func (u *Tailors) Reject(ctx context.Context, userID, tailorID uuid.UUID) error {
	if err := u.tailors.Review(ctx, userID, tailorID, tailor.StatusRejected, nil); err != nil {
		return u.mapErr("reject tailor", err)
	}
	return nil
}

func (u *Tailors) ListApplications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit < 0 || limit > 100 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.apps.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, u.mapErr("list applications", err)
	}
	return items, nil
}

func (u *Tailors) mapErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrTailorNotFound):
		return ErrTailorNotFound
	case errors.Is(err, repository.ErrTailorAlreadyReview):
		return ErrTailorReviewed
	default:
		u.logger.Error(op+" failed", zap.Error(err))
		return ErrInternal
	}
}
