package usecase

import (
	"context"
	"errors"

	"resume-tailor/internal/cache"
	"resume-tailor/internal/domain/feedback"
	"resume-tailor/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackUsecase interface {
	List(ctx context.Context, userID uuid.UUID, filter feedback.Filter) ([]feedback.Feedback, error)
	GetByTailor(ctx context.Context, userID, tailorID uuid.UUID) (feedback.Feedback, error)
	Stats(ctx context.Context, userID uuid.UUID) (feedback.Stats, error)
}

type Feedback struct {
	repo      repository.FeedbackRepository
	analytics *cache.TTL[any]
	logger    *zap.Logger
}

func NewFeedbackUsecase(repo repository.FeedbackRepository, analytics *cache.TTL[any], logger *zap.Logger) *Feedback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feedback{repo: repo, analytics: analytics, logger: logger}
}

func (u *Feedback) List(ctx context.Context, userID uuid.UUID, filter feedback.Filter) ([]feedback.Feedback, error) {
	if filter.Skip < 0 || filter.Limit < 0 || filter.Limit > 100 {
		return nil, ErrInvalidInput
	}
	if !validProbability(filter.MinProbability) || !validProbability(filter.MaxProbability) {
		return nil, ErrInvalidInput
	}
	if filter.MinProbability != nil && filter.MaxProbability != nil && *filter.MinProbability > *filter.MaxProbability {
		return nil, ErrInvalidInput
	}

	items, err := u.repo.List(ctx, userID, filter)
	if err != nil {
		u.logger.Error("list feedback failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Feedback) GetByTailor(ctx context.Context, userID, tailorID uuid.UUID) (feedback.Feedback, error) {
	f, err := u.repo.GetByTailorID(ctx, userID, tailorID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return feedback.Feedback{}, ErrFeedbackNotFound
		}
		u.logger.Error("get feedback failed", zap.String("tailor_id", tailorID.String()), zap.Error(err))
		return feedback.Feedback{}, ErrInternal
	}
	return f, nil
}

// Stats is served from the analytics cache for up to its default TTL.
func (u *Feedback) Stats(ctx context.Context, userID uuid.UUID) (feedback.Stats, error) {
	s, err := cache.GetOrCompute(ctx, storeOf(u.analytics), "analytics:feedback:"+userID.String(), 0, func(ctx context.Context) (feedback.Stats, error) {
		return u.repo.Stats(ctx, userID)
	})
	if err != nil {
		u.logger.Error("feedback stats failed", zap.String("user_id", userID.String()), zap.Error(err))
		return feedback.Stats{}, ErrInternal
	}
	return s, nil
}

func validProbability(p *int) bool {
	return p == nil || (*p >= 0 && *p <= 100)
}
