package usecase

import (
	"context"
	"fmt"
	"time"

	"resume-tailor/internal/domain/feedback"
	"resume-tailor/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventFeedbackReady = "feedback_ready"

	feedbackLockTTL     = 3 * time.Minute
	feedbackTaskTimeout = 2 * time.Minute
)

type FeedbackInput struct {
	UserID         uuid.UUID
	JobID          uuid.UUID
	TailorID       uuid.UUID
	Resume         string
	JobDescription string
	Semantic       float64
}

// FeedbackRunner produces the single feedback row for a tailor.
type FeedbackRunner struct {
	feedback  repository.FeedbackRepository
	generator FeedbackGenerator
	locker    Locker
	notifier  Notifier
	logger    *zap.Logger
}

func NewFeedbackRunner(repo repository.FeedbackRepository, generator FeedbackGenerator, locker Locker, notifier Notifier, logger *zap.Logger) *FeedbackRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &FeedbackRunner{
		feedback:  repo,
		generator: generator,
		locker:    locker,
		notifier:  notifier,
		logger:    logger.Named("feedback_task"),
	}
}

func feedbackLockKey(tailorID uuid.UUID) string {
	return "feedback:lock:" + tailorID.String()
}

// Run is a no-op when feedback already exists for the tailor or another
// worker holds its lock.
func (r *FeedbackRunner) Run(ctx context.Context, in FeedbackInput) error {
	ctx, cancel := context.WithTimeout(ctx, feedbackTaskTimeout)
	defer cancel()

	log := r.logger.With(zap.String("tailor_id", in.TailorID.String()))

	exists, err := r.feedback.ExistsByTailorID(ctx, in.TailorID)
	if err != nil {
		return fmt.Errorf("check feedback exists: %w", err)
	}
	if exists {
		log.Debug("feedback already exists")
		return nil
	}

	if r.locker != nil && r.locker.Available() {
		key := feedbackLockKey(in.TailorID)
		ok, err := r.locker.SetIfNotExists(ctx, key, "1", feedbackLockTTL)
		switch {
		case err != nil:
			log.Warn("feedback lock unavailable, continuing", zap.Error(err))
		case !ok:
			log.Debug("feedback lock held elsewhere")
			return nil
		default:
			defer func() {
				_ = r.locker.Delete(context.Background(), key)
			}()
		}
	}

	scores := r.generator.GenerateFeedback(ctx, in.Resume, in.JobDescription, in.Semantic)

	f := feedback.Feedback{
		ID:                       uuid.New(),
		UserID:                   in.UserID,
		JobID:                    in.JobID,
		TailorID:                 in.TailorID,
		SelectionProbability:     scores.SelectionProbability,
		SemanticSimilarityScore:  scores.SemanticSimilarityScore,
		SkillCoverageScore:       scores.SkillCoverageScore,
		ExperienceAlignmentScore: scores.ExperienceAlignmentScore,
		Strengths:                scores.Strengths,
		Gaps:                     scores.Gaps,
		Recommendations:          scores.Recommendations,
		ModelVersion:             scores.ModelVersion,
		CreatedAt:                time.Now().UTC(),
	}
	inserted, err := r.feedback.Insert(ctx, f)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	if !inserted {
		log.Debug("feedback inserted concurrently")
		return nil
	}

	log.Info("feedback stored",
		zap.Int("selection_probability", f.SelectionProbability),
		zap.Bool("degraded", scores.Degraded),
	)
	r.notifier.NotifyUser(in.UserID, EventFeedbackReady, map[string]any{
		"tailor_id":             in.TailorID,
		"job_id":                in.JobID,
		"selection_probability": f.SelectionProbability,
	})
	return nil
}
