package usecase

import (
	"context"
	"errors"
	"fmt"

	"resume-tailor/internal/domain/job"
	"resume-tailor/internal/domain/profile"
	"resume-tailor/internal/domain/tailor"
	"resume-tailor/internal/repository"
	"resume-tailor/internal/scoring"
	"resume-tailor/internal/tailoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventJobProcessed = "job_processed"

type ProcessResult struct {
	JobID    uuid.UUID
	FitScore int
	Status   job.Status
	TailorID *uuid.UUID
}

type JobProcessUsecase interface {
	ProcessJob(ctx context.Context, userID, jobID uuid.UUID) (ProcessResult, error)
}

type profileReader interface {
	GetResume(ctx context.Context, userID uuid.UUID) (profile.Resume, error)
	GetIntent(ctx context.Context, userID uuid.UUID) (profile.Intent, error)
}

// JobProcessor scores a pending job against the user's master resume. Jobs
// scoring at least scoring.FitThreshold get tailored content and a feedback
// task queued in the background.
type JobProcessor struct {
	jobs       repository.JobRepository
	profiles   profileReader
	similarity SimilarityScorer
	content    ContentGenerator
	feedback   *FeedbackRunner
	dispatcher Dispatcher
	notifier   Notifier
	logger     *zap.Logger
}

type JobProcessorDeps struct {
	Jobs       repository.JobRepository
	Profiles   profileReader
	Similarity SimilarityScorer
	Content    ContentGenerator
	Feedback   *FeedbackRunner
	Dispatcher Dispatcher
	Notifier   Notifier
	Logger     *zap.Logger
}

func NewJobProcessor(d JobProcessorDeps) *JobProcessor {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	return &JobProcessor{
		jobs:       d.Jobs,
		profiles:   d.Profiles,
		similarity: d.Similarity,
		content:    d.Content,
		feedback:   d.Feedback,
		dispatcher: d.Dispatcher,
		notifier:   d.Notifier,
		logger:     d.Logger.Named("process"),
	}
}

// ProcessJob runs the fit gate for a pending job. An AI failure before any
// state change leaves the job pending and returns ErrUpstreamAI.
func (p *JobProcessor) ProcessJob(ctx context.Context, userID, jobID uuid.UUID) (ProcessResult, error) {
	log := p.logger.With(zap.String("user_id", userID.String()), zap.String("job_id", jobID.String()))

	j, err := p.jobs.GetByID(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ProcessResult{}, ErrJobNotFound
		}
		log.Error("load job failed", zap.Error(err))
		return ProcessResult{}, ErrInternal
	}
	if j.Status != job.StatusPending {
		return ProcessResult{}, ErrJobAlreadyProcessed
	}

	resume, err := p.profiles.GetResume(ctx, userID)
	if err != nil {
		return ProcessResult{}, err
	}
	intent, err := p.profiles.GetIntent(ctx, userID)
	if err != nil && !errors.Is(err, ErrIntentNotFound) {
		log.Warn("load intent failed, continuing without it", zap.Error(err))
	}

	sim, err := p.similarity.Similarity(ctx, resume.Content, j.Description)
	if err != nil {
		log.Warn("similarity failed", zap.Error(err))
		return ProcessResult{}, fmt.Errorf("%w: %v", ErrUpstreamAI, err)
	}
	fit := scoring.FitScore(sim)
	log = log.With(zap.Int("fit_score", fit))

	if fit < scoring.FitThreshold {
		if err := p.markScored(ctx, userID, jobID, job.StatusNotAGoodFit, fit); err != nil {
			return ProcessResult{}, err
		}
		log.Info("job below fit threshold")
		res := ProcessResult{JobID: jobID, FitScore: fit, Status: job.StatusNotAGoodFit}
		p.notifier.NotifyUser(userID, EventJobProcessed, res)
		return res, nil
	}

	content, err := p.content.Generate(ctx, resume.Content, j.Description, tailoring.Intent{
		DesiredRoles: intent.DesiredRoles,
		Companies:    intent.Companies,
		Locations:    intent.Locations,
		WorkMode:     intent.WorkMode,
	})
	if err != nil {
		log.Warn("content generation failed", zap.Error(err))
		return ProcessResult{}, fmt.Errorf("%w: %v", ErrUpstreamAI, err)
	}

	t := tailor.Tailor{
		ID:             uuid.New(),
		JobID:          jobID,
		UserID:         userID,
		TailoredResume: content.TailoredResume,
		CoverLetter:    content.CoverLetter,
		Portfolio:      content.Portfolio,
		FitScore:       fit,
		TokenUsage:     content.TokenUsage,
		Status:         tailor.StatusPendingReview,
	}
	if err := p.jobs.CompleteWithTailor(ctx, t); err != nil {
		return ProcessResult{}, p.storeErr(jobID, err)
	}

	p.dispatchFeedback(FeedbackInput{
		UserID:         userID,
		JobID:          jobID,
		TailorID:       t.ID,
		Resume:         resume.Content,
		JobDescription: j.Description,
		Semantic:       sim * 100,
	})

	log.Info("job processed", zap.String("tailor_id", t.ID.String()), zap.Int("token_usage", t.TokenUsage))
	tailorID := t.ID
	res := ProcessResult{JobID: jobID, FitScore: fit, Status: job.StatusProcessed, TailorID: &tailorID}
	p.notifier.NotifyUser(userID, EventJobProcessed, res)
	return res, nil
}

func (p *JobProcessor) markScored(ctx context.Context, userID, jobID uuid.UUID, status job.Status, fit int) error {
	if err := p.jobs.MarkScored(ctx, userID, jobID, status, fit); err != nil {
		return p.storeErr(jobID, err)
	}
	return nil
}

// storeErr maps a failed job transition. A job claimed by a concurrent
// trigger is a conflict; anything else leaves the job pending for a retry.
func (p *JobProcessor) storeErr(jobID uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrJobNotPending) {
		return ErrJobAlreadyProcessed
	}
	p.logger.Error("update job status failed", zap.String("job_id", jobID.String()), zap.Error(err))
	return ErrInternal
}

func (p *JobProcessor) dispatchFeedback(in FeedbackInput) {
	if p.feedback == nil || p.dispatcher == nil {
		return
	}
	name := "feedback:" + in.TailorID.String()
	if !p.dispatcher.TrySubmit(name, func(ctx context.Context) error {
		return p.feedback.Run(ctx, in)
	}) {
		p.logger.Warn("feedback task not queued", zap.String("tailor_id", in.TailorID.String()))
	}
}
