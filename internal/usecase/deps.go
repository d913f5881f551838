package usecase

import (
	"context"
	"time"

	"resume-tailor/internal/scoring"
	"resume-tailor/internal/tailoring"
	"resume-tailor/internal/worker"

	"github.com/google/uuid"
)

type SimilarityScorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, resume, jobDescription string, intent tailoring.Intent) (tailoring.Content, error)
}

type FeedbackGenerator interface {
	GenerateFeedback(ctx context.Context, resume, jobDescription string, semantic float64) scoring.Scores
}

// Dispatcher hands a task to a background queue without blocking.
type Dispatcher interface {
	TrySubmit(name string, t worker.Task) bool
}

// Locker is a best-effort distributed lock. When Available reports false the
// caller proceeds unlocked.
type Locker interface {
	Available() bool
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Notifier pushes an event to a user's open connections.
type Notifier interface {
	NotifyUser(userID uuid.UUID, event string, data any)
}

type nopNotifier struct{}

func (nopNotifier) NotifyUser(uuid.UUID, string, any) {}
