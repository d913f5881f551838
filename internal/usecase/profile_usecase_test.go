package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"resume-tailor/internal/cache"
	"resume-tailor/internal/domain/feedback"
	"resume-tailor/internal/domain/profile"
	"resume-tailor/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memResumeRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]profile.Resume
	reads int
}

func (m *memResumeRepo) Upsert(_ context.Context, r profile.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[uuid.UUID]profile.Resume{}
	}
	m.rows[r.UserID] = r
	return nil
}

func (m *memResumeRepo) Get(_ context.Context, userID uuid.UUID) (profile.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	r, ok := m.rows[userID]
	if !ok {
		return profile.Resume{}, repository.ErrResumeNotFound
	}
	return r, nil
}

type memIntentRepo struct {
	rows map[uuid.UUID]profile.Intent
}

func (m *memIntentRepo) Upsert(_ context.Context, in profile.Intent) error {
	if m.rows == nil {
		m.rows = map[uuid.UUID]profile.Intent{}
	}
	m.rows[in.UserID] = in
	return nil
}

func (m *memIntentRepo) Get(_ context.Context, userID uuid.UUID) (profile.Intent, error) {
	in, ok := m.rows[userID]
	if !ok {
		return profile.Intent{}, repository.ErrIntentNotFound
	}
	return in, nil
}

func TestProfileUsecase_ResumeCachedAndInvalidated(t *testing.T) {
	resumes := &memResumeRepo{}
	uc := NewProfileUsecase(resumes, &memIntentRepo{}, cache.NewTTL[any](cache.Options{}), zap.NewNop())
	userID := uuid.New()

	if _, err := uc.GetResume(context.Background(), userID); !errors.Is(err, ErrResumeMissing) {
		t.Fatalf("expected ErrResumeMissing, got %v", err)
	}

	if _, err := uc.SaveResume(context.Background(), userID, "v1", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	for i := 0; i < 3; i++ {
		r, err := uc.GetResume(context.Background(), userID)
		if err != nil || r.Content != "v1" {
			t.Fatalf("get: %v %+v", err, r)
		}
	}
	if resumes.reads != 2 {
		t.Fatalf("expected cached reads, repo reads=%d", resumes.reads)
	}

	if _, err := uc.SaveResume(context.Background(), userID, "v2", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	r, _ := uc.GetResume(context.Background(), userID)
	if r.Content != "v2" {
		t.Fatalf("expected invalidated cache, got %q", r.Content)
	}
}

func TestProfileUsecase_SaveIntent(t *testing.T) {
	uc := NewProfileUsecase(&memResumeRepo{}, &memIntentRepo{}, nil, zap.NewNop())
	userID := uuid.New()

	if _, err := uc.SaveIntent(context.Background(), profile.Intent{UserID: userID, WorkMode: "moon"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	in, err := uc.SaveIntent(context.Background(), profile.Intent{
		UserID:       userID,
		DesiredRoles: []string{"Backend", " backend ", ""},
		WorkMode:     " Remote ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(in.DesiredRoles) != 1 || in.WorkMode != "remote" {
		t.Fatalf("unexpected intent: %+v", in)
	}
	got, err := uc.GetIntent(context.Background(), userID)
	if err != nil || got.WorkMode != "remote" {
		t.Fatalf("get intent: %v %+v", err, got)
	}
}

func TestFeedbackUsecase_ValidatesFilter(t *testing.T) {
	uc := NewFeedbackUsecase(newMemFeedbackRepo(), nil, zap.NewNop())
	minP, maxP := 80, 20
	if _, err := uc.List(context.Background(), uuid.New(), feedback.Filter{MinProbability: &minP, MaxProbability: &maxP}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	bad := 101
	if _, err := uc.List(context.Background(), uuid.New(), feedback.Filter{MaxProbability: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.GetByTailor(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrFeedbackNotFound) {
		t.Fatalf("expected ErrFeedbackNotFound, got %v", err)
	}
}
