package usecase

import (
	"context"
	"sync"
	"time"

	"resume-tailor/internal/domain/application"
	"resume-tailor/internal/domain/feedback"
	"resume-tailor/internal/domain/job"
	"resume-tailor/internal/domain/profile"
	"resume-tailor/internal/domain/tailor"
	"resume-tailor/internal/repository"
	"resume-tailor/internal/scoring"
	"resume-tailor/internal/tailoring"
	"resume-tailor/internal/worker"

	"github.com/google/uuid"
)

type memJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]job.Job

	// tailors receives rows written by CompleteWithTailor.
	tailors *memTailorRepo
	// completeErrs are returned, in order, by the next CompleteWithTailor calls.
	completeErrs []error
}

func newMemJobRepo(jobs ...job.Job) *memJobRepo {
	m := &memJobRepo{jobs: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *memJobRepo) Create(_ context.Context, j job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
	return nil
}

func (m *memJobRepo) GetByID(_ context.Context, userID, jobID uuid.UUID) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok || j.UserID != userID {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *memJobRepo) List(_ context.Context, userID uuid.UUID, status *job.Status, _, _ int) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]job.Job, 0)
	for _, j := range m.jobs {
		if j.UserID != userID || (status != nil && j.Status != *status) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *memJobRepo) MarkScored(_ context.Context, userID, jobID uuid.UUID, status job.Status, fit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok || j.UserID != userID || j.Status != job.StatusPending {
		return repository.ErrJobNotPending
	}
	j.Status = status
	j.FitScore = &fit
	m.jobs[jobID] = j
	return nil
}

func (m *memJobRepo) CompleteWithTailor(_ context.Context, t tailor.Tailor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.completeErrs) > 0 {
		err := m.completeErrs[0]
		m.completeErrs = m.completeErrs[1:]
		return err
	}
	j, ok := m.jobs[t.JobID]
	if !ok || j.UserID != t.UserID || j.Status != job.StatusPending {
		return repository.ErrJobNotPending
	}
	fit := t.FitScore
	j.Status = job.StatusProcessed
	j.FitScore = &fit
	m.jobs[t.JobID] = j
	if m.tailors != nil {
		_ = m.tailors.Create(context.Background(), t)
	}
	return nil
}

type memTailorRepo struct {
	mu      sync.Mutex
	tailors map[uuid.UUID]tailor.Tailor
	apps    []application.Application
}

func newMemTailorRepo() *memTailorRepo {
	return &memTailorRepo{tailors: map[uuid.UUID]tailor.Tailor{}}
}

func (m *memTailorRepo) Create(_ context.Context, t tailor.Tailor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tailors[t.ID] = t
	return nil
}

func (m *memTailorRepo) GetByID(_ context.Context, userID, id uuid.UUID) (tailor.Tailor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tailors[id]
	if !ok || t.UserID != userID {
		return tailor.Tailor{}, repository.ErrTailorNotFound
	}
	return t, nil
}

func (m *memTailorRepo) List(_ context.Context, userID uuid.UUID, _, _ int) ([]tailor.Tailor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tailor.Tailor, 0)
	for _, t := range m.tailors {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTailorRepo) Review(_ context.Context, userID, id uuid.UUID, status tailor.Status, app *application.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tailors[id]
	if !ok || t.UserID != userID {
		return repository.ErrTailorNotFound
	}
	if t.Status != tailor.StatusPendingReview {
		return repository.ErrTailorAlreadyReview
	}
	t.Status = status
	m.tailors[id] = t
	if app != nil {
		m.apps = append(m.apps, *app)
	}
	return nil
}

func (m *memTailorRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tailors)
}

type memFeedbackRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]feedback.Feedback
}

func newMemFeedbackRepo() *memFeedbackRepo {
	return &memFeedbackRepo{rows: map[uuid.UUID]feedback.Feedback{}}
}

func (m *memFeedbackRepo) ExistsByTailorID(_ context.Context, tailorID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[tailorID]
	return ok, nil
}

func (m *memFeedbackRepo) Insert(_ context.Context, f feedback.Feedback) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[f.TailorID]; ok {
		return false, nil
	}
	m.rows[f.TailorID] = f
	return true, nil
}

func (m *memFeedbackRepo) GetByTailorID(_ context.Context, userID, tailorID uuid.UUID) (feedback.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.rows[tailorID]
	if !ok || f.UserID != userID {
		return feedback.Feedback{}, repository.ErrFeedbackNotFound
	}
	return f, nil
}

func (m *memFeedbackRepo) List(_ context.Context, userID uuid.UUID, _ feedback.Filter) ([]feedback.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]feedback.Feedback, 0)
	for _, f := range m.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFeedbackRepo) Stats(_ context.Context, userID uuid.UUID) (feedback.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s feedback.Stats
	for _, f := range m.rows {
		if f.UserID == userID {
			s.Total++
		}
	}
	return s, nil
}

func (m *memFeedbackRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type fakeProfiles struct {
	resume    profile.Resume
	resumeErr error
	intent    profile.Intent
	intentErr error
}

func (f fakeProfiles) GetResume(context.Context, uuid.UUID) (profile.Resume, error) {
	return f.resume, f.resumeErr
}

func (f fakeProfiles) GetIntent(context.Context, uuid.UUID) (profile.Intent, error) {
	return f.intent, f.intentErr
}

type fakeSimilarity struct {
	value float64
	err   error
}

func (f fakeSimilarity) Similarity(context.Context, string, string) (float64, error) {
	return f.value, f.err
}

type fakeContent struct {
	mu         sync.Mutex
	calls      int
	lastIntent tailoring.Intent
	err        error

	// gate, when set, holds every caller until all expected callers arrived.
	gate *sync.WaitGroup
}

func (f *fakeContent) Generate(_ context.Context, _, _ string, intent tailoring.Intent) (tailoring.Content, error) {
	f.mu.Lock()
	f.calls++
	f.lastIntent = intent
	err, gate := f.err, f.gate
	f.mu.Unlock()

	if gate != nil {
		gate.Done()
		gate.Wait()
	}
	if err != nil {
		return tailoring.Content{}, err
	}
	return tailoring.Content{TailoredResume: "resume", CoverLetter: "letter", Portfolio: "portfolio", TokenUsage: 99}, nil
}

type fakeFeedbackGen struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeFeedbackGen) GenerateFeedback(_ context.Context, _, _ string, semantic float64) scoring.Scores {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return scoring.Scores{SelectionProbability: scoring.SelectionProbability(semantic, 80, 50), SemanticSimilarityScore: int(semantic), ModelVersion: "fake"}
}

func (f *fakeFeedbackGen) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// inlineDispatcher runs tasks synchronously.
type inlineDispatcher struct {
	errs []error
}

func (d *inlineDispatcher) TrySubmit(_ string, t worker.Task) bool {
	d.errs = append(d.errs, t(context.Background()))
	return true
}

type fakeLocker struct {
	available bool
	held      map[string]bool
	err       error
	deleted   []string
}

func (l *fakeLocker) Available() bool { return l.available }

func (l *fakeLocker) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.held[key] {
		return false, nil
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeLocker) Delete(_ context.Context, key string) error {
	delete(l.held, key)
	l.deleted = append(l.deleted, key)
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) NotifyUser(_ uuid.UUID, event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}
