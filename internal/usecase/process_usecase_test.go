package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"resume-tailor/internal/domain/job"
	"resume-tailor/internal/domain/profile"
	"resume-tailor/internal/domain/tailor"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type processFixture struct {
	userID     uuid.UUID
	job        job.Job
	jobs       *memJobRepo
	tailors    *memTailorRepo
	feedback   *memFeedbackRepo
	content    *fakeContent
	generator  *fakeFeedbackGen
	dispatcher *inlineDispatcher
	notifier   *recordingNotifier
}

func newProcessFixture(t *testing.T, sim float64, simErr error) (*processFixture, *JobProcessor) {
	t.Helper()
	userID := uuid.New()
	j := job.Job{ID: uuid.New(), UserID: userID, Title: "Backend", Description: "Go and Postgres", Status: job.StatusPending}

	f := &processFixture{
		userID:     userID,
		job:        j,
		jobs:       newMemJobRepo(j),
		tailors:    newMemTailorRepo(),
		feedback:   newMemFeedbackRepo(),
		content:    &fakeContent{},
		generator:  &fakeFeedbackGen{},
		dispatcher: &inlineDispatcher{},
		notifier:   &recordingNotifier{},
	}
	f.jobs.tailors = f.tailors
	runner := NewFeedbackRunner(f.feedback, f.generator, nil, f.notifier, zap.NewNop())
	p := NewJobProcessor(JobProcessorDeps{
		Jobs:       f.jobs,
		Profiles:   fakeProfiles{resume: profile.Resume{UserID: userID, Content: "Go engineer"}, intentErr: ErrIntentNotFound},
		Similarity: fakeSimilarity{value: sim, err: simErr},
		Content:    f.content,
		Feedback:   runner,
		Dispatcher: f.dispatcher,
		Notifier:   f.notifier,
		Logger:     zap.NewNop(),
	})
	return f, p
}

func TestProcessJob_BelowThreshold(t *testing.T) {
	f, p := newProcessFixture(t, 0.69, nil)

	res, err := p.ProcessJob(context.Background(), f.userID, f.job.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.FitScore != 69 || res.Status != job.StatusNotAGoodFit || res.TailorID != nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if f.tailors.count() != 0 {
		t.Fatalf("expected no tailor")
	}
	if f.content.calls != 0 || f.generator.callCount() != 0 {
		t.Fatalf("no content or feedback must be generated")
	}
	stored, _ := f.jobs.GetByID(context.Background(), f.userID, f.job.ID)
	if stored.Status != job.StatusNotAGoodFit || *stored.FitScore != 69 {
		t.Fatalf("unexpected stored job: %+v", stored)
	}
}

func TestProcessJob_AtThreshold(t *testing.T) {
	f, p := newProcessFixture(t, 0.70, nil)

	res, err := p.ProcessJob(context.Background(), f.userID, f.job.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.FitScore != 70 || res.Status != job.StatusProcessed || res.TailorID == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if f.tailors.count() != 1 {
		t.Fatalf("expected exactly one tailor, got %d", f.tailors.count())
	}
	created, err := f.tailors.GetByID(context.Background(), f.userID, *res.TailorID)
	if err != nil {
		t.Fatalf("tailor lookup: %v", err)
	}
	if created.Status != tailor.StatusPendingReview || created.TokenUsage != 99 || created.FitScore != 70 {
		t.Fatalf("unexpected tailor: %+v", created)
	}

	stored, _ := f.jobs.GetByID(context.Background(), f.userID, f.job.ID)
	if stored.Status != job.StatusProcessed {
		t.Fatalf("expected processed job, got %s", stored.Status)
	}

	if f.feedback.count() != 1 {
		t.Fatalf("expected feedback row from background task, got %d", f.feedback.count())
	}
	if len(f.dispatcher.errs) != 1 || f.dispatcher.errs[0] != nil {
		t.Fatalf("unexpected task errors: %v", f.dispatcher.errs)
	}
}

func TestProcessJob_AlreadyProcessed(t *testing.T) {
	f, p := newProcessFixture(t, 0.9, nil)

	if _, err := p.ProcessJob(context.Background(), f.userID, f.job.ID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := p.ProcessJob(context.Background(), f.userID, f.job.ID); !errors.Is(err, ErrJobAlreadyProcessed) {
		t.Fatalf("expected ErrJobAlreadyProcessed, got %v", err)
	}
	if f.tailors.count() != 1 {
		t.Fatalf("reprocessing must not create another tailor")
	}
}

func TestProcessJob_StoreFailureLeavesNoTailor(t *testing.T) {
	f, p := newProcessFixture(t, 0.9, nil)
	f.jobs.completeErrs = []error{errors.New("conn reset")}

	if _, err := p.ProcessJob(context.Background(), f.userID, f.job.ID); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if f.tailors.count() != 0 {
		t.Fatalf("failed transition must not leave a tailor, got %d", f.tailors.count())
	}
	stored, _ := f.jobs.GetByID(context.Background(), f.userID, f.job.ID)
	if stored.Status != job.StatusPending {
		t.Fatalf("job must stay pending, got %s", stored.Status)
	}

	res, err := p.ProcessJob(context.Background(), f.userID, f.job.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Status != job.StatusProcessed || f.tailors.count() != 1 {
		t.Fatalf("expected one tailor after retry, got status=%s tailors=%d", res.Status, f.tailors.count())
	}
}

func TestProcessJob_ConcurrentTriggersCreateOneTailor(t *testing.T) {
	f, p := newProcessFixture(t, 0.9, nil)
	gate := &sync.WaitGroup{}
	gate.Add(2)
	f.content.gate = gate

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.ProcessJob(context.Background(), f.userID, f.job.ID)
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrJobAlreadyProcessed):
			conflict++
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("expected one success and one conflict, got %v", errs)
	}
	if f.tailors.count() != 1 {
		t.Fatalf("expected exactly one tailor, got %d", f.tailors.count())
	}
}

func TestProcessJob_SimilarityFailureKeepsJobPending(t *testing.T) {
	f, p := newProcessFixture(t, 0, errors.New("embedding quota"))

	_, err := p.ProcessJob(context.Background(), f.userID, f.job.ID)
	if !errors.Is(err, ErrUpstreamAI) {
		t.Fatalf("expected ErrUpstreamAI, got %v", err)
	}
	stored, _ := f.jobs.GetByID(context.Background(), f.userID, f.job.ID)
	if stored.Status != job.StatusPending || stored.FitScore != nil {
		t.Fatalf("job must stay pending: %+v", stored)
	}
}

func TestProcessJob_ContentFailureKeepsJobPending(t *testing.T) {
	f, p := newProcessFixture(t, 0.8, nil)
	f.content.err = errors.New("model overloaded")

	if _, err := p.ProcessJob(context.Background(), f.userID, f.job.ID); !errors.Is(err, ErrUpstreamAI) {
		t.Fatalf("expected ErrUpstreamAI, got %v", err)
	}
	if f.tailors.count() != 0 {
		t.Fatalf("no tailor expected")
	}
	stored, _ := f.jobs.GetByID(context.Background(), f.userID, f.job.ID)
	if stored.Status != job.StatusPending {
		t.Fatalf("job must stay pending, got %s", stored.Status)
	}
}

func TestProcessJob_OwnershipAndResume(t *testing.T) {
	f, p := newProcessFixture(t, 0.9, nil)

	if _, err := p.ProcessJob(context.Background(), uuid.New(), f.job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for another user, got %v", err)
	}

	p.profiles = fakeProfiles{resumeErr: ErrResumeMissing}
	if _, err := p.ProcessJob(context.Background(), f.userID, f.job.ID); !errors.Is(err, ErrResumeMissing) {
		t.Fatalf("expected ErrResumeMissing, got %v", err)
	}
}

func TestProcessJob_PassesIntent(t *testing.T) {
	f, p := newProcessFixture(t, 0.9, nil)
	p.profiles = fakeProfiles{
		resume: profile.Resume{Content: "Go engineer"},
		intent: profile.Intent{DesiredRoles: []string{"Staff Engineer"}, WorkMode: "remote"},
	}

	if _, err := p.ProcessJob(context.Background(), f.userID, f.job.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.content.lastIntent.WorkMode != "remote" || len(f.content.lastIntent.DesiredRoles) != 1 {
		t.Fatalf("intent not forwarded: %+v", f.content.lastIntent)
	}
}
