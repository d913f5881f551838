package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-tailor/internal/ai/gemini"
	"resume-tailor/internal/cache"
	"resume-tailor/internal/config"
	"resume-tailor/internal/database"
	"resume-tailor/internal/database/migration"
	dbpostgres "resume-tailor/internal/database/postgres"
	"resume-tailor/internal/jdfetch"
	"resume-tailor/internal/repository"
	"resume-tailor/internal/resumetext"
	"resume-tailor/internal/scoring"
	"resume-tailor/internal/tailoring"
	"resume-tailor/internal/usecase"
	"resume-tailor/internal/worker"
	"resume-tailor/internal/ws"
	"resume-tailor/migrations"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB     database.DB
	Redis  *cache.Redis
	Caches *cache.Instances
	Pool   *worker.Pool
	Hub    *ws.Hub

	Profiles  *usecase.Profile
	Jobs      *usecase.Jobs
	Processor *usecase.JobProcessor
	Tailors   *usecase.Tailors
	Feedback  *usecase.Feedback

	Similarity *scoring.SimilarityScorer
	Scorer     *scoring.FeedbackGenerator
}

// NewContainer connects to postgres, applies migrations and wires the
// usecases. Background workers are not started; call Start.
func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := resumetext.SetLicense(cfg.Import.UnidocLicense); err != nil {
		log.Warn("unidoc license rejected, pdf extraction may be limited", zap.Error(err))
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	applied, err := migration.Runner{FS: migrations.FS, Logger: log}.Run(ctx, db.SQLDB())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if len(applied) > 0 {
		log.Info("migrations applied", zap.Int("count", len(applied)))
	}

	aiClient, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:         cfg.AI.GeminiAPIKey,
		Model:          cfg.AI.Model,
		EmbeddingModel: cfg.AI.EmbeddingModel,
		MaxLogLength:   cfg.AI.MaxLogLength,
	}, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Redis:  cache.NewRedis(cfg.Redis, log),
		Caches: cache.NewInstances(),
		Hub:    ws.NewHub(log),
	}

	c.Pool = worker.NewPool(cfg.Feedback.Workers, cfg.Feedback.QueueSize, log)
	c.Pool.SetRateLimit(cfg.Feedback.RatePerSecond)

	jobRepo := repository.NewPostgresJobRepository(db)
	tailorRepo := repository.NewPostgresTailorRepository(db)
	feedbackRepo := repository.NewPostgresFeedbackRepository(db)
	appRepo := repository.NewPostgresApplicationRepository(db)

	c.Similarity = scoring.NewSimilarityScorer(aiClient, c.Caches.AI)
	c.Scorer = scoring.NewFeedbackGenerator(aiClient, c.Caches.AI, log)
	content := tailoring.NewGenerator(aiClient, c.Caches.AI, log)

	c.Profiles = usecase.NewProfileUsecase(
		repository.NewPostgresResumeRepository(db),
		repository.NewPostgresIntentRepository(db),
		c.Caches.UserData,
		log,
	)
	c.Jobs = usecase.NewJobUsecase(jobRepo, jdfetch.New(jdfetch.Options{Headless: cfg.Import.Headless}, log), log)
	c.Tailors = usecase.NewTailorUsecase(tailorRepo, appRepo, log)
	c.Feedback = usecase.NewFeedbackUsecase(feedbackRepo, c.Caches.Analytics, log)
	c.Processor = usecase.NewJobProcessor(usecase.JobProcessorDeps{
		Jobs:       jobRepo,
		Profiles:   c.Profiles,
		Similarity: c.Similarity,
		Content:    content,
		Feedback:   usecase.NewFeedbackRunner(feedbackRepo, c.Scorer, c.Redis, c.Hub, log),
		Dispatcher: c.Pool,
		Notifier:   c.Hub,
		Logger:     log,
	})

	return c, nil
}

// Start launches cache sweeps, the feedback workers and the websocket hub.
func (c *Container) Start(ctx context.Context) {
	c.Caches.Start()
	c.Pool.Start(ctx)
	go c.Hub.Run()
}

// Close drains queued feedback tasks within ctx, then releases resources.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Pool != nil {
		if err := c.Pool.Close(ctx); err != nil && !errors.Is(err, worker.ErrPoolClosed) {
			errs = append(errs, fmt.Errorf("drain worker pool: %w", err))
		}
	}
	c.Hub.Stop()
	c.Caches.Close()
	if err := c.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
