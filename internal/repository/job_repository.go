package repository

import (
	"context"
	"time"

	"resume-tailor/internal/database"
	"resume-tailor/internal/domain/job"
	"resume-tailor/internal/domain/tailor"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) error
	GetByID(ctx context.Context, userID, jobID uuid.UUID) (job.Job, error)
	List(ctx context.Context, userID uuid.UUID, status *job.Status, limit, offset int) ([]job.Job, error)
	// MarkScored moves a pending job to status with its fit score. It returns
	// ErrJobNotPending when the job already left the pending state.
	MarkScored(ctx context.Context, userID, jobID uuid.UUID, status job.Status, fitScore int) error
	// CompleteWithTailor claims the pending job as processed with t.FitScore
	// and inserts t in the same transaction. It returns ErrJobNotPending when
	// the job was already claimed; nothing is written in that case.
	CompleteWithTailor(ctx context.Context, t tailor.Tailor) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, user_id, title, company, description, source_url, status, fit_score, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = now
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		j.ID, j.UserID, j.Title, j.Company, j.Description, j.SourceURL,
		string(j.Status), j.FitScore, j.CreatedAt, j.UpdatedAt,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, userID, jobID uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`,
		jobID, userID,
	)
	j, err := scanJob(row)
	if err != nil {
		if database.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, userID uuid.UUID, status *job.Status, limit, offset int) ([]job.Job, error) {
	limit, offset = normalizePage(limit, offset)

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		userID, statusArg, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) MarkScored(ctx context.Context, userID, jobID uuid.UUID, status job.Status, fitScore int) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET status = $3, fit_score = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND status = 'pending'`,
		jobID, userID, string(status), fitScore,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotPending
	}
	return nil
}

func (r *PostgresJobRepository) CompleteWithTailor(ctx context.Context, t tailor.Tailor) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	n, err := tx.Exec(ctx,
		`UPDATE jobs
		 SET status = $3, fit_score = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND status = 'pending'`,
		t.JobID, t.UserID, string(job.StatusProcessed), t.FitScore,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotPending
	}

	if err := insertTailor(ctx, tx, t); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrJobNotPending
		}
		return err
	}

	return tx.Commit(ctx)
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j      job.Job
		status string
	)
	if err := row.Scan(
		&j.ID, &j.UserID, &j.Title, &j.Company, &j.Description, &j.SourceURL,
		&status, &j.FitScore, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}
