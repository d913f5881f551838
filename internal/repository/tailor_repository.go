package repository

import (
	"context"
	"time"

	"resume-tailor/internal/database"
	"resume-tailor/internal/domain/application"
	"resume-tailor/internal/domain/tailor"

	"github.com/google/uuid"
)

type TailorRepository interface {
	GetByID(ctx context.Context, userID, tailorID uuid.UUID) (tailor.Tailor, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]tailor.Tailor, error)
	// Review moves a pending_review tailor to status. When app is non-nil it
	// is inserted in the same transaction.
	Review(ctx context.Context, userID, tailorID uuid.UUID, status tailor.Status, app *application.Application) error
}

type PostgresTailorRepository struct {
	db database.DB
}

func NewPostgresTailorRepository(db database.DB) *PostgresTailorRepository {
	return &PostgresTailorRepository{db: db}
}

const tailorColumns = `id, job_id, user_id, tailored_resume, cover_letter, portfolio, fit_score, token_usage, status, created_at, updated_at`

// insertTailor writes t inside tx. Tailors are only created together with the
// job transition, see PostgresJobRepository.CompleteWithTailor.
func insertTailor(ctx context.Context, tx database.Tx, t tailor.Tailor) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO tailors (`+tailorColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		t.ID, t.JobID, t.UserID, t.TailoredResume, t.CoverLetter, t.Portfolio,
		t.FitScore, t.TokenUsage, string(t.Status), t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *PostgresTailorRepository) GetByID(ctx context.Context, userID, tailorID uuid.UUID) (tailor.Tailor, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tailorColumns+` FROM tailors WHERE id = $1 AND user_id = $2`,
		tailorID, userID,
	)
	t, err := scanTailor(row)
	if err != nil {
		if database.IsNoRows(err) {
			return tailor.Tailor{}, ErrTailorNotFound
		}
		return tailor.Tailor{}, err
	}
	return t, nil
}

func (r *PostgresTailorRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]tailor.Tailor, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+tailorColumns+`
		 FROM tailors
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tailor.Tailor, 0)
	for rows.Next() {
		t, err := scanTailor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTailorRepository) Review(ctx context.Context, userID, tailorID uuid.UUID, status tailor.Status, app *application.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var current string
	row := tx.QueryRow(ctx,
		`SELECT status FROM tailors WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		tailorID, userID,
	)
	if err := row.Scan(&current); err != nil {
		if database.IsNoRows(err) {
			return ErrTailorNotFound
		}
		return err
	}
	if tailor.Status(current) != tailor.StatusPendingReview {
		return ErrTailorAlreadyReview
	}

	if _, err := tx.Exec(ctx,
		`UPDATE tailors SET status = $3, updated_at = now() WHERE id = $1 AND user_id = $2`,
		tailorID, userID, string(status),
	); err != nil {
		return err
	}

	if app != nil {
		if app.AppliedAt.IsZero() {
			app.AppliedAt = time.Now().UTC()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO applications (id, user_id, job_id, tailor_id, status, applied_at)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			app.ID, app.UserID, app.JobID, app.TailorID, app.Status, app.AppliedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func scanTailor(row database.Row) (tailor.Tailor, error) {
	var (
		t      tailor.Tailor
		status string
	)
	if err := row.Scan(
		&t.ID, &t.JobID, &t.UserID, &t.TailoredResume, &t.CoverLetter, &t.Portfolio,
		&t.FitScore, &t.TokenUsage, &status, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return tailor.Tailor{}, err
	}
	t.Status = tailor.Status(status)
	return t, nil
}
