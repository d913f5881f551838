package repository

import (
	"context"
	"time"

	"resume-tailor/internal/database"
	"resume-tailor/internal/domain/profile"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	Upsert(ctx context.Context, r profile.Resume) error
	Get(ctx context.Context, userID uuid.UUID) (profile.Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Upsert(ctx context.Context, res profile.Resume) error {
	if res.UpdatedAt.IsZero() {
		res.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO resumes (user_id, content, file_name, updated_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id) DO UPDATE SET
			content = EXCLUDED.content,
			file_name = EXCLUDED.file_name,
			updated_at = EXCLUDED.updated_at`,
		res.UserID, res.Content, res.FileName, res.UpdatedAt,
	)
	return err
}

func (r *PostgresResumeRepository) Get(ctx context.Context, userID uuid.UUID) (profile.Resume, error) {
	var res profile.Resume
	row := r.db.QueryRow(ctx,
		`SELECT user_id, content, file_name, updated_at FROM resumes WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&res.UserID, &res.Content, &res.FileName, &res.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return profile.Resume{}, ErrResumeNotFound
		}
		return profile.Resume{}, err
	}
	return res, nil
}
