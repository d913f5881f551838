package repository

import (
	"context"

	"resume-tailor/internal/database"
	"resume-tailor/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]application.Application, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, job_id, tailor_id, status, applied_at
		 FROM applications
		 WHERE user_id = $1
		 ORDER BY applied_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.JobID, &a.TailorID, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
