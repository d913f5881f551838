package repository

import (
	"context"
	"time"

	"resume-tailor/internal/database"
	"resume-tailor/internal/domain/profile"

	"github.com/google/uuid"
)

type IntentRepository interface {
	Upsert(ctx context.Context, in profile.Intent) error
	Get(ctx context.Context, userID uuid.UUID) (profile.Intent, error)
}

type PostgresIntentRepository struct {
	db database.DB
}

func NewPostgresIntentRepository(db database.DB) *PostgresIntentRepository {
	return &PostgresIntentRepository{db: db}
}

func (r *PostgresIntentRepository) Upsert(ctx context.Context, in profile.Intent) error {
	if in.UpdatedAt.IsZero() {
		in.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO intents (user_id, desired_roles, companies, locations, work_mode, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id) DO UPDATE SET
			desired_roles = EXCLUDED.desired_roles,
			companies = EXCLUDED.companies,
			locations = EXCLUDED.locations,
			work_mode = EXCLUDED.work_mode,
			updated_at = EXCLUDED.updated_at`,
		in.UserID, nonNil(in.DesiredRoles), nonNil(in.Companies), nonNil(in.Locations), in.WorkMode, in.UpdatedAt,
	)
	return err
}

func (r *PostgresIntentRepository) Get(ctx context.Context, userID uuid.UUID) (profile.Intent, error) {
	var in profile.Intent
	row := r.db.QueryRow(ctx,
		`SELECT user_id, desired_roles, companies, locations, work_mode, updated_at
		 FROM intents WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&in.UserID, &in.DesiredRoles, &in.Companies, &in.Locations, &in.WorkMode, &in.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return profile.Intent{}, ErrIntentNotFound
		}
		return profile.Intent{}, err
	}
	return in, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
