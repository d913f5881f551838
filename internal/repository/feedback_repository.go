package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-tailor/internal/database"
	"resume-tailor/internal/domain/feedback"

	"github.com/google/uuid"
)

type FeedbackRepository interface {
	ExistsByTailorID(ctx context.Context, tailorID uuid.UUID) (bool, error)
	// Insert stores f unless a row for the same tailor exists. It reports
	// whether a row was written.
	Insert(ctx context.Context, f feedback.Feedback) (bool, error)
	GetByTailorID(ctx context.Context, userID, tailorID uuid.UUID) (feedback.Feedback, error)
	List(ctx context.Context, userID uuid.UUID, filter feedback.Filter) ([]feedback.Feedback, error)
	Stats(ctx context.Context, userID uuid.UUID) (feedback.Stats, error)
}

type PostgresFeedbackRepository struct {
	db database.DB
}

func NewPostgresFeedbackRepository(db database.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

const feedbackColumns = `id, user_id, job_id, tailor_id, selection_probability, semantic_similarity_score,
	skill_coverage_score, experience_alignment_score, strengths, gaps, recommendations, model_version, created_at`

func (r *PostgresFeedbackRepository) ExistsByTailorID(ctx context.Context, tailorID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM feedback WHERE tailor_id = $1)`, tailorID)
	if err := row.Scan(&exists); err != nil {
		if database.IsNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresFeedbackRepository) Insert(ctx context.Context, f feedback.Feedback) (bool, error) {
	strengths, err := marshalList(f.Strengths)
	if err != nil {
		return false, fmt.Errorf("encode strengths: %w", err)
	}
	gaps, err := marshalList(f.Gaps)
	if err != nil {
		return false, fmt.Errorf("encode gaps: %w", err)
	}
	recs, err := marshalList(f.Recommendations)
	if err != nil {
		return false, fmt.Errorf("encode recommendations: %w", err)
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	n, err := r.db.Exec(ctx,
		`INSERT INTO feedback (`+feedbackColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 ON CONFLICT (tailor_id) DO NOTHING`,
		f.ID, f.UserID, f.JobID, f.TailorID,
		f.SelectionProbability, f.SemanticSimilarityScore, f.SkillCoverageScore, f.ExperienceAlignmentScore,
		strengths, gaps, recs, f.ModelVersion, f.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresFeedbackRepository) GetByTailorID(ctx context.Context, userID, tailorID uuid.UUID) (feedback.Feedback, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE tailor_id = $1 AND user_id = $2`,
		tailorID, userID,
	)
	f, err := scanFeedback(row)
	if err != nil {
		if database.IsNoRows(err) {
			return feedback.Feedback{}, ErrFeedbackNotFound
		}
		return feedback.Feedback{}, err
	}
	return f, nil
}

func (r *PostgresFeedbackRepository) List(ctx context.Context, userID uuid.UUID, filter feedback.Filter) ([]feedback.Feedback, error) {
	limit, skip := normalizePage(filter.Limit, filter.Skip)

	rows, err := r.db.Query(ctx,
		`SELECT `+feedbackColumns+`
		 FROM feedback
		 WHERE user_id = $1
		   AND ($2::int IS NULL OR selection_probability >= $2)
		   AND ($3::int IS NULL OR selection_probability <= $3)
		 ORDER BY created_at DESC
		 LIMIT $4 OFFSET $5`,
		userID, filter.MinProbability, filter.MaxProbability, limit, skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedback.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresFeedbackRepository) Stats(ctx context.Context, userID uuid.UUID) (feedback.Stats, error) {
	var s feedback.Stats
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1),
			COALESCE(AVG(selection_probability), 0)::float8,
			COALESCE(AVG(semantic_similarity_score), 0)::float8,
			COALESCE(AVG(skill_coverage_score), 0)::float8,
			COALESCE(AVG(experience_alignment_score), 0)::float8
		 FROM feedback
		 WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(
		&s.Total, &s.AvgSelectionProbability, &s.AvgSemanticSimilarityScore,
		&s.AvgSkillCoverageScore, &s.AvgExperienceAlignmentScore,
	); err != nil {
		return feedback.Stats{}, err
	}
	return s, nil
}

func scanFeedback(row database.Row) (feedback.Feedback, error) {
	var (
		f                         feedback.Feedback
		strengths, gaps, recsJSON []byte
	)
	if err := row.Scan(
		&f.ID, &f.UserID, &f.JobID, &f.TailorID,
		&f.SelectionProbability, &f.SemanticSimilarityScore, &f.SkillCoverageScore, &f.ExperienceAlignmentScore,
		&strengths, &gaps, &recsJSON, &f.ModelVersion, &f.CreatedAt,
	); err != nil {
		return feedback.Feedback{}, err
	}
	if err := unmarshalList(strengths, &f.Strengths); err != nil {
		return feedback.Feedback{}, fmt.Errorf("decode strengths: %w", err)
	}
	if err := unmarshalList(gaps, &f.Gaps); err != nil {
		return feedback.Feedback{}, fmt.Errorf("decode gaps: %w", err)
	}
	if err := unmarshalList(recsJSON, &f.Recommendations); err != nil {
		return feedback.Feedback{}, fmt.Errorf("decode recommendations: %w", err)
	}
	return f, nil
}

func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func unmarshalList[T any](b []byte, out *[]T) error {
	*out = []T{}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}
