package dto

import (
	"math"
	"time"

	"resume-tailor/internal/domain/feedback"

	"github.com/google/uuid"
)

type FeedbackResponse struct {
	ID                       uuid.UUID                 `json:"id"`
	JobID                    uuid.UUID                 `json:"job_id"`
	TailorID                 uuid.UUID                 `json:"tailor_id"`
	SelectionProbability     int                       `json:"selection_probability"`
	SemanticSimilarityScore  int                       `json:"semantic_similarity_score"`
	SkillCoverageScore       int                       `json:"skill_coverage_score"`
	ExperienceAlignmentScore int                       `json:"experience_alignment_score"`
	Strengths                []feedback.Strength       `json:"strengths"`
	Gaps                     []feedback.Gap            `json:"gaps"`
	Recommendations          []feedback.Recommendation `json:"recommendations"`
	ModelVersion             string                    `json:"model_version"`
	CreatedAt                time.Time                 `json:"created_at"`
}

func NewFeedbackResponse(f feedback.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:                       f.ID,
		JobID:                    f.JobID,
		TailorID:                 f.TailorID,
		SelectionProbability:     f.SelectionProbability,
		SemanticSimilarityScore:  f.SemanticSimilarityScore,
		SkillCoverageScore:       f.SkillCoverageScore,
		ExperienceAlignmentScore: f.ExperienceAlignmentScore,
		Strengths:                nonNil(f.Strengths),
		Gaps:                     nonNil(f.Gaps),
		Recommendations:          nonNil(f.Recommendations),
		ModelVersion:             f.ModelVersion,
		CreatedAt:                f.CreatedAt,
	}
}

type FeedbackStatsResponse struct {
	Total                       int     `json:"total"`
	AvgSelectionProbability     float64 `json:"avg_selection_probability"`
	AvgSemanticSimilarityScore  float64 `json:"avg_semantic_similarity_score"`
	AvgSkillCoverageScore       float64 `json:"avg_skill_coverage_score"`
	AvgExperienceAlignmentScore float64 `json:"avg_experience_alignment_score"`
}

func NewFeedbackStatsResponse(s feedback.Stats) FeedbackStatsResponse {
	return FeedbackStatsResponse{
		Total:                       s.Total,
		AvgSelectionProbability:     round1(s.AvgSelectionProbability),
		AvgSemanticSimilarityScore:  round1(s.AvgSemanticSimilarityScore),
		AvgSkillCoverageScore:       round1(s.AvgSkillCoverageScore),
		AvgExperienceAlignmentScore: round1(s.AvgExperienceAlignmentScore),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
