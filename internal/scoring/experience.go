package scoring

import (
	"context"
	"math"

	"resume-tailor/internal/ai"
	"resume-tailor/internal/cache"
)

// ExperienceScorer asks the model to rate seniority fit between a resume and a job.
type ExperienceScorer struct {
	completer ai.Completer
	store     cache.Store
}

func NewExperienceScorer(completer ai.Completer, store cache.Store) *ExperienceScorer {
	return &ExperienceScorer{completer: completer, store: store}
}

type experiencePayload struct {
	Score float64 `json:"score"`
}

// Score returns a 0-100 rating. An unparseable response yields DefaultSubScore.
func (s *ExperienceScorer) Score(ctx context.Context, resume, jobDescription string) (int, error) {
	return cache.GetOrCompute(ctx, s.store, cache.Key("experience", resume, jobDescription), ExtractionTTL, func(ctx context.Context) (int, error) {
		out, err := s.completer.CompleteJSON(ctx, experiencePrompt, experienceInput(resume, jobDescription))
		if err != nil {
			return 0, err
		}
		return parseExperience(out.Text), nil
	})
}

func parseExperience(raw string) int {
	payload := experiencePayload{Score: math.NaN()}
	if err := ai.DecodeJSON(raw, &payload); err != nil || math.IsNaN(payload.Score) {
		return DefaultSubScore
	}
	return clampScore(math.Round(payload.Score))
}
