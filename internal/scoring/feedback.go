package scoring

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"resume-tailor/internal/ai"
	"resume-tailor/internal/cache"
	"resume-tailor/internal/domain/feedback"
	"resume-tailor/internal/logger"

	"go.uber.org/zap"
)

// Scores is the outcome of GenerateFeedback.
type Scores struct {
	SelectionProbability     int
	SemanticSimilarityScore  int
	SkillCoverageScore       int
	ExperienceAlignmentScore int
	Strengths                []feedback.Strength
	Gaps                     []feedback.Gap
	Recommendations          []feedback.Recommendation
	ModelVersion             string
	Degraded                 bool
}

// FeedbackGenerator combines semantic, skill and experience scores into a
// selection probability and asks the model for strengths, gaps and
// recommendations.
type FeedbackGenerator struct {
	skills     *SkillExtractor
	experience *ExperienceScorer
	completer  ai.Completer
	store      cache.Store
	logger     *zap.Logger
}

func NewFeedbackGenerator(completer ai.Completer, store cache.Store, log *zap.Logger) *FeedbackGenerator {
	return &FeedbackGenerator{
		skills:     NewSkillExtractor(completer, store),
		experience: NewExperienceScorer(completer, store),
		completer:  completer,
		store:      store,
		logger:     logger.OrNop(log).Named("feedback"),
	}
}

// GenerateFeedback never fails. semantic is on the 0-100 scale. When any AI
// call errors or panics the result is the fallback: probability discounted
// from semantic, sub-scores at DefaultSubScore and no insights.
func (g *FeedbackGenerator) GenerateFeedback(ctx context.Context, resume, jobDescription string, semantic float64) (scores Scores) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("feedback generation panicked", zap.Any("panic", r))
			scores = g.fallback(semantic)
		}
	}()

	scores, err := g.generate(ctx, resume, jobDescription, semantic)
	if err != nil {
		g.logger.Warn("feedback generation degraded", zap.Error(err))
		return g.fallback(semantic)
	}
	return scores
}

func (g *FeedbackGenerator) generate(ctx context.Context, resume, jobDescription string, semantic float64) (Scores, error) {
	var (
		wg                sync.WaitGroup
		resumeSkills      []string
		jobSkills         []string
		resumeErr, jobErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		resumeSkills, resumeErr = g.skills.Extract(ctx, resume)
	}()
	go func() {
		defer wg.Done()
		jobSkills, jobErr = g.skills.Extract(ctx, jobDescription)
	}()
	wg.Wait()
	if resumeErr != nil {
		return Scores{}, fmt.Errorf("extract resume skills: %w", resumeErr)
	}
	if jobErr != nil {
		return Scores{}, fmt.Errorf("extract job skills: %w", jobErr)
	}

	skill := SkillCoverage(resumeSkills, jobSkills)

	experience, err := g.experience.Score(ctx, resume, jobDescription)
	if err != nil {
		return Scores{}, fmt.Errorf("score experience: %w", err)
	}

	semanticScore := clampScore(math.Round(semantic))
	probability := SelectionProbability(semantic, float64(skill), float64(experience))

	ins, err := g.insights(ctx, resume, jobDescription, semanticScore, skill, experience, probability)
	if err != nil {
		return Scores{}, fmt.Errorf("generate insights: %w", err)
	}

	return Scores{
		SelectionProbability:     probability,
		SemanticSimilarityScore:  semanticScore,
		SkillCoverageScore:       skill,
		ExperienceAlignmentScore: experience,
		Strengths:                ins.Strengths,
		Gaps:                     ins.Gaps,
		Recommendations:          ins.Recommendations,
		ModelVersion:             g.completer.Model(),
	}, nil
}

type insightsPayload struct {
	Strengths       []feedback.Strength       `json:"strengths"`
	Gaps            []feedback.Gap            `json:"gaps"`
	Recommendations []feedback.Recommendation `json:"recommendations"`
}

func (g *FeedbackGenerator) insights(ctx context.Context, resume, jobDescription string, semantic, skill, experience, probability int) (insightsPayload, error) {
	key := cache.Key("insights", resume, jobDescription,
		strconv.Itoa(semantic), strconv.Itoa(skill), strconv.Itoa(experience))

	return cache.GetOrCompute(ctx, g.store, key, 0, func(ctx context.Context) (insightsPayload, error) {
		out, err := g.completer.CompleteJSON(ctx, insightsPrompt, insightsInput(resume, jobDescription, semantic, skill, experience, probability))
		if err != nil {
			return insightsPayload{}, err
		}
		return parseInsights(out.Text), nil
	})
}

func parseInsights(raw string) insightsPayload {
	var p insightsPayload
	if err := ai.DecodeJSON(raw, &p); err != nil {
		p = insightsPayload{}
	}
	if p.Strengths == nil {
		p.Strengths = []feedback.Strength{}
	}
	if p.Gaps == nil {
		p.Gaps = []feedback.Gap{}
	}
	if p.Recommendations == nil {
		p.Recommendations = []feedback.Recommendation{}
	}
	return p
}

func (g *FeedbackGenerator) fallback(semantic float64) Scores {
	model := ""
	if g.completer != nil {
		model = g.completer.Model()
	}
	return Scores{
		SelectionProbability:     FallbackProbability(semantic),
		SemanticSimilarityScore:  clampScore(math.Round(semantic)),
		SkillCoverageScore:       DefaultSubScore,
		ExperienceAlignmentScore: DefaultSubScore,
		Strengths:                []feedback.Strength{},
		Gaps:                     []feedback.Gap{},
		Recommendations:          []feedback.Recommendation{},
		ModelVersion:             model,
		Degraded:                 true,
	}
}
