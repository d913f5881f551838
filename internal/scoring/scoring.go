// Package scoring computes fit and selection-probability scores for a resume
// against a job description.
package scoring

import (
	"math"
	"time"
)

const (
	// FitThreshold is the minimum fit score for which tailored content is generated.
	FitThreshold = 70

	WeightSemantic   = 0.6
	WeightSkill      = 0.3
	WeightExperience = 0.1

	// FallbackDiscount scales the semantic score when feedback generation fails.
	FallbackDiscount = 0.8

	DefaultSubScore = 50

	// ExtractionTTL applies to skill, experience and content responses.
	ExtractionTTL = time.Hour

	PartialMatchThreshold = 0.7
)

// FitScore converts a cosine similarity into a 0-100 fit score.
func FitScore(similarity float64) int {
	return clampScore(math.Round(similarity * 100))
}

// SelectionProbability combines the three sub-scores with the fixed weights.
func SelectionProbability(semantic, skill, experience float64) int {
	return clampScore(math.Round(WeightSemantic*semantic + WeightSkill*skill + WeightExperience*experience))
}

// FallbackProbability is used when any AI step of feedback generation fails.
func FallbackProbability(semantic float64) int {
	return clampScore(math.Round(semantic * FallbackDiscount))
}

// clampScore bounds v to 0..100 before converting, so huge or infinite
// inputs saturate instead of overflowing int.
func clampScore(v float64) int {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 100:
		return 100
	}
	return int(v)
}
