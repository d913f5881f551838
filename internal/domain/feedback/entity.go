package feedback

import (
	"time"

	"github.com/google/uuid"
)

type Strength struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Confidence  string `json:"confidence,omitempty"`
}

type Gap struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
}

type Recommendation struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
}

// Feedback holds the selection-probability breakdown for a tailor. At most one
// row exists per tailor.
type Feedback struct {
	ID                       uuid.UUID
	UserID                   uuid.UUID
	JobID                    uuid.UUID
	TailorID                 uuid.UUID
	SelectionProbability     int
	SemanticSimilarityScore  int
	SkillCoverageScore       int
	ExperienceAlignmentScore int
	Strengths                []Strength
	Gaps                     []Gap
	Recommendations          []Recommendation
	ModelVersion             string
	CreatedAt                time.Time
}

type Filter struct {
	MinProbability *int
	MaxProbability *int
	Skip           int
	Limit          int
}

type Stats struct {
	Total                       int
	AvgSelectionProbability     float64
	AvgSemanticSimilarityScore  float64
	AvgSkillCoverageScore       float64
	AvgExperienceAlignmentScore float64
}
