package scoring

import (
	"context"
	"strings"

	"resume-tailor/internal/ai"
	"resume-tailor/internal/cache"
)

// SkillExtractor asks the model for the flat list of skills mentioned in a text.
type SkillExtractor struct {
	completer ai.Completer
	store     cache.Store
}

func NewSkillExtractor(completer ai.Completer, store cache.Store) *SkillExtractor {
	return &SkillExtractor{completer: completer, store: store}
}

// Extract returns the skills found in text. An unparseable response yields an
// empty list; completion errors are returned.
func (e *SkillExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	return cache.GetOrCompute(ctx, e.store, cache.Key("skills", text), ExtractionTTL, func(ctx context.Context) ([]string, error) {
		out, err := e.completer.CompleteJSON(ctx, skillExtractionPrompt, text)
		if err != nil {
			return nil, err
		}
		return parseSkills(out.Text), nil
	})
}

type skillsPayload struct {
	Skills []string `json:"skills"`
}

// parseSkills accepts either {"skills": [...]} or a bare JSON array.
func parseSkills(raw string) []string {
	var skills []string
	if strings.HasPrefix(ai.ExtractJSON(raw), "[") {
		if err := ai.DecodeJSON(raw, &skills); err != nil {
			return []string{}
		}
	} else {
		var payload skillsPayload
		if err := ai.DecodeJSON(raw, &payload); err != nil {
			return []string{}
		}
		skills = payload.Skills
	}

	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
