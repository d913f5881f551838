package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// SkillCoverage returns the percentage of job skills matched by at least one
// resume skill. A job skill matches on case-insensitive containment in either
// direction, or when the normalized edit similarity reaches
// PartialMatchThreshold. An empty job list is fully covered.
func SkillCoverage(resumeSkills, jobSkills []string) int {
	jobs := normalizeSkills(jobSkills)
	if len(jobs) == 0 {
		return 100
	}
	resume := normalizeSkills(resumeSkills)

	matched := 0
	for _, js := range jobs {
		for _, rs := range resume {
			if exactMatch(rs, js) || StringSimilarity(rs, js) >= PartialMatchThreshold {
				matched++
				break
			}
		}
	}

	return clampScore(math.Round(100 * float64(matched) / float64(len(jobs))))
}

// StringSimilarity is (maxLen - editDistance) / maxLen over runes. Two empty
// strings are identical.
func StringSimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}

func exactMatch(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func normalizeSkills(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
