// Package tailoring produces a tailored resume, cover letter and portfolio for
// a job description.
package tailoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resume-tailor/internal/ai"
	"resume-tailor/internal/cache"
	"resume-tailor/internal/logger"

	"go.uber.org/zap"
)

const contentTTL = time.Hour

const systemPrompt = `You are an expert career writer.
Given a master resume, a job description and the candidate's job-search intent, write:
1. a tailored resume in markdown that keeps every fact truthful and emphasises what the job asks for,
2. a cover letter addressed to the hiring team, at most 350 words,
3. a short portfolio summary in markdown highlighting the most relevant projects.
Return ONLY a JSON object: {"tailored_resume": "...", "cover_letter": "...", "portfolio": "..."}.`

type Intent struct {
	DesiredRoles []string
	Companies    []string
	Locations    []string
	WorkMode     string
}

type Content struct {
	TailoredResume string
	CoverLetter    string
	Portfolio      string
	TokenUsage     int
}

type Generator struct {
	completer ai.Completer
	store     cache.Store
	logger    *zap.Logger
}

func NewGenerator(completer ai.Completer, store cache.Store, log *zap.Logger) *Generator {
	return &Generator{
		completer: completer,
		store:     store,
		logger:    logger.OrNop(log).Named("tailoring"),
	}
}

type contentPayload struct {
	TailoredResume string `json:"tailored_resume"`
	CoverLetter    string `json:"cover_letter"`
	Portfolio      string `json:"portfolio"`
}

// Generate returns tailored documents. Missing or malformed fields come back
// as empty strings; completion errors are returned.
func (g *Generator) Generate(ctx context.Context, resume, jobDescription string, intent Intent) (Content, error) {
	prompt := buildPrompt(resume, jobDescription, intent)
	key := cache.Key("content", resume, jobDescription, intentKey(intent))

	computed := false
	content, err := cache.GetOrCompute(ctx, g.store, key, contentTTL, func(ctx context.Context) (Content, error) {
		computed = true
		out, err := g.completer.CompleteJSON(ctx, systemPrompt, prompt)
		if err != nil {
			return Content{}, fmt.Errorf("generate tailored content: %w", err)
		}

		var payload contentPayload
		if err := ai.DecodeJSON(out.Text, &payload); err != nil {
			g.logger.Warn("tailored content not parseable", zap.Error(err))
			payload = contentPayload{}
		}

		return Content{
			TailoredResume: strings.TrimSpace(payload.TailoredResume),
			CoverLetter:    strings.TrimSpace(payload.CoverLetter),
			Portfolio:      strings.TrimSpace(payload.Portfolio),
			TokenUsage:     out.TokenUsage,
		}, nil
	})
	if err != nil {
		return Content{}, err
	}
	// TokenUsage counts tokens spent by this call; a cached answer spent none.
	if !computed {
		content.TokenUsage = 0
	}
	return content, nil
}

func buildPrompt(resume, jobDescription string, intent Intent) string {
	var b strings.Builder
	b.WriteString("MASTER RESUME:\n")
	b.WriteString(strings.TrimSpace(resume))
	b.WriteString("\n\nJOB DESCRIPTION:\n")
	b.WriteString(strings.TrimSpace(jobDescription))
	b.WriteString("\n\nINTENT:\n")
	writeList(&b, "Desired roles", intent.DesiredRoles)
	writeList(&b, "Target companies", intent.Companies)
	writeList(&b, "Locations", intent.Locations)
	mode := strings.TrimSpace(intent.WorkMode)
	if mode == "" {
		mode = "any"
	}
	b.WriteString("Work mode: ")
	b.WriteString(mode)
	b.WriteString("\n")
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	value := "not specified"
	if len(clean) > 0 {
		value = strings.Join(clean, ", ")
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func intentKey(intent Intent) string {
	return strings.Join([]string{
		strings.Join(intent.DesiredRoles, "\x1f"),
		strings.Join(intent.Companies, "\x1f"),
		strings.Join(intent.Locations, "\x1f"),
		intent.WorkMode,
	}, "\x1e")
}
