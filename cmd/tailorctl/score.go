package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"resume-tailor/internal/ai/gemini"
	"resume-tailor/internal/cache"
	"resume-tailor/internal/resumetext"
	"resume-tailor/internal/scoring"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume-file> <job-description-file>",
	Short: "Compute fit score and selection probability for a resume and a job description",
	Long: "Compute the fit score and the full selection-probability breakdown without touching " +
		"the database. The resume may be .pdf, .docx or .txt; the job description is read as text.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadAll()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if err := resumetext.SetLicense(cfg.Import.UnidocLicense); err != nil {
			log.Warn("unidoc license rejected", zap.Error(err))
		}

		resumeRaw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		resume, err := resumetext.Extract(args[0], resumeRaw)
		if err != nil {
			return fmt.Errorf("extract resume: %w", err)
		}
		jd, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
		defer cancel()

		client, err := gemini.NewClient(ctx, gemini.Options{
			APIKey:         cfg.AI.GeminiAPIKey,
			Model:          cfg.AI.Model,
			EmbeddingModel: cfg.AI.EmbeddingModel,
			MaxLogLength:   cfg.AI.MaxLogLength,
		}, log)
		if err != nil {
			return err
		}

		store := cache.NewTTL[any](cache.Options{DefaultTTL: 30 * time.Minute})
		sim, err := scoring.NewSimilarityScorer(client, store).Similarity(ctx, resume, string(jd))
		if err != nil {
			return fmt.Errorf("semantic similarity: %w", err)
		}

		fit := scoring.FitScore(sim)
		out := map[string]any{
			"fit_score": fit,
			"good_fit":  fit >= scoring.FitThreshold,
		}

		if full, _ := cmd.Flags().GetBool("feedback"); full {
			s := scoring.NewFeedbackGenerator(client, store, log).GenerateFeedback(ctx, resume, string(jd), sim*100)
			out["selection_probability"] = s.SelectionProbability
			out["semantic_similarity_score"] = s.SemanticSimilarityScore
			out["skill_coverage_score"] = s.SkillCoverageScore
			out["experience_alignment_score"] = s.ExperienceAlignmentScore
			out["strengths"] = s.Strengths
			out["gaps"] = s.Gaps
			out["recommendations"] = s.Recommendations
			out["degraded"] = s.Degraded
		}

		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	scoreCmd.Flags().Bool("feedback", true, "also compute skill coverage, experience alignment and insights")
	rootCmd.AddCommand(scoreCmd)
}
