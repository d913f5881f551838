package main

import (
	"fmt"

	"resume-tailor/internal/app"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var processCmd = &cobra.Command{
	Use:   "process <job-id>",
	Short: "Score a pending job and generate tailored content",
	Long: "Score a pending job against the user's master resume. Jobs that clear the fit " +
		"threshold get tailored content; feedback generation is awaited before exit.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("job id must be a uuid: %w", err)
		}
		userID, err := parseUserFlag(cmd)
		if err != nil {
			return err
		}

		return withContainer(cmd.Context(), func(c *app.Container, log *zap.Logger) error {
			res, err := c.Processor.ProcessJob(cmd.Context(), userID, jobID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"job_id":    res.JobID,
				"fit_score": res.FitScore,
				"status":    res.Status,
				"tailor_id": res.TailorID,
			})
		})
	},
}

func init() {
	processCmd.Flags().String("user", "", "owner user id (required)")
	_ = processCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(processCmd)
}
