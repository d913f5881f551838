package main

import (
	"context"
	"time"

	"resume-tailor/internal/app"
	"resume-tailor/internal/config"
	"resume-tailor/internal/jdfetch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Fetch a job description from a posting URL",
	Long: "Fetch a job description from a posting URL and print it. With --user the " +
		"posting is saved as a pending job for that user.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawURL := args[0]
		headless, _ := cmd.Flags().GetBool("headless")

		if user, _ := cmd.Flags().GetString("user"); user != "" {
			userID, err := parseUserFlag(cmd)
			if err != nil {
				return err
			}
			return withContainer(cmd.Context(), func(c *app.Container, _ *zap.Logger) error {
				j, err := c.Jobs.Import(cmd.Context(), userID, rawURL)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"id":         j.ID,
					"title":      j.Title,
					"company":    j.Company,
					"status":     j.Status,
					"source_url": j.SourceURL,
				})
			})
		}

		log, err := newLogger(config.Config{})
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
		defer cancel()

		fetcher := jdfetch.New(jdfetch.Options{Headless: headless}, log)
		posting, err := fetcher.Fetch(ctx, rawURL)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), posting)
	},
}

func init() {
	importCmd.Flags().String("user", "", "save the posting as a job owned by this user id")
	importCmd.Flags().Bool("headless", true, "fall back to headless chrome when the static fetch finds no description")
	rootCmd.AddCommand(importCmd)
}
