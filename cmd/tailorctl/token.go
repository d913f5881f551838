package main

import (
	"fmt"
	"time"

	"resume-tailor/internal/config"
	"resume-tailor/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a development access token for a user id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, err := parseUserFlag(cmd)
		if err != nil {
			return err
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")
		email, _ := cmd.Flags().GetString("email")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		tok, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Audience).Sign(userID, email, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "user id to put in the sub claim (required)")
	tokenCmd.Flags().String("email", "", "optional email claim")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
