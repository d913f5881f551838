package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"resume-tailor/internal/app"
	"resume-tailor/internal/config"
	"resume-tailor/internal/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "tailorctl"

var (
	envFile string
	debug   bool
	jsonLog bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "tailorctl runs resume-tailor operations from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading config")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(jsonLog || cfg.Log.JSON, debug || cfg.Log.Debug)
}

// loadAll reads config and builds the logger every subcommand needs.
func loadAll() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}

func withContainer(ctx context.Context, fn func(c *app.Container, log *zap.Logger) error) error {
	cfg, log, err := loadAll()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	c.Start(ctx)
	defer func() {
		if err := c.Close(ctx); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	return fn(c, log)
}

func parseUserFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("user")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--user must be a uuid: %w", err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
