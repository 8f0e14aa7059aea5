// Package main provides the seed command that loads demo data.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"smapp/internal/app"
	"smapp/internal/config"
	"smapp/internal/seed"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		seedPath   string
	)

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load demo users, profiles and posts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, seedPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&seedPath, "file", "f", "cmd/seed/demo.yaml", "Seed file path (YAML)")

	return cmd
}

func run(ctx context.Context, configPath, seedPath string) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := seed.Load(seedPath)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := seed.Run(ctx, a, f)
	if err != nil {
		return err
	}
	slog.Info("seed complete",
		"users", res.Users,
		"skipped", res.Skipped,
		"profiles", res.Profiles,
		"posts", res.Posts)
	return nil
}
