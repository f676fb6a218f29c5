// Package main implements the resume_builder CLI: parse uploaded résumés,
// render résumé records to PDF and serve the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	themePath  string
	verbose    bool

	// cfg is the resolved configuration, set before any subcommand runs
	cfg     config.Config
	logger  = slog.Default()
	printer *observability.Printer
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Parse résumés and render them to PDF",
	Long: `resume_builder extracts a structured record (name, summary, skills, experience)
from plain-text, PDF or DOCX résumés and renders résumé records to a themed PDF via LaTeX.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&themePath, "theme", "", "Path to theme YAML (default theme.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// setup resolves configuration and installs the logger. Flags win over
// environment variables, which win over the config file and then defaults.
func setup(cmd *cobra.Command, _ []string) error {
	resolved, err := resolveConfig(configPath)
	if err != nil {
		return err
	}
	if themePath != "" {
		resolved.Theme = themePath
	}
	if verbose {
		resolved.Verbose = true
	}
	if err := resolved.Validate(); err != nil {
		return err
	}
	cfg = resolved

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	printer = observability.NewPrinter(cmd.ErrOrStderr())

	logger.Debug("configuration resolved",
		"theme", cfg.Theme,
		"output_dir", cfg.OutputDir,
		"compile_timeout", cfg.CompileTimeout,
		"history", cfg.DatabaseURL != "",
	)
	return nil
}

func resolveConfig(path string) (config.Config, error) {
	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	base := config.Defaults()
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		base = fileCfg.MergeWithDefaults(base)
		// bools cannot be merged, so the file's value is carried explicitly
		env.Verbose = fileCfg.Verbose
	}
	return env.MergeWithDefaults(base), nil
}
