package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing /parse, /render, /transform and /theme. Render
history under /renders is enabled when DATABASE_URL is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	port := servePort
	if port == 0 {
		port = cfg.Port
	}

	srv, err := server.New(server.Config{
		Port:           port,
		DatabaseURL:    cfg.DatabaseURL,
		ThemePath:      cfg.Theme,
		TemplatePath:   cfg.Template,
		TempDir:        cfg.TempDir,
		CompileTimeout: cfg.Timeout(),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
