package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfcarvalho/cv-generator/internal/config"
	"github.com/mfcarvalho/cv-generator/internal/llm"
	"github.com/mfcarvalho/cv-generator/internal/metrics"
	"github.com/mfcarvalho/cv-generator/internal/obs"
	"github.com/mfcarvalho/cv-generator/internal/pipeline"
	"github.com/mfcarvalho/cv-generator/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating resumes and cover letters.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	logger := obs.NewLogger(os.Stdout)
	recorder := metrics.NewRecorder()

	// The provider client is constructed on first use, so startup does not
	// depend on provider reachability.
	client := llm.NewLazyClient(func() (llm.Client, error) {
		return llm.NewGeminiClient(context.Background(), cfg.APIKey, cfg.Model)
	})
	defer client.Close() //nolint:errcheck

	generator := pipeline.NewGenerator(client, logger, recorder)
	srv := server.New(server.Config{Port: cfg.Port}, generator, recorder, logger)

	return srv.Start()
}
