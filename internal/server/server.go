// Package server provides the HTTP REST API for the generation service. It
// is a thin adapter: request decoding, validation and status mapping live
// here; everything else is the pipeline's business.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfcarvalho/cv-generator/internal/metrics"
	"github.com/mfcarvalho/cv-generator/internal/obs"
	"github.com/mfcarvalho/cv-generator/internal/pipeline"
)

// Server is the HTTP front end.
type Server struct {
	httpServer *http.Server
	generator  *pipeline.Generator
	metrics    *metrics.Recorder
	logger     *obs.Logger
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a server around a wired generator.
func New(cfg Config, generator *pipeline.Generator, recorder *metrics.Recorder, logger *obs.Logger) *Server {
	s := &Server{
		generator: generator,
		metrics:   recorder,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate/resume", s.handleGenerateResume)
	mux.HandleFunc("POST /generate/cover-letter", s.handleGenerateCoverLetter)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation runs span several provider calls
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
