package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mfcarvalho/cv-generator/internal/obs"
	"github.com/mfcarvalho/cv-generator/internal/pipeline"
	"github.com/mfcarvalho/cv-generator/internal/types"
)

var validate = validator.New()

// ResumeResponse wraps a standalone resume result.
type ResumeResponse struct {
	Resume *types.Resume `json:"resume"`
}

// CoverLetterResponse wraps a standalone cover letter result.
type CoverLetterResponse struct {
	CoverLetter *types.CoverLetter `json:"cover_letter"`
}

// decodeRequest parses and validates the generation request body. On failure
// it writes the error response and returns false.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*types.GenerateRequest, bool) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}

	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Invalid request: "+err.Error())
		return nil, false
	}

	req.ApplyDefaults()
	return &req, true
}

// handleGenerate produces a resume and cover letter in one run.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	scope := obs.ScopeFromRequest(r)
	resp, err := s.generator.Run(r.Context(), scope, req)
	if err != nil {
		s.generationError(w, scope, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerateResume produces only the resume.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	scope := obs.ScopeFromRequest(r)
	resume, err := s.generator.RunResume(r.Context(), scope, req)
	if err != nil {
		s.generationError(w, scope, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, &ResumeResponse{Resume: resume})
}

// handleGenerateCoverLetter produces only the cover letter.
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	scope := obs.ScopeFromRequest(r)
	letter, err := s.generator.RunCoverLetter(r.Context(), scope, req)
	if err != nil {
		s.generationError(w, scope, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, &CoverLetterResponse{CoverLetter: letter})
}

// handleHealth reports liveness. It never touches the LLM client, so a
// misconfigured provider key does not fail health checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics returns the aggregated run counters and step averages.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.metrics.Snapshot())
}

// generationError maps a pipeline failure to an HTTP response. Internals
// stay internal: the caller gets a generic failure, the log gets the tag.
func (s *Server) generationError(w http.ResponseWriter, scope *obs.Scope, err error) {
	var perr *pipeline.Error
	if errors.As(err, &perr) {
		s.logger.Event(scope, "request_error", map[string]any{
			"stage": perr.Stage,
			"tag":   perr.Tag,
			"error": perr.Error(),
		})
		if perr.Tag == pipeline.TagCanceled {
			// 499 convention for client-abandoned requests.
			s.errorResponse(w, 499, "request canceled")
			return
		}
		s.errorResponse(w, http.StatusBadGateway, "generation failed")
		return
	}

	log.Printf("unclassified generation error: %v", err)
	s.errorResponse(w, http.StatusBadGateway, "generation failed")
}

// jsonResponse writes a JSON response with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
