// Package pipeline orchestrates the three-stage generation flow:
// extract structured data, generate the resume, generate the cover letter.
// Stages run strictly sequentially within a request; every external call is
// individually wrapped by the retry policy; failure in any stage aborts the
// rest with no partial results.
package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mfcarvalho/cv-generator/internal/llm"
	"github.com/mfcarvalho/cv-generator/internal/metrics"
	"github.com/mfcarvalho/cv-generator/internal/normalize"
	"github.com/mfcarvalho/cv-generator/internal/obs"
	"github.com/mfcarvalho/cv-generator/internal/payload"
	"github.com/mfcarvalho/cv-generator/internal/prompts"
	"github.com/mfcarvalho/cv-generator/internal/retry"
	"github.com/mfcarvalho/cv-generator/internal/schema"
	"github.com/mfcarvalho/cv-generator/internal/types"
)

// Pipeline step names, as recorded in telemetry and metrics.
const (
	StepExtract     = "extract"
	StepResume      = "generate_resume"
	StepCoverLetter = "generate_cover_letter"
)

// Stage temperatures: extraction wants determinism, the cover letter some
// creative range.
const (
	tempExtract     = 0.3
	tempResume      = 0.5
	tempCoverLetter = 0.7
)

// Generator runs the generation pipeline for one request at a time; distinct
// requests may run concurrently on separate goroutines because all mutable
// per-request state lives in the Telemetry instance created per run.
type Generator struct {
	client  llm.Client
	logger  *obs.Logger
	metrics *metrics.Recorder
	policy  retry.Policy
}

// NewGenerator wires a generator with the default retry policy.
func NewGenerator(client llm.Client, logger *obs.Logger, recorder *metrics.Recorder) *Generator {
	return &Generator{
		client:  client,
		logger:  logger,
		metrics: recorder,
		policy:  retry.DefaultPolicy(),
	}
}

// Run executes the full pipeline and folds telemetry into the process-wide
// metrics. On failure the returned error is a *Error carrying the taxonomy
// tag; no partial documents are returned.
func (g *Generator) Run(ctx context.Context, scope *obs.Scope, req *types.GenerateRequest) (*types.GenerateResponse, error) {
	response := &types.GenerateResponse{}
	err := g.execute(ctx, scope, req, func(ctx context.Context, tel *obs.Telemetry) (string, error) {
		resume, letter, stage, err := g.runStages(ctx, scope, tel, req, true)
		response.Resume = resume
		response.CoverLetter = letter
		return stage, err
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// RunResume executes extraction and resume generation only.
func (g *Generator) RunResume(ctx context.Context, scope *obs.Scope, req *types.GenerateRequest) (*types.Resume, error) {
	var resume *types.Resume
	err := g.execute(ctx, scope, req, func(ctx context.Context, tel *obs.Telemetry) (string, error) {
		var stage string
		var stageErr error
		resume, _, stage, stageErr = g.runStages(ctx, scope, tel, req, false)
		return stage, stageErr
	})
	if err != nil {
		return nil, err
	}
	return resume, nil
}

// RunCoverLetter executes the full pipeline and returns only the cover
// letter; the letter depends on the generated resume, so the earlier stages
// cannot be skipped.
func (g *Generator) RunCoverLetter(ctx context.Context, scope *obs.Scope, req *types.GenerateRequest) (*types.CoverLetter, error) {
	var letter *types.CoverLetter
	err := g.execute(ctx, scope, req, func(ctx context.Context, tel *obs.Telemetry) (string, error) {
		var stage string
		var stageErr error
		_, letter, stage, stageErr = g.runStages(ctx, scope, tel, req, true)
		return stage, stageErr
	})
	if err != nil {
		return nil, err
	}
	return letter, nil
}

// execute owns the per-request telemetry lifecycle: create, run, fold into
// metrics, emit the completion event, classify any failure.
func (g *Generator) execute(ctx context.Context, scope *obs.Scope, req *types.GenerateRequest, run func(ctx context.Context, tel *obs.Telemetry) (string, error)) error {
	req.ApplyDefaults()
	tel := obs.NewTelemetry()

	stage, err := run(ctx, tel)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	snapshot := g.metrics.Record(status, tel.StepDurations())
	usage := tel.TotalUsage()
	g.logger.Event(scope, "request_completed", map[string]any{
		"status":            status,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
		"metrics":           snapshot,
	})

	if err != nil {
		return Classify(stage, err)
	}
	return nil
}

// runStages sequences the pipeline, checking for caller cancellation between
// stages so an aborted request issues no further provider calls.
func (g *Generator) runStages(ctx context.Context, scope *obs.Scope, tel *obs.Telemetry, req *types.GenerateRequest, withCoverLetter bool) (*types.Resume, *types.CoverLetter, string, error) {
	record, err := g.extract(ctx, scope, tel, req)
	if err != nil {
		return nil, nil, StepExtract, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, StepExtract, err
	}

	resume, err := g.generateResume(ctx, scope, tel, record, req)
	if err != nil {
		return nil, nil, StepResume, err
	}
	if !withCoverLetter {
		return resume, nil, "", nil
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, StepResume, err
	}

	letter, err := g.generateCoverLetter(ctx, scope, tel, resume, req)
	if err != nil {
		return nil, nil, StepCoverLetter, err
	}
	return resume, letter, "", nil
}

// extract parses free-form candidate and job text into a loosely-typed
// record, pruned of placeholder emptiness.
func (g *Generator) extract(ctx context.Context, scope *obs.Scope, tel *obs.Telemetry, req *types.GenerateRequest) (map[string]any, error) {
	system := prompts.MustGet("extraction.json", "system")
	user := prompts.Format(prompts.MustGet("extraction.json", "user"), map[string]string{
		"Language":      req.Language,
		"CandidateText": req.CandidateText,
		"JobText":       req.JobText,
	})
	return g.callJSON(ctx, scope, tel, StepExtract, llm.Request{
		System:      system,
		User:        user,
		Temperature: tempExtract,
	})
}

// generateResume asks the provider for a tailored resume, then normalizes
// and validates it into the canonical shape.
func (g *Generator) generateResume(ctx context.Context, scope *obs.Scope, tel *obs.Telemetry, record map[string]any, req *types.GenerateRequest) (*types.Resume, error) {
	extracted, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, err
	}

	system := prompts.Format(prompts.MustGet("resume.json", "system"), map[string]string{
		"ToneInstruction": toneInstruction(req.Tone),
	})
	user := prompts.Format(prompts.MustGet("resume.json", "user"), map[string]string{
		"Language":      req.Language,
		"ExtractedData": string(extracted),
		"JobText":       req.JobText,
	})

	raw, err := g.callJSON(ctx, scope, tel, StepResume, llm.Request{
		System:      system,
		User:        user,
		Temperature: tempResume,
	})
	if err != nil {
		return nil, err
	}

	resume, err := normalize.Resume(raw, req.JobText)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateResume(resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// generateCoverLetter asks the provider for a cover letter grounded in the
// generated resume, applying locale defaults for anything it omitted.
func (g *Generator) generateCoverLetter(ctx context.Context, scope *obs.Scope, tel *obs.Telemetry, resume *types.Resume, req *types.GenerateRequest) (*types.CoverLetter, error) {
	system := prompts.Format(prompts.MustGet("cover_letter.json", "system"), map[string]string{
		"ToneInstruction": toneInstruction(req.Tone),
	})
	user := prompts.Format(prompts.MustGet("cover_letter.json", "user"), map[string]string{
		"Language":         req.Language,
		"CandidateName":    resume.Name,
		"JobTitle":         resume.JobTitle,
		"CandidateSummary": resume.Introduction,
		"JobText":          req.JobText,
	})

	raw, err := g.callJSON(ctx, scope, tel, StepCoverLetter, llm.Request{
		System:      system,
		User:        user,
		Temperature: tempCoverLetter,
	})
	if err != nil {
		return nil, err
	}

	letter := &types.CoverLetter{
		Greeting:  stringField(raw, "greeting"),
		Body:      stringField(raw, "body"),
		Signature: stringField(raw, "signature"),
	}
	applyLocaleDefaults(letter, req.Language, resume.Name)
	if err := schema.ValidateCoverLetter(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

// callJSON performs one retry-wrapped provider call, decodes the completion
// as a JSON object, prunes it, and records step telemetry either way.
func (g *Generator) callJSON(ctx context.Context, scope *obs.Scope, tel *obs.Telemetry, step string, req llm.Request) (map[string]any, error) {
	g.logger.Event(scope, "llm_call_started", map[string]any{"step": step})
	start := time.Now()

	var completion *llm.Completion
	err := retry.Do(ctx, g.policy, llm.IsRetryable, func(ctx context.Context) error {
		var callErr error
		completion, callErr = g.client.Complete(ctx, req)
		return callErr
	})
	durationMS := float64(time.Since(start).Microseconds()) / 1000

	if err != nil {
		g.recordStep(scope, tel, step, obs.StepTelemetry{
			Status:     obs.StatusError,
			DurationMS: durationMS,
		}, err)
		return nil, err
	}

	var decoded map[string]any
	if jsonErr := json.Unmarshal([]byte(completion.Text), &decoded); jsonErr != nil {
		err := &llm.MalformedResponseError{Message: "completion is not a JSON object", Cause: jsonErr}
		g.recordStep(scope, tel, step, obs.StepTelemetry{
			Status:     obs.StatusError,
			DurationMS: durationMS,
			Usage:      completion.Usage,
		}, err)
		return nil, err
	}

	pruned, pruneErr := payload.Prune(decoded)
	if pruneErr != nil {
		g.recordStep(scope, tel, step, obs.StepTelemetry{
			Status:     obs.StatusError,
			DurationMS: durationMS,
			Usage:      completion.Usage,
		}, pruneErr)
		return nil, pruneErr
	}
	record := pruned.(map[string]any)

	g.logger.Event(scope, "llm_call_completed", map[string]any{
		"step":              step,
		"model":             completion.Model,
		"duration_ms":       durationMS,
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})
	tel.RecordStep(step, obs.StepTelemetry{
		Status:     obs.StatusSuccess,
		DurationMS: durationMS,
		Usage:      completion.Usage,
	})
	return record, nil
}

func (g *Generator) recordStep(scope *obs.Scope, tel *obs.Telemetry, step string, st obs.StepTelemetry, err error) {
	tel.RecordStep(step, st)
	g.logger.Event(scope, "llm_call_failed", map[string]any{
		"step":        step,
		"duration_ms": st.DurationMS,
		"error":       err.Error(),
	})
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
