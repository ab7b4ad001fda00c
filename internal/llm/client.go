// Package llm abstracts the external language-model provider behind a small
// synchronous interface. The provider is treated as an opaque, unreliable
// capability: calls have a fixed timeout and failures are classified into a
// retryable/fatal taxonomy for the resilient call wrapper.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// defaultTimeout bounds every individual provider call.
const defaultTimeout = 30 * time.Second

// Usage holds provider token counters for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Request is one chat completion request with a JSON-object response
// constraint.
type Request struct {
	System      string
	User        string
	Temperature float32
}

// Completion is the provider's answer: the completion text (expected to be a
// JSON object string), token usage, and the model that produced it.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Client is the provider abstraction used by the pipeline.
type Client interface {
	// Complete performs a single chat completion. Transport failures are
	// classified (see IsRetryable); empty completions surface as
	// MalformedResponseError.
	Complete(ctx context.Context, req Request) (*Completion, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed client for the given model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: defaultTimeout,
	}, nil
}

// Complete performs one JSON-constrained completion with the fixed per-call
// timeout.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(req.Temperature)
	model.ResponseMIMEType = "application/json"
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	resp, err := model.GenerateContent(callCtx, genai.Text(req.User))
	if err != nil {
		return nil, classify(err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, &MalformedResponseError{Message: "empty completion", Cause: err}
	}

	completion := &Completion{
		Text:  CleanJSONBlock(text),
		Model: c.model,
	}
	if resp.UsageMetadata != nil {
		completion.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return completion, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
