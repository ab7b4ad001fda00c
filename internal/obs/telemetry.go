package obs

import "github.com/mfcarvalho/cv-generator/internal/llm"

// Step outcome statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StepTelemetry captures the outcome of one pipeline step.
type StepTelemetry struct {
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Usage      llm.Usage `json:"usage"`
}

// Telemetry accumulates per-step measurements for a single request. It is
// owned exclusively by that request's execution path and is not safe for
// concurrent use; at request end it is folded into the process-wide metrics
// recorder and discarded.
type Telemetry struct {
	steps map[string]StepTelemetry
}

// NewTelemetry creates an empty per-request telemetry store.
func NewTelemetry() *Telemetry {
	return &Telemetry{steps: make(map[string]StepTelemetry)}
}

// RecordStep stores the outcome for a step, overwriting any prior record.
func (t *Telemetry) RecordStep(step string, st StepTelemetry) {
	t.steps[step] = st
}

// Steps returns a copy of the per-step records.
func (t *Telemetry) Steps() map[string]StepTelemetry {
	out := make(map[string]StepTelemetry, len(t.steps))
	for step, st := range t.steps {
		out[step] = st
	}
	return out
}

// StepDurations returns step name -> duration in milliseconds, the shape the
// metrics recorder folds in.
func (t *Telemetry) StepDurations() map[string]float64 {
	out := make(map[string]float64, len(t.steps))
	for step, st := range t.steps {
		out[step] = st.DurationMS
	}
	return out
}

// TotalUsage sums token usage across all recorded steps.
func (t *Telemetry) TotalUsage() llm.Usage {
	var total llm.Usage
	for _, st := range t.steps {
		total.PromptTokens += st.Usage.PromptTokens
		total.CompletionTokens += st.Usage.CompletionTokens
		total.TotalTokens += st.Usage.TotalTokens
	}
	return total
}
