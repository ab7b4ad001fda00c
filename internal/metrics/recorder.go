// Package metrics keeps process-wide rolling counters for completed requests:
// success/error counts and per-step average durations. The Recorder is the
// only cross-request shared mutable state in the service.
package metrics

import (
	"math"
	"sync"
)

// Request outcome statuses. Anything other than StatusSuccess counts as an
// error.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type stepStats struct {
	count   int
	totalMS float64
}

// Recorder aggregates request outcomes under a single mutex.
type Recorder struct {
	mu      sync.Mutex
	success int
	errors  int
	steps   map[string]*stepStats
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{steps: make(map[string]*stepStats)}
}

// Snapshot is a fully-formed copy of the counters. Readers never hold a live
// reference into the recorder.
type Snapshot struct {
	Requests              map[string]int     `json:"requests"`
	StepAverageDurationMS map[string]float64 `json:"step_average_duration_ms"`
}

// Record folds one completed request into the counters and returns the
// updated snapshot.
func (r *Recorder) Record(status string, stepDurations map[string]float64) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if status == StatusSuccess {
		r.success++
	} else {
		r.errors++
	}

	for step, duration := range stepDurations {
		stats := r.steps[step]
		if stats == nil {
			stats = &stepStats{}
			r.steps[step] = stats
		}
		stats.count++
		stats.totalMS += duration
	}

	return r.snapshotLocked()
}

// Snapshot returns a copy of the current counters.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() Snapshot {
	snap := Snapshot{
		Requests: map[string]int{
			StatusSuccess: r.success,
			StatusError:   r.errors,
		},
		StepAverageDurationMS: make(map[string]float64, len(r.steps)),
	}
	for step, stats := range r.steps {
		if stats.count == 0 {
			continue
		}
		avg := stats.totalMS / float64(stats.count)
		snap.StepAverageDurationMS[step] = math.Round(avg*100) / 100
	}
	return snap
}
