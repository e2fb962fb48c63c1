package session

import (
	"context"
	"time"
)

// ProgressSteps is the length of the progress sequence.
const ProgressSteps = 100

// DefaultProgressTick is the interval between progress steps.
const DefaultProgressTick = 10 * time.Millisecond

// Progress labels
const (
	LabelSearching  = "Searching for company information..."
	LabelExtracting = "Extracting company data..."
	LabelAnalyzing  = "Analyzing investment potential..."
	LabelComplete   = "Analysis complete!"
)

// ProgressEvent is one step of the cosmetic progress sequence.
type ProgressEvent struct {
	Step  int    `json:"step"`
	Total int    `json:"total"`
	Label string `json:"label"`
	RunID string `json:"run_id"`
}

// ProgressCallback receives progress events.
type ProgressCallback func(event ProgressEvent)

// ProgressLabel returns the label shown at step.
func ProgressLabel(step int) string {
	switch {
	case step < 30:
		return LabelSearching
	case step < 60:
		return LabelExtracting
	case step < 90:
		return LabelAnalyzing
	default:
		return LabelComplete
	}
}

// runProgress emits steps on each tick until the sequence ends, done is closed
// or ctx is cancelled. The events carry no information about the engine call.
func runProgress(ctx context.Context, runID string, tick time.Duration, done <-chan struct{}, cb ProgressCallback) {
	if cb == nil {
		return
	}
	emit := func(step int) {
		cb(ProgressEvent{Step: step, Total: ProgressSteps, Label: ProgressLabel(step), RunID: runID})
	}

	ticker := time.NewTicker(max(tick, time.Microsecond))
	defer ticker.Stop()

	for step := 0; step < ProgressSteps; step++ {
		emit(step)
		select {
		case <-ctx.Done():
			return
		case <-done:
			emit(ProgressSteps)
			return
		case <-ticker.C:
		}
	}
	emit(ProgressSteps)
}
