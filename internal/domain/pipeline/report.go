package pipeline

import "time"

// Outcome summarizes a whole run.
type Outcome string

const (
	// OutcomeSucceeded means every stage succeeded.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed means a stage failed fatally.
	OutcomeFailed Outcome = "failed"
	// OutcomeHalted means a stage requested a clean stop.
	OutcomeHalted Outcome = "halted"
	// OutcomeInterrupted means the run context was cancelled.
	OutcomeInterrupted Outcome = "interrupted"
)

// Report is the ordered record of one pipeline run.
type Report struct {
	results  []Result
	outcome  Outcome
	err      error
	duration time.Duration
}

// Results returns the per-stage results in execution order.
// Stages that never ran are included with StatusSkipped.
func (r Report) Results() []Result {
	return r.results
}

// Outcome returns the run outcome.
func (r Report) Outcome() Outcome {
	return r.outcome
}

// Err returns the error that stopped the run, if any.
// For a halted run this wraps ErrHalted.
func (r Report) Err() error {
	return r.err
}

// Duration returns the total run time.
func (r Report) Duration() time.Duration {
	return r.duration
}

// ExitCode maps the outcome to a process exit code.
func (r Report) ExitCode() int {
	switch r.outcome {
	case OutcomeSucceeded, OutcomeHalted:
		return 0
	default:
		return 1
	}
}

// Completed returns the results of stages that succeeded.
func (r Report) Completed() []Result {
	out := make([]Result, 0, len(r.results))
	for _, res := range r.results {
		if res.Success() {
			out = append(out, res)
		}
	}
	return out
}

// Ran returns true if the stage with the given ID was invoked.
func (r Report) Ran(id StageID) bool {
	for _, res := range r.results {
		if res.StageID() == id {
			return res.Status() != StatusSkipped
		}
	}
	return false
}

// PartiallyApplied reports whether the run stopped abnormally after at
// least one host-mutating stage had completed.
func (r Report) PartiallyApplied() bool {
	if r.outcome != OutcomeFailed && r.outcome != OutcomeInterrupted {
		return false
	}
	for _, res := range r.Completed() {
		if res.Mutates() {
			return true
		}
	}
	return false
}
