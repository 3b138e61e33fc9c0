package pipeline

import (
	"time"
)

// Result captures the outcome of executing a single stage.
type Result struct {
	stageID  StageID
	describe string
	status   Status
	err      error
	duration time.Duration
	mutates  bool
}

// NewResult creates a new Result.
func NewResult(stageID StageID, status Status, err error) Result {
	return Result{
		stageID: stageID,
		status:  status,
		err:     err,
	}
}

// StageID returns the ID of the stage that was executed.
func (r Result) StageID() StageID {
	return r.stageID
}

// Describe returns the stage label.
func (r Result) Describe() string {
	return r.describe
}

// Status returns the final status of the stage.
func (r Result) Status() Status {
	return r.status
}

// Error returns the failure or halt reason, if any.
func (r Result) Error() error {
	return r.err
}

// Duration returns how long the stage took to execute.
func (r Result) Duration() time.Duration {
	return r.duration
}

// Mutates reports whether the stage changes host state.
func (r Result) Mutates() bool {
	return r.mutates
}

// Success returns true if the stage completed successfully.
func (r Result) Success() bool {
	return r.status == StatusSucceeded
}

// WithDuration returns a new Result with duration set.
func (r Result) WithDuration(d time.Duration) Result {
	r.duration = d
	return r
}

// WithStage returns a new Result carrying the stage's label and mutation flag.
func (r Result) WithStage(s Stage) Result {
	r.describe = s.Describe()
	r.mutates = IsMutating(s)
	return r
}
