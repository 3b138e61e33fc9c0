package pipeline

// Status is the tagged outcome of a single stage.
type Status string

const (
	// StatusSucceeded indicates the stage completed its work.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates a fatal failure; the run stops with exit code 1.
	StatusFailed Status = "failed"
	// StatusHalted indicates a clean stop requested by the stage (exit code 0).
	StatusHalted Status = "halted"
	// StatusSkipped indicates the stage never ran because an earlier one stopped the run.
	StatusSkipped Status = "skipped"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Stops returns true if this status ends the run.
func (s Status) Stops() bool {
	return s == StatusFailed || s == StatusHalted
}
