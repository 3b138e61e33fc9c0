package pipeline

// Stage is one unit of host-inspecting or host-mutating work.
//
// Run returns nil on success. An error wrapping ErrHalted stops the
// pipeline without failing it; any other error fails the run.
type Stage interface {
	// ID returns the unique identifier for this stage.
	ID() StageID

	// Describe returns a short human-readable label.
	Describe() string

	// Run performs the stage's work.
	Run(ctx RunContext) error
}

// MutatingStage is implemented by stages that change host state.
// The controller uses it to report partially applied runs.
type MutatingStage interface {
	Stage
	Mutates() bool
}

// IsMutating reports whether a stage changes host state.
func IsMutating(s Stage) bool {
	m, ok := s.(MutatingStage)
	return ok && m.Mutates()
}
