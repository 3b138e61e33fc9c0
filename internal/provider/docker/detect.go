package docker

import (
	"fmt"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// LookPathFunc resolves an executable name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// DetectStage looks for an existing docker installation and asks before
// continuing over it.
type DetectStage struct {
	id        pipeline.StageID
	lookPath  LookPathFunc
	runner    ports.CommandRunner
	confirmer ports.Confirmer
	extractor VersionExtractor
	existing  string
}

// NewDetectStage creates a DetectStage.
func NewDetectStage(lookPath LookPathFunc, runner ports.CommandRunner, confirmer ports.Confirmer, extractor VersionExtractor) *DetectStage {
	return &DetectStage{
		id:        pipeline.MustNewStageID("docker:detect"),
		lookPath:  lookPath,
		runner:    runner,
		confirmer: confirmer,
		extractor: extractor,
	}
}

// ID returns the stage identifier.
func (s *DetectStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *DetectStage) Describe() string {
	return "detect existing installation"
}

// Existing returns the version found on the host, "" when none was found.
func (s *DetectStage) Existing() string {
	return s.existing
}

// Run halts with "installation cancelled" unless the operator confirms a reinstall.
func (s *DetectStage) Run(ctx pipeline.RunContext) error {
	c := ctx.Context()
	log := ctx.Logger()

	path, err := s.lookPath("docker")
	if err != nil {
		log.Debug(c, "docker not found on PATH")
		return nil
	}

	version, err := EngineVersion(c, s.runner, s.extractor)
	if err != nil {
		version = Unknown
	}
	s.existing = version

	log.Warn(c, fmt.Sprintf("Docker is already installed (version %s)", version), ports.F("path", path))

	ok, err := s.confirmer.Confirm(c, "Do you want to continue with reinstallation? (y/N)")
	if err != nil {
		if ctxErr := c.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Debug(c, "confirmation failed", ports.F("error", err))
	}
	if !ok {
		return pipeline.Halt("installation cancelled")
	}
	return nil
}

var _ pipeline.Stage = (*DetectStage)(nil)
