package docker

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/commandutil"
)

// VerifyStage checks that the engine answers and runs a test container.
type VerifyStage struct {
	id        pipeline.StageID
	runner    ports.CommandRunner
	extractor VersionExtractor
	image     string
	expected  string
	versions  Versions
	smokeOK   bool
}

// NewVerifyStage creates a VerifyStage running image and expecting expected
// in its output.
func NewVerifyStage(runner ports.CommandRunner, extractor VersionExtractor, image, expected string) *VerifyStage {
	return &VerifyStage{
		id:        pipeline.MustNewStageID("docker:verify"),
		runner:    runner,
		extractor: extractor,
		image:     image,
		expected:  expected,
	}
}

// ID returns the stage identifier.
func (s *VerifyStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *VerifyStage) Describe() string {
	return "verify installation"
}

// Versions returns the versions observed by the last run.
func (s *VerifyStage) Versions() Versions {
	return s.versions
}

// SmokeTestPassed reports whether the test container printed the expected text.
func (s *VerifyStage) SmokeTestPassed() bool {
	return s.smokeOK
}

// Run fails only when the engine itself does not answer sanely. Compose and
// the test container are reported as warnings.
func (s *VerifyStage) Run(ctx pipeline.RunContext) error {
	c := ctx.Context()
	log := ctx.Logger()
	s.versions = Versions{Engine: Unknown, Compose: Unknown}
	s.smokeOK = false

	log.Info(c, "Verifying installation")

	engine, err := EngineVersion(c, s.runner, s.extractor)
	switch {
	case errors.Is(err, ErrVersionQuery):
		return pipeline.NewStageError(pipeline.ErrCodeEngineNotResponding, "docker is not responding").
			WithSuggestion("Check the daemon with 'sudo systemctl status docker'.")
	case err != nil:
		return pipeline.NewStageError(pipeline.ErrCodeVersionParse, "unexpected docker version output").
			WithUnderlying(err)
	}
	s.versions.Engine = engine
	log.Success(c, "Docker Engine "+engine)

	compose, err := ComposeVersion(c, s.runner, s.extractor)
	if err != nil {
		log.Warn(c, "Docker Compose plugin not responding", ports.F("error", err))
	} else {
		s.versions.Compose = compose
		log.Success(c, "Docker Compose "+compose)
	}

	log.Info(c, "Running test container")
	result, ok := commandutil.Probe(c, s.runner, "sudo", "docker", "run", "--rm", s.image)
	if ok && strings.Contains(result.Combined(), s.expected) {
		s.smokeOK = true
		log.Success(c, "Test container ran successfully")
	} else {
		log.Warn(c, "Test container did not produce the expected output",
			ports.F("image", s.image), ports.F("exit_code", result.ExitCode))
	}
	return nil
}

var _ pipeline.Stage = (*VerifyStage)(nil)
