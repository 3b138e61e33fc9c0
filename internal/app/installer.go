// Package app wires the installation pipeline.
package app

import (
	"context"
	"io"

	"github.com/felixgeelhaar/dockerup/internal/domain/config"
	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/domain/platform"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/apt"
	"github.com/felixgeelhaar/dockerup/internal/provider/docker"
	"github.com/felixgeelhaar/dockerup/internal/tui/ui"
	"github.com/google/uuid"
)

// Dependencies are the host-facing collaborators of an Installer.
type Dependencies struct {
	Runner      ports.CommandRunner
	FS          ports.FileSystem
	Confirmer   ports.Confirmer
	LookPath    docker.LookPathFunc
	EUID        func() int
	CurrentUser func() (Identity, error)
	Logger      ports.Logger
	Out         io.Writer
	Styles      ui.Styles
}

// Installer runs the Docker Engine installation pipeline.
type Installer struct {
	cfg   config.Config
	deps  Dependencies
	runID string
}

// New creates an Installer. cfg must already be validated.
func New(cfg config.Config, deps Dependencies) *Installer {
	return &Installer{
		cfg:   cfg,
		deps:  deps,
		runID: uuid.NewString(),
	}
}

// RunID returns the identifier attached to every log line of this run.
func (i *Installer) RunID() string {
	return i.runID
}

// Stages builds the pipeline in execution order.
func (i *Installer) Stages() []pipeline.Stage {
	d := i.deps
	extractor := docker.PositionalExtractor{}

	guard := NewGuardStage(d.EUID, d.CurrentUser, d.Runner, i.cfg.PromptTimeout.Std())
	validator := platform.NewValidator(d.FS, i.cfg.OSReleasePath, i.cfg.Distribution, i.cfg.Minimum())

	stages := []pipeline.Stage{
		guard,
		validator,
		docker.NewDetectStage(d.LookPath, d.Runner, d.Confirmer, extractor),
		apt.NewDependencyStage(d.Runner),
		apt.NewRepositoryStage(d.Runner, d.FS, validator, apt.RepositoryOptions{
			BaseURL:        i.cfg.BaseURL,
			KeyringDir:     i.cfg.KeyringDir,
			KeyringPath:    i.cfg.KeyringPath,
			ListPath:       i.cfg.ListPath,
			KeyFingerprint: i.cfg.KeyFingerprint,
		}),
		docker.NewPackageStage(d.Runner, i.cfg.Version),
		docker.NewPostInstallStage(d.Runner, d.FS, guard, i.cfg.UserConfigDir),
		docker.NewVerifyStage(d.Runner, extractor, i.cfg.TestImage, i.cfg.ExpectedOutput),
	}

	steps := make([]string, 0, len(stages))
	for _, s := range stages {
		steps = append(steps, s.Describe())
	}
	return append(stages, NewReportStage(d.Runner, extractor, d.Out, d.Styles, steps))
}

// Run executes the pipeline and returns its report.
func (i *Installer) Run(ctx context.Context) pipeline.Report {
	logger := i.deps.Logger.With(ports.F("run_id", i.runID))
	logger.Debug(ctx, "starting installation",
		ports.F("version", i.cfg.Version),
		ports.F("minimum_platform", i.cfg.MinimumVersion))

	return pipeline.NewController(logger).
		WithFinally(PartialStateHook).
		Execute(ctx, i.Stages())
}
