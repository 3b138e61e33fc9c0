package apt

import (
	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// Prerequisites are the packages needed to fetch and trust a signed repository.
var Prerequisites = []string{
	"ca-certificates",
	"curl",
	"gnupg",
	"lsb-release",
	"software-properties-common",
	"apt-transport-https",
}

// DependencyStage refreshes the package index and installs Prerequisites.
type DependencyStage struct {
	id     pipeline.StageID
	runner ports.CommandRunner
	pkgs   []Package
}

// NewDependencyStage creates a DependencyStage.
func NewDependencyStage(runner ports.CommandRunner) *DependencyStage {
	return &DependencyStage{
		id:     pipeline.MustNewStageID("apt:dependencies"),
		runner: runner,
		pkgs:   Packages("", Prerequisites...),
	}
}

// ID returns the stage identifier.
func (s *DependencyStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *DependencyStage) Describe() string {
	return "install prerequisites"
}

// Mutates reports that the stage changes the host.
func (s *DependencyStage) Mutates() bool {
	return true
}

// Run updates the package lists then installs the prerequisites.
func (s *DependencyStage) Run(ctx pipeline.RunContext) error {
	log := ctx.Logger()

	log.Info(ctx.Context(), "Updating package lists")
	if err := Update(ctx.Context(), s.runner, pipeline.ErrCodeAptUpdateFailed, "failed to update package lists"); err != nil {
		return err
	}

	log.Info(ctx.Context(), "Installing prerequisites")
	if err := Install(ctx.Context(), s.runner, pipeline.ErrCodeDependencyInstallFailed, "failed to install prerequisites", s.pkgs); err != nil {
		return err
	}

	log.Success(ctx.Context(), "Prerequisites installed")
	return nil
}

var _ pipeline.MutatingStage = (*DependencyStage)(nil)
