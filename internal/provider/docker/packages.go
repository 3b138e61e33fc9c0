package docker

import (
	"fmt"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/apt"
)

// EnginePackages are the packages making up a Docker Engine installation.
var EnginePackages = []string{
	"docker-ce",
	"docker-ce-cli",
	"containerd.io",
	"docker-buildx-plugin",
	"docker-compose-plugin",
}

// PackageStage installs EnginePackages, optionally pinned to one version.
type PackageStage struct {
	id      pipeline.StageID
	runner  ports.CommandRunner
	version string
}

// NewPackageStage creates a PackageStage. version "latest" leaves packages unpinned.
func NewPackageStage(runner ports.CommandRunner, version string) *PackageStage {
	return &PackageStage{
		id:      pipeline.MustNewStageID("docker:packages"),
		runner:  runner,
		version: version,
	}
}

// ID returns the stage identifier.
func (s *PackageStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *PackageStage) Describe() string {
	return "install docker packages"
}

// Mutates reports that the stage changes the host.
func (s *PackageStage) Mutates() bool {
	return true
}

// Packages returns the packages the stage installs.
func (s *PackageStage) Packages() []apt.Package {
	return apt.Packages(s.version, EnginePackages...)
}

// Run installs the packages.
func (s *PackageStage) Run(ctx pipeline.RunContext) error {
	label := "latest"
	if s.version != "" && s.version != apt.LatestVersion {
		label = s.version
	}
	ctx.Logger().Info(ctx.Context(), fmt.Sprintf("Installing Docker Engine (%s)", label))

	if err := apt.Install(ctx.Context(), s.runner, pipeline.ErrCodePackageInstallFailed,
		"failed to install Docker packages", s.Packages()); err != nil {
		return err
	}

	ctx.Logger().Success(ctx.Context(), "Docker packages installed")
	return nil
}

var _ pipeline.MutatingStage = (*PackageStage)(nil)
