// Package apt provides the apt stages: prerequisite installation and
// third-party repository configuration on Debian-family hosts.
package apt

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/commandutil"
	"github.com/felixgeelhaar/dockerup/internal/validation"
)

// LatestVersion leaves a package unpinned.
const LatestVersion = "latest"

// Package represents an apt package to install.
type Package struct {
	Name    string
	Version string // Optional: specific version
}

// FullName returns the package name with optional version specifier.
func (p Package) FullName() string {
	if p.Version != "" && p.Version != LatestVersion {
		return fmt.Sprintf("%s=%s", p.Name, p.Version)
	}
	return p.Name
}

// Validate checks the name and version before they reach apt-get.
func (p Package) Validate() error {
	if err := validation.ValidatePackageName(p.Name); err != nil {
		return err
	}
	if p.Version != "" && p.Version != LatestVersion {
		if err := validation.ValidatePackageVersion(p.Version); err != nil {
			return err
		}
	}
	return nil
}

// Packages builds one Package per name, all pinned to version.
func Packages(version string, names ...string) []Package {
	pkgs := make([]Package, len(names))
	for i, name := range names {
		pkgs[i] = Package{Name: name, Version: version}
	}
	return pkgs
}

// InstallArgs returns the sudo arguments installing pkgs non-interactively.
func InstallArgs(pkgs []Package) ([]string, error) {
	args := []string{"apt-get", "install", "-y"}
	for _, p := range pkgs {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		args = append(args, p.FullName())
	}
	return args, nil
}

// UpdateArgs returns the sudo arguments refreshing the package index.
func UpdateArgs() []string {
	return []string{"apt-get", "update"}
}

// Install runs apt-get install for pkgs, failing with code.
func Install(ctx context.Context, runner ports.CommandRunner, code, message string, pkgs []Package) error {
	args, err := InstallArgs(pkgs)
	if err != nil {
		return pipeline.NewStageError(code, message).WithUnderlying(err)
	}
	_, err = commandutil.Run(ctx, runner, code, message, "sudo", args...)
	return err
}

// Update runs apt-get update, failing with code.
func Update(ctx context.Context, runner ports.CommandRunner, code, message string) error {
	_, err := commandutil.Run(ctx, runner, code, message, "sudo", UpdateArgs()...)
	return err
}
