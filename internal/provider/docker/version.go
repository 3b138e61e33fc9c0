// Package docker provides the Docker Engine stages: prior-install
// detection, package installation, post-install setup and verification.
package docker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/commandutil"
	"golang.org/x/mod/semver"
)

// Unknown is shown when a version cannot be determined.
const Unknown = "unknown"

// Version errors.
var (
	// ErrVersionParse is returned when version output has an unexpected shape.
	ErrVersionParse = errors.New("cannot parse version")
	// ErrVersionQuery is returned when a version command did not run or exited non-zero.
	ErrVersionQuery = errors.New("version query failed")
)

// Versions holds the installed component versions.
type Versions struct {
	Engine  string
	Compose string
}

// VersionExtractor pulls version strings out of CLI output.
type VersionExtractor interface {
	// Engine parses `docker --version` output.
	Engine(output string) (string, error)
	// Compose parses `docker compose version` output.
	Compose(output string) (string, error)
}

// PositionalExtractor reads versions by field position:
//
//	Docker version 24.0.7, build afdd53b         -> field 3
//	Docker Compose version v2.21.0               -> field 4
type PositionalExtractor struct{}

// Engine implements VersionExtractor.
func (PositionalExtractor) Engine(output string) (string, error) {
	return field(output, 2)
}

// Compose implements VersionExtractor.
func (PositionalExtractor) Compose(output string) (string, error) {
	return field(output, 3)
}

func field(output string, index int) (string, error) {
	line := strings.TrimSpace(output)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) <= index {
		return "", fmt.Errorf("%w: %q", ErrVersionParse, line)
	}

	v := strings.TrimSuffix(fields[index], ",")
	v = strings.TrimPrefix(v, "v")
	if !semver.IsValid(canonical(v)) {
		return "", fmt.Errorf("%w: %q", ErrVersionParse, fields[index])
	}
	return v, nil
}

// canonical turns a Docker version into a semver string. Releases before
// 20.10 zero-pad the month ("19.03.15", "17.03.2-ce"), which semver rejects.
func canonical(v string) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}

	parts := strings.Split(core, ".")
	for i, p := range parts {
		if trimmed := strings.TrimLeft(p, "0"); trimmed != p {
			if trimmed == "" {
				trimmed = "0"
			}
			parts[i] = trimmed
		}
	}
	return "v" + strings.Join(parts, ".") + suffix
}

// EngineVersion runs `docker --version` and extracts the engine version.
// A failed command yields ErrVersionQuery, malformed output ErrVersionParse.
func EngineVersion(ctx context.Context, runner ports.CommandRunner, extractor VersionExtractor) (string, error) {
	result, ok := commandutil.Probe(ctx, runner, "docker", "--version")
	if !ok {
		return "", ErrVersionQuery
	}
	return extractor.Engine(result.Stdout)
}

// ComposeVersion runs `docker compose version` and extracts the plugin version.
func ComposeVersion(ctx context.Context, runner ports.CommandRunner, extractor VersionExtractor) (string, error) {
	result, ok := commandutil.Probe(ctx, runner, "docker", "compose", "version")
	if !ok {
		return "", ErrVersionQuery
	}
	return extractor.Compose(result.Stdout)
}

// QueryVersions returns the installed versions, Unknown where unavailable.
func QueryVersions(ctx context.Context, runner ports.CommandRunner, extractor VersionExtractor) Versions {
	v := Versions{Engine: Unknown, Compose: Unknown}
	if engine, err := EngineVersion(ctx, runner, extractor); err == nil {
		v.Engine = engine
	}
	if compose, err := ComposeVersion(ctx, runner, extractor); err == nil {
		v.Compose = compose
	}
	return v
}

var _ VersionExtractor = PositionalExtractor{}
