// Package validation checks values before they are interpolated into
// privileged commands, preventing command injection.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidVersion     = errors.New("invalid package version")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidArch        = errors.New("invalid architecture")
	ErrInvalidCodename    = errors.New("invalid release codename")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPath        = errors.New("invalid path")
	ErrCommandInjection   = errors.New("potential command injection detected")
)

var (
	// packageNameRegex matches apt package names.
	// Examples: "docker-ce", "containerd.io", "g++"
	packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// versionRegex matches apt version strings, including epoch and tilde.
	// Example: "5:24.0.7-1~ubuntu.22.04~jammy"
	versionRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.+~:-]*$`)

	// urlRegex matches https repository URLs.
	urlRegex = regexp.MustCompile(`^https://[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

	// archRegex matches dpkg architecture names such as "amd64" or "arm64".
	archRegex = regexp.MustCompile(`^[a-z0-9]+$`)

	// codenameRegex matches release codenames such as "jammy".
	codenameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

	// usernameRegex matches POSIX login names.
	usernameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_.-]*$`)

	// shellMetaChars contains shell metacharacters that could enable injection
	shellMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "<", ">", "\n", "\r", "\\", "'", "\""}
)

// ValidatePackageName validates an apt package name.
func ValidatePackageName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if len(name) > 256 {
		return fmt.Errorf("%w: name too long (max 256 characters)", ErrInvalidPackageName)
	}
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidPackageName, name)
	}
	return nil
}

// ValidatePackageVersion validates an apt version string.
func ValidatePackageVersion(version string) error {
	if version == "" {
		return ErrEmptyInput
	}
	if len(version) > 256 {
		return fmt.Errorf("%w: version too long (max 256 characters)", ErrInvalidVersion)
	}
	if !versionRegex.MatchString(version) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidVersion, version)
	}
	return nil
}

// ValidateURL validates an https repository URL.
func ValidateURL(urlStr string) error {
	if urlStr == "" {
		return ErrEmptyInput
	}
	if len(urlStr) > 2048 {
		return fmt.Errorf("%w: URL too long", ErrInvalidURL)
	}
	if !urlRegex.MatchString(urlStr) {
		return fmt.Errorf("%w: %q must be an https URL", ErrInvalidURL, urlStr)
	}
	return nil
}

// ValidateArch validates a dpkg architecture name.
func ValidateArch(arch string) error {
	if arch == "" {
		return ErrEmptyInput
	}
	if !archRegex.MatchString(arch) {
		return fmt.Errorf("%w: %q", ErrInvalidArch, arch)
	}
	return nil
}

// ValidateCodename validates a distribution release codename.
func ValidateCodename(codename string) error {
	if codename == "" {
		return ErrEmptyInput
	}
	if !codenameRegex.MatchString(codename) {
		return fmt.Errorf("%w: %q", ErrInvalidCodename, codename)
	}
	return nil
}

// ValidateUsername validates a login name passed to usermod and chown.
func ValidateUsername(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if len(name) > 32 {
		return fmt.Errorf("%w: name too long (max 32 characters)", ErrInvalidUsername)
	}
	if !usernameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, name)
	}
	return nil
}

// ValidateAbsPath validates an absolute, clean path free of shell metacharacters.
func ValidateAbsPath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}
	if !filepath.IsAbs(path) || filepath.Clean(path) != path {
		return fmt.Errorf("%w: %q must be absolute and clean", ErrInvalidPath, path)
	}
	if containsShellMeta(path) || strings.ContainsAny(path, " \t") {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, path)
	}
	return nil
}

// containsShellMeta checks if a string contains any shell metacharacters.
func containsShellMeta(s string) bool {
	for _, char := range shellMetaChars {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}
