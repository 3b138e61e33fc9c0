// Package config holds the run configuration: built-in defaults optionally
// overlaid from a YAML or TOML file and environment variables.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/felixgeelhaar/dockerup/internal/domain/platform"
	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// LatestVersion is the pin value meaning "whatever the repository offers".
const LatestVersion = "latest"

// DockerKeyFingerprint is the published fingerprint of Docker's release signing key.
const DockerKeyFingerprint = "9DC858229FC7DD38854AE2D88D81803C0EBFCD88"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// aptVersionPattern is the character set apt accepts in a version string.
var aptVersionPattern = regexp.MustCompile(`^[A-Za-z0-9.+~:-]+$`)

// Config is the run configuration. It is immutable once loaded.
type Config struct {
	// Version pins the Docker packages; "latest" installs the newest.
	Version string `yaml:"version" toml:"version"`

	Distribution   string `yaml:"distribution" toml:"distribution"`
	MinimumVersion string `yaml:"minimum_version" toml:"minimum_version"`
	OSReleasePath  string `yaml:"os_release_path" toml:"os_release_path"`

	BaseURL        string `yaml:"base_url" toml:"base_url"`
	KeyringDir     string `yaml:"keyring_dir" toml:"keyring_dir"`
	KeyringPath    string `yaml:"keyring_path" toml:"keyring_path"`
	ListPath       string `yaml:"list_path" toml:"list_path"`
	KeyFingerprint string `yaml:"key_fingerprint" toml:"key_fingerprint"`

	UserConfigDir  string `yaml:"user_config_dir" toml:"user_config_dir"`
	TestImage      string `yaml:"test_image" toml:"test_image"`
	ExpectedOutput string `yaml:"expected_output" toml:"expected_output"`

	PromptTimeout Duration `yaml:"prompt_timeout" toml:"prompt_timeout"`
	AssumeYes     bool     `yaml:"assume_yes" toml:"assume_yes"`

	LogFormat string `yaml:"log_format" toml:"log_format"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Version:        LatestVersion,
		Distribution:   "ubuntu",
		MinimumVersion: "20.04",
		OSReleasePath:  "/etc/os-release",
		BaseURL:        "https://download.docker.com/linux/ubuntu",
		KeyringDir:     "/etc/apt/keyrings",
		KeyringPath:    "/etc/apt/keyrings/docker.gpg",
		ListPath:       "/etc/apt/sources.list.d/docker.list",
		KeyFingerprint: DockerKeyFingerprint,
		UserConfigDir:  "~/.docker",
		TestImage:      "hello-world",
		ExpectedOutput: "Hello from Docker!",
		PromptTimeout:  Duration(5 * time.Minute),
		LogFormat:      LogFormatText,
		LogLevel:       "info",
	}
}

// IsLatest reports whether no specific version is pinned.
func (c Config) IsLatest() bool {
	return c.Version == LatestVersion
}

// Minimum returns the parsed minimum platform version.
// Call Validate first; an invalid value yields the zero Version.
func (c Config) Minimum() platform.Version {
	v, _ := platform.ParseVersion(c.MinimumVersion)
	return v
}

// Level returns the configured log level.
func (c Config) Level() ports.Level {
	return ports.ParseLevel(c.LogLevel)
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var errs ValidationErrors

	switch {
	case c.Version == "":
		errs = errs.add("version", "must not be empty", `Use "latest" or an apt version string such as 5:24.0.7-1~ubuntu.22.04~jammy.`)
	case !c.IsLatest() && !aptVersionPattern.MatchString(c.Version):
		errs = errs.add("version", fmt.Sprintf("%q is not a valid apt version", c.Version),
			"Versions may only contain letters, digits and . + ~ : -")
	}

	if c.Distribution == "" {
		errs = errs.add("distribution", "must not be empty", "")
	}

	if _, err := platform.ParseVersion(c.MinimumVersion); err != nil {
		errs = errs.add("minimum_version", fmt.Sprintf("%q is not MAJOR.MINOR", c.MinimumVersion), `Use a release number such as "20.04".`)
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme != "https" || u.Host == "" {
		errs = errs.add("base_url", fmt.Sprintf("%q is not an https URL", c.BaseURL), "The repository must be served over https.")
	}

	for _, f := range []struct{ name, value string }{
		{"os_release_path", c.OSReleasePath},
		{"keyring_dir", c.KeyringDir},
		{"keyring_path", c.KeyringPath},
		{"list_path", c.ListPath},
		{"user_config_dir", c.UserConfigDir},
		{"test_image", c.TestImage},
	} {
		if f.value == "" {
			errs = errs.add(f.name, "must not be empty", "")
		}
	}

	if c.PromptTimeout < 0 {
		errs = errs.add("prompt_timeout", "must not be negative", "Use 0 to disable the timeout.")
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		errs = errs.add("log_format", fmt.Sprintf("unknown format %q", c.LogFormat), `Use "text" or "json".`)
	}

	switch c.LogLevel {
	case "debug", "info", "success", "warn", "warning", "error":
	default:
		errs = errs.add("log_level", fmt.Sprintf("unknown level %q", c.LogLevel), "Use debug, info, warn or error.")
	}

	return errs.err()
}

// Duration is a time.Duration that decodes from strings like "5m" or "90s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
