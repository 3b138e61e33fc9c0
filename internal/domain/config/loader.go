package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by the Loader.
const (
	EnvConfig    = "DOCKERUP_CONFIG"
	EnvVersion   = "DOCKERUP_VERSION"
	EnvLogFormat = "DOCKERUP_LOG_FORMAT"
	EnvLogLevel  = "DOCKERUP_LOG_LEVEL"
	EnvAssumeYes = "DOCKERUP_ASSUME_YES"
)

// Loader builds a Config from defaults, an optional file and the environment.
type Loader struct {
	fs     ports.FileSystem
	getenv func(string) string
}

// NewLoader creates a Loader. A nil getenv reads the process environment.
func NewLoader(fs ports.FileSystem, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Loader{fs: fs, getenv: getenv}
}

// Load returns the validated configuration.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(l.getenv(EnvConfig)); path != "" {
		if err := l.loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays the keys present in path onto cfg.
func (l *Loader) loadFile(path string, cfg *Config) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewConfigNotFoundError(path)
		}
		return NewUserError(ErrCodeConfigNotFound, "cannot read configuration file").
			WithContext(path).
			WithUnderlying(err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(path, data, cfg)
	case ".toml":
		return decodeTOML(path, data, cfg)
	default:
		return NewUnsupportedFormatError(path)
	}
}

func decodeYAML(path string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return NewYAMLParseError(path, err)
	}
	return nil
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return NewTOMLParseError(path, err)
	}
	return nil
}

// applyEnv applies DOCKERUP_* overrides. Unset or empty variables are ignored.
func (l *Loader) applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(l.getenv(EnvVersion)); v != "" {
		cfg.Version = v
	}
	if v := strings.TrimSpace(l.getenv(EnvLogFormat)); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(l.getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(l.getenv(EnvAssumeYes)); v != "" {
		yes, err := strconv.ParseBool(v)
		if err != nil {
			return NewInvalidEnvError(EnvAssumeYes, v, "true or false")
		}
		cfg.AssumeYes = yes
	}
	return nil
}
