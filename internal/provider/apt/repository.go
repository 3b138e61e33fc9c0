package apt

import (
	"fmt"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/domain/platform"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/commandutil"
	"github.com/felixgeelhaar/dockerup/internal/validation"
	"github.com/kballard/go-shellquote"
)

// DefaultSuite is the repository channel.
const DefaultSuite = "stable"

// Repository is a signed apt source.
type Repository struct {
	KeyringPath string
	Arch        string
	BaseURL     string
	Codename    string
	Suite       string
	ListPath    string
}

// SourceLine renders the one-line sources.list entry.
func (r Repository) SourceLine() string {
	return fmt.Sprintf("deb [arch=%s signed-by=%s] %s %s %s",
		r.Arch, r.KeyringPath, r.BaseURL, r.Codename, r.Suite)
}

// KeyURL is where the repository publishes its signing key.
func (r Repository) KeyURL() string {
	return r.BaseURL + "/gpg"
}

// Validate checks every field that ends up in a root shell command.
func (r Repository) Validate() error {
	if err := r.validateSource(); err != nil {
		return err
	}
	return firstInvalid(fieldCheck{"architecture", validation.ValidateArch(r.Arch)})
}

// validateSource checks the fields known before the architecture is detected.
func (r Repository) validateSource() error {
	return firstInvalid(
		fieldCheck{"keyring path", validation.ValidateAbsPath(r.KeyringPath)},
		fieldCheck{"list path", validation.ValidateAbsPath(r.ListPath)},
		fieldCheck{"base URL", validation.ValidateURL(r.BaseURL)},
		fieldCheck{"codename", validation.ValidateCodename(r.Codename)},
		fieldCheck{"suite", validation.ValidateCodename(r.Suite)},
	)
}

type fieldCheck struct {
	field string
	err   error
}

func firstInvalid(checks ...fieldCheck) error {
	for _, c := range checks {
		if c.err != nil {
			return fmt.Errorf("repository %s: %w", c.field, c.err)
		}
	}
	return nil
}

// FetchKeyScript downloads and dearmors the signing key into keyringPath.
func FetchKeyScript(keyURL, keyringPath string) string {
	return fmt.Sprintf("curl -fsSL %s | gpg --dearmor --yes -o %s",
		shellquote.Join(keyURL), shellquote.Join(keyringPath))
}

// SourceListScript writes line to path, replacing any previous content.
func SourceListScript(line, path string) string {
	return "printf '%s\\n' " + shellquote.Join(line) + " > " + shellquote.Join(path)
}

// ReleaseSource supplies the validated host release.
type ReleaseSource interface {
	Descriptor() platform.Descriptor
}

// RepositoryOptions configures a RepositoryStage.
type RepositoryOptions struct {
	BaseURL        string
	KeyringDir     string
	KeyringPath    string
	ListPath       string
	Suite          string
	KeyFingerprint string // empty disables verification
}

// RepositoryStage installs the signing key and registers the apt source.
type RepositoryStage struct {
	id      pipeline.StageID
	runner  ports.CommandRunner
	fs      ports.FileSystem
	release ReleaseSource
	opts    RepositoryOptions
	repo    Repository
}

// NewRepositoryStage creates a RepositoryStage.
func NewRepositoryStage(runner ports.CommandRunner, fs ports.FileSystem, release ReleaseSource, opts RepositoryOptions) *RepositoryStage {
	if opts.Suite == "" {
		opts.Suite = DefaultSuite
	}
	return &RepositoryStage{
		id:      pipeline.MustNewStageID("apt:repository"),
		runner:  runner,
		fs:      fs,
		release: release,
		opts:    opts,
	}
}

// ID returns the stage identifier.
func (s *RepositoryStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *RepositoryStage) Describe() string {
	return "configure package repository"
}

// Mutates reports that the stage changes the host.
func (s *RepositoryStage) Mutates() bool {
	return true
}

// Repository returns the registered repository. Zero until Run succeeds.
func (s *RepositoryStage) Repository() Repository {
	return s.repo
}

// Run performs the key and source steps in order, stopping at the first failure.
func (s *RepositoryStage) Run(ctx pipeline.RunContext) error {
	c := ctx.Context()
	log := ctx.Logger()

	repo := Repository{
		KeyringPath: s.opts.KeyringPath,
		BaseURL:     s.opts.BaseURL,
		Codename:    s.release.Descriptor().Codename,
		Suite:       s.opts.Suite,
		ListPath:    s.opts.ListPath,
	}
	if err := s.validateOptions(repo); err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeSourceListFailed, "invalid repository definition").
			WithUnderlying(err)
	}

	log.Info(c, "Adding repository signing key")
	if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeKeyringDirFailed,
		"failed to create keyring directory",
		"sudo", "install", "-m", "0755", "-d", s.opts.KeyringDir); err != nil {
		return err
	}

	if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeKeyFetchFailed,
		"failed to download signing key",
		"sudo", "bash", "-o", "pipefail", "-c", FetchKeyScript(repo.KeyURL(), repo.KeyringPath)); err != nil {
		return err
	}

	if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeKeyPermissionsFailed,
		"failed to set signing key permissions",
		"sudo", "chmod", "a+r", repo.KeyringPath); err != nil {
		return err
	}

	if s.opts.KeyFingerprint != "" {
		if err := s.verifyKey(repo.KeyringPath); err != nil {
			return err
		}
		log.Info(c, "Signing key fingerprint verified", ports.F("fingerprint", NormalizeFingerprint(s.opts.KeyFingerprint)))
	}

	log.Info(c, "Setting up repository")
	result, err := commandutil.Run(c, s.runner, pipeline.ErrCodeArchDetectFailed,
		"failed to detect architecture",
		"dpkg", "--print-architecture")
	if err != nil {
		return err
	}
	repo.Arch = result.FirstLine()
	if err := repo.Validate(); err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeArchDetectFailed, "failed to detect architecture").
			WithUnderlying(err)
	}

	if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeSourceListFailed,
		"failed to write repository source list",
		"sudo", "bash", "-c", SourceListScript(repo.SourceLine(), repo.ListPath)); err != nil {
		return err
	}

	log.Info(c, "Updating package lists")
	if err := Update(c, s.runner, pipeline.ErrCodeAptRepoUpdateFailed,
		"failed to update package lists after adding repository"); err != nil {
		return err
	}

	s.repo = repo
	log.Success(c, "Repository configured", ports.F("source", repo.SourceLine()))
	return nil
}

// validateOptions checks the inputs known before the architecture is detected.
func (s *RepositoryStage) validateOptions(repo Repository) error {
	if err := firstInvalid(fieldCheck{"keyring directory", validation.ValidateAbsPath(s.opts.KeyringDir)}); err != nil {
		return err
	}
	return repo.validateSource()
}

func (s *RepositoryStage) verifyKey(path string) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeKeyFingerprintMismatch, "cannot read signing key").
			WithUnderlying(err)
	}
	if err := VerifyFingerprint(data, s.opts.KeyFingerprint); err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeKeyFingerprintMismatch, "signing key verification failed").
			WithUnderlying(err).
			WithSuggestion("The downloaded key does not match the published fingerprint. Check your network path before retrying.")
	}
	return nil
}

var _ pipeline.MutatingStage = (*RepositoryStage)(nil)
