package docker

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/commandutil"
	"github.com/felixgeelhaar/dockerup/internal/validation"
)

// DockerGroup is the group granting access to the daemon socket.
const DockerGroup = "docker"

// Services are enabled at boot.
var Services = []string{"docker.service", "containerd.service"}

// Account identifies the user being granted docker access.
type Account interface {
	Username() string
	HomeDir() string
}

// PostInstallStage grants the invoking user docker access, enables the
// services and prepares the per-user config directory.
type PostInstallStage struct {
	id        pipeline.StageID
	runner    ports.CommandRunner
	fs        ports.FileSystem
	account   Account
	configDir string
}

// NewPostInstallStage creates a PostInstallStage. A leading ~ in configDir
// expands to the account's home directory.
func NewPostInstallStage(runner ports.CommandRunner, fs ports.FileSystem, account Account, configDir string) *PostInstallStage {
	return &PostInstallStage{
		id:        pipeline.MustNewStageID("docker:postinstall"),
		runner:    runner,
		fs:        fs,
		account:   account,
		configDir: configDir,
	}
}

// ID returns the stage identifier.
func (s *PostInstallStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *PostInstallStage) Describe() string {
	return "configure docker"
}

// Mutates reports that the stage changes the host.
func (s *PostInstallStage) Mutates() bool {
	return true
}

// Run performs the post-install steps in order.
func (s *PostInstallStage) Run(ctx pipeline.RunContext) error {
	c := ctx.Context()
	log := ctx.Logger()
	user := s.account.Username()

	if err := validation.ValidateUsername(user); err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeGroupAddFailed, "cannot determine the invoking user").
			WithUnderlying(err)
	}

	log.Info(c, fmt.Sprintf("Adding %s to the %s group", user, DockerGroup))
	if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeGroupAddFailed,
		fmt.Sprintf("failed to add %s to the %s group", user, DockerGroup),
		"sudo", "usermod", "-aG", DockerGroup, user); err != nil {
		return err
	}

	log.Info(c, "Enabling Docker services")
	for _, svc := range Services {
		if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeServiceEnableFailed,
			fmt.Sprintf("failed to enable %s", svc),
			"sudo", "systemctl", "enable", svc); err != nil {
			return err
		}
	}

	if _, active := commandutil.Probe(c, s.runner, "systemctl", "is-active", "--quiet", "docker"); !active {
		log.Info(c, "Starting Docker service")
		if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeServiceStartFailed,
			"failed to start docker",
			"sudo", "systemctl", "start", "docker"); err != nil {
			return err
		}
	}

	if err := s.prepareConfigDir(ctx, user, ports.ExpandPath(s.configDir, s.account.HomeDir())); err != nil {
		return err
	}

	log.Success(c, "Docker configured")
	return nil
}

func (s *PostInstallStage) prepareConfigDir(ctx pipeline.RunContext, user, dir string) error {
	c := ctx.Context()

	if err := validation.ValidateAbsPath(dir); err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeConfigDirFailed, "invalid config directory").
			WithUnderlying(err)
	}

	if !s.fs.IsDir(dir) {
		if err := s.fs.MkdirAll(dir, os.FileMode(0o755)); err != nil {
			return pipeline.NewStageError(pipeline.ErrCodeConfigDirFailed,
				fmt.Sprintf("failed to create %s", dir)).
				WithUnderlying(err)
		}
		ctx.Logger().Debug(c, "created config directory", ports.F("path", dir))
	}

	if _, err := commandutil.Run(c, s.runner, pipeline.ErrCodeConfigDirFailed,
		fmt.Sprintf("failed to set ownership of %s", dir),
		"sudo", "chown", "-R", user+":"+user, dir); err != nil {
		return err
	}
	return nil
}

var _ pipeline.MutatingStage = (*PostInstallStage)(nil)
