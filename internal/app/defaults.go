package app

import (
	"os"
	"os/exec"
	"os/user"

	"github.com/felixgeelhaar/dockerup/internal/adapters/command"
	"github.com/felixgeelhaar/dockerup/internal/adapters/filesystem"
	"github.com/felixgeelhaar/dockerup/internal/adapters/prompt"
	"github.com/felixgeelhaar/dockerup/internal/domain/config"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/tui/ui"
)

// DefaultDependencies wires the installer to the real host.
func DefaultDependencies(cfg config.Config, logger ports.Logger) Dependencies {
	confirmer := ports.AlwaysConfirm
	if !cfg.AssumeYes {
		confirmer = prompt.New(os.Stdin, os.Stdout, cfg.PromptTimeout.Std())
	}

	styles := ui.PlainStyles()
	if prompt.IsTerminal(os.Stdout) {
		styles = ui.DefaultStyles()
	}

	return Dependencies{
		Runner:      command.NewLoggingRunner(command.NewRealRunner(command.WithEnv(command.StableLocale)), logger),
		FS:          filesystem.NewRealFileSystem(),
		Confirmer:   confirmer,
		LookPath:    exec.LookPath,
		EUID:        os.Geteuid,
		CurrentUser: CurrentUser,
		Logger:      logger,
		Out:         os.Stdout,
		Styles:      styles,
	}
}

// CurrentUser resolves the invoking account from the OS user database.
func CurrentUser() (Identity, error) {
	u, err := user.Current()
	if err != nil {
		return Identity{}, err
	}
	return Identity{Username: u.Username, HomeDir: u.HomeDir}, nil
}
