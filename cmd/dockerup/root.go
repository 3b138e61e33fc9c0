package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/felixgeelhaar/dockerup/internal/adapters/filesystem"
	"github.com/felixgeelhaar/dockerup/internal/adapters/logging"
	"github.com/felixgeelhaar/dockerup/internal/adapters/prompt"
	"github.com/felixgeelhaar/dockerup/internal/app"
	"github.com/felixgeelhaar/dockerup/internal/domain/config"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/spf13/cobra"
)

const dryRunNotice = "Dry-run mode is not supported; no changes were made."

// cli holds the process-level collaborators of the root command.
type cli struct {
	stdout  io.Writer
	stderr  io.Writer
	fs      ports.FileSystem
	getenv  func(string) string
	color   bool
	install func(ctx context.Context, cfg config.Config, logger ports.Logger) int
}

func defaultCLI() *cli {
	return &cli{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		fs:      filesystem.NewRealFileSystem(),
		getenv:  os.Getenv,
		color:   prompt.IsTerminal(os.Stdout),
		install: install,
	}
}

// exitError carries a non-zero exit code that has already been reported.
type exitError int

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// unknownOptionError reports an unsupported flag or argument.
type unknownOptionError struct {
	option string
}

func (e *unknownOptionError) Error() string {
	return "unknown option: " + e.option
}

func newRootCmd(c *cli) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "dockerup",
		Short: "Install Docker Engine and Docker Compose on Ubuntu",
		Long: `dockerup installs Docker Engine and the Docker Compose plugin from the
official Docker apt repository on Ubuntu 20.04 or newer.

It must be run as a regular user with sudo access. Settings can be
overridden with DOCKERUP_CONFIG, DOCKERUP_VERSION, DOCKERUP_LOG_FORMAT,
DOCKERUP_LOG_LEVEL and DOCKERUP_ASSUME_YES.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &unknownOptionError{option: args[0]}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dryRun {
				_, _ = fmt.Fprintln(c.stdout, dryRunNotice)
				return nil
			}
			return c.run(cmd.Context())
		},
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a notice and exit without changing anything")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return unknownOption(err)
	})

	return cmd
}

// unknownOption extracts the offending token from a pflag parse error.
func unknownOption(err error) error {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown flag: "):
		return &unknownOptionError{option: strings.TrimPrefix(msg, "unknown flag: ")}
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		if i := strings.LastIndex(msg, " in "); i >= 0 {
			return &unknownOptionError{option: msg[i+len(" in "):]}
		}
	}
	return &unknownOptionError{option: msg}
}

func (c *cli) run(ctx context.Context) error {
	cfg, err := config.NewLoader(c.fs, c.getenv).Load()
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(
		logging.WithOutput(c.stdout),
		logging.WithLevel(cfg.Level()),
		logging.WithJSONFormat(cfg.LogFormat == config.LogFormatJSON),
		logging.WithColor(c.color),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if code := c.install(ctx, cfg, logger); code != 0 {
		return exitError(code)
	}
	return nil
}

func install(ctx context.Context, cfg config.Config, logger ports.Logger) int {
	return app.New(cfg, app.DefaultDependencies(cfg, logger)).Run(ctx).ExitCode()
}

// execute runs the root command and maps its result to an exit code.
func execute(c *cli, args []string) int {
	cmd := newRootCmd(c)
	cmd.SetArgs(args)
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	err := cmd.ExecuteContext(context.Background())

	var exit exitError
	var unknown *unknownOptionError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return int(exit)
	case errors.As(err, &unknown):
		_, _ = fmt.Fprintln(c.stderr, unknown.Error())
		return 1
	default:
		_, _ = fmt.Fprintf(c.stderr, "Error: %s\n", formatError(err))
		return 1
	}
}

// formatError renders configuration errors with their suggestion.
func formatError(err error) string {
	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Format()
	}
	if userErr := config.GetUserError(err); userErr != nil {
		return userErr.Format()
	}
	return err.Error()
}
