package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dockerup/internal/domain/pipeline"
	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/provider/commandutil"
)

// Identity is the account the installer runs for.
type Identity struct {
	Username string
	HomeDir  string
}

// GuardStage refuses to run as root, resolves the invoking user and caches
// sudo credentials. It is always the first stage.
type GuardStage struct {
	id       pipeline.StageID
	euid     func() int
	current  func() (Identity, error)
	runner   ports.CommandRunner
	timeout  time.Duration
	identity Identity
}

// NewGuardStage creates a GuardStage. timeout bounds the sudo password prompt; 0 disables it.
func NewGuardStage(euid func() int, current func() (Identity, error), runner ports.CommandRunner, timeout time.Duration) *GuardStage {
	return &GuardStage{
		id:      pipeline.MustNewStageID("guard:privilege"),
		euid:    euid,
		current: current,
		runner:  runner,
		timeout: timeout,
	}
}

// ID returns the stage identifier.
func (s *GuardStage) ID() pipeline.StageID {
	return s.id
}

// Describe returns the stage label.
func (s *GuardStage) Describe() string {
	return "check privileges"
}

// Username returns the invoking user's login name.
func (s *GuardStage) Username() string {
	return s.identity.Username
}

// HomeDir returns the invoking user's home directory.
func (s *GuardStage) HomeDir() string {
	return s.identity.HomeDir
}

// Run performs the privilege checks.
func (s *GuardStage) Run(ctx pipeline.RunContext) error {
	if s.euid() == 0 {
		return pipeline.NewStageError(pipeline.ErrCodeRootUser, "do not run as root").
			WithSuggestion("Run as a regular user with sudo access; the installer elevates individual commands.")
	}

	id, err := s.current()
	if err != nil {
		return pipeline.NewStageError(pipeline.ErrCodeUserUnknown, "cannot determine the current user").
			WithUnderlying(err)
	}
	if id.Username == "" {
		return pipeline.NewStageError(pipeline.ErrCodeUserUnknown, "cannot determine the current user")
	}
	s.identity = id

	ctx.Logger().Info(ctx.Context(), "Checking sudo access", ports.F("user", id.Username))

	c := ctx.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		c, cancel = context.WithTimeout(c, s.timeout)
		defer cancel()
	}

	_, err = commandutil.Run(c, s.runner, pipeline.ErrCodeSudoUnavailable, "sudo is unavailable", "sudo", "-v")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Context().Err() == nil {
			return pipeline.NewStageError(pipeline.ErrCodeSudoUnavailable,
				fmt.Sprintf("no sudo password entered within %s", s.timeout))
		}
		var se *pipeline.StageError
		if errors.As(err, &se) && se.Suggestion == "" {
			return se.WithSuggestion("Make sure your user is in the sudo group.")
		}
		return err
	}
	return nil
}

var _ pipeline.Stage = (*GuardStage)(nil)
