package prompt

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/felixgeelhaar/dockerup/internal/ports"
	"github.com/felixgeelhaar/dockerup/internal/tui"
	"github.com/mattn/go-isatty"
)

// TTYConfirmer asks with a single-keystroke terminal prompt.
type TTYConfirmer struct {
	in      io.Reader
	out     io.Writer
	timeout time.Duration
}

// NewTTYConfirmer creates a TTYConfirmer. A zero timeout waits forever.
func NewTTYConfirmer(in io.Reader, out io.Writer, timeout time.Duration) *TTYConfirmer {
	return &TTYConfirmer{in: in, out: out, timeout: timeout}
}

// Confirm implements ports.Confirmer.
func (c *TTYConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	return tui.RunConfirm(ctx, prompt, c.timeout, c.in, c.out)
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New picks the terminal prompt when both streams are terminals and the
// line prompt otherwise.
func New(in, out *os.File, timeout time.Duration) ports.Confirmer {
	if IsTerminal(in) && IsTerminal(out) {
		return NewTTYConfirmer(in, out, timeout)
	}
	return NewLineConfirmer(in, out, timeout)
}

var _ ports.Confirmer = (*TTYConfirmer)(nil)
