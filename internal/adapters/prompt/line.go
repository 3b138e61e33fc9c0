// Package prompt implements ports.Confirmer for terminals and plain streams.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// LineConfirmer reads a whole line answer. Only "y" or "yes" (any case)
// confirms; empty input, end of input and timeout all answer no.
type LineConfirmer struct {
	in      *bufio.Reader
	out     io.Writer
	timeout time.Duration
}

// NewLineConfirmer creates a LineConfirmer. A zero timeout waits forever.
func NewLineConfirmer(in io.Reader, out io.Writer, timeout time.Duration) *LineConfirmer {
	return &LineConfirmer{
		in:      bufio.NewReader(in),
		out:     out,
		timeout: timeout,
	}
}

type lineResult struct {
	line string
	err  error
}

// Confirm implements ports.Confirmer.
func (c *LineConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	fmt.Fprintf(c.out, "%s ", prompt)

	answers := make(chan lineResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		answers <- lineResult{line: line, err: err}
	}()

	var expired <-chan time.Time
	if c.timeout > 0 {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return false, ctx.Err()
	case <-expired:
		fmt.Fprintf(c.out, "\nNo answer after %s, assuming no.\n", c.timeout)
		return false, nil
	case r := <-answers:
		if r.err != nil && r.line == "" {
			fmt.Fprintln(c.out)
			return false, nil
		}
		return IsAffirmative(r.line), nil
	}
}

// IsAffirmative reports whether an answer means yes.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

var _ ports.Confirmer = (*LineConfirmer)(nil)
