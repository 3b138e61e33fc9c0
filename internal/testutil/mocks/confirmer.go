package mocks

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// Confirmer is a test double for ports.Confirmer that returns a fixed answer
// and records the prompts it was asked.
type Confirmer struct {
	mu      sync.Mutex
	answer  bool
	err     error
	prompts []string
}

// NewConfirmer creates a Confirmer that always answers answer.
func NewConfirmer(answer bool) *Confirmer {
	return &Confirmer{answer: answer}
}

// WithError makes Confirm return err.
func (c *Confirmer) WithError(err error) *Confirmer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	return c
}

// Confirm records the prompt and returns the configured answer.
func (c *Confirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return false, c.err
	}
	return c.answer, nil
}

// Prompts returns the prompts asked so far.
func (c *Confirmer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.prompts))
	copy(out, c.prompts)
	return out
}

// Ensure Confirmer implements ports.Confirmer.
var _ ports.Confirmer = (*Confirmer)(nil)
