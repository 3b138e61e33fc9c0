// Package tui provides the interactive terminal prompts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/dockerup/internal/tui/ui"
)

// confirmTimeoutMsg is sent when the prompt deadline passes.
type confirmTimeoutMsg struct{}

// ConfirmModel is a single-keystroke yes/no prompt. The default answer is no.
type ConfirmModel struct {
	prompt   string
	timeout  time.Duration
	keys     ui.KeyMap
	styles   ui.Styles
	answered bool
	yes      bool
	timedOut bool
}

// NewConfirmModel creates a confirm prompt. A zero timeout waits forever.
func NewConfirmModel(prompt string, timeout time.Duration) ConfirmModel {
	return ConfirmModel{
		prompt:  prompt,
		timeout: timeout,
		keys:    ui.DefaultKeyMap(),
		styles:  ui.DefaultStyles(),
	}
}

// WithStyles sets the styles.
func (m ConfirmModel) WithStyles(styles ui.Styles) ConfirmModel {
	m.styles = styles
	return m
}

// Confirmed reports whether the operator answered yes.
func (m ConfirmModel) Confirmed() bool {
	return m.yes
}

// Answered reports whether the prompt is finished.
func (m ConfirmModel) Answered() bool {
	return m.answered
}

// TimedOut reports whether the prompt expired without an answer.
func (m ConfirmModel) TimedOut() bool {
	return m.timedOut
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	if m.timeout <= 0 {
		return nil
	}
	return tea.Tick(m.timeout, func(time.Time) tea.Msg {
		return confirmTimeoutMsg{}
	})
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.answered {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m.finish(true), tea.Quit
		case key.Matches(msg, m.keys.No),
			key.Matches(msg, m.keys.Submit),
			key.Matches(msg, m.keys.Quit):
			return m.finish(false), tea.Quit
		}
	case confirmTimeoutMsg:
		m.timedOut = true
		return m.finish(false), tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) finish(yes bool) ConfirmModel {
	m.answered = true
	m.yes = yes
	return m
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Prompt.Render(m.prompt))
	b.WriteString(" ")

	if !m.answered {
		b.WriteString(m.styles.Help.Render(m.help()))
		return b.String()
	}

	answer := "no"
	if m.yes {
		answer = "yes"
	}
	b.WriteString(m.styles.Answer.Render(answer))
	if m.timedOut {
		b.WriteString(" ")
		b.WriteString(m.styles.Timeout.Render(fmt.Sprintf("(no answer after %s)", m.timeout)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m ConfirmModel) help() string {
	bindings := []key.Binding{m.keys.Yes, m.keys.No, m.keys.Submit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// RunConfirm shows the prompt on out, reading keys from in.
// Cancelling ctx aborts the prompt and returns ctx.Err().
func RunConfirm(ctx context.Context, prompt string, timeout time.Duration, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(
		NewConfirmModel(prompt, timeout),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, fmt.Errorf("confirm prompt: %w", err)
	}

	m, ok := final.(ConfirmModel)
	if !ok {
		return false, errors.New("confirm prompt: unexpected model")
	}
	return m.Confirmed(), nil
}
