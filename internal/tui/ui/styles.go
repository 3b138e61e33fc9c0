// Package ui provides shared styles and key bindings for terminal output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#cba6f7"} // Mauve
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError     = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
	ColorText      = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"} // Text
)

// Styles contains reusable lipgloss styles.
type Styles struct {
	// Severity labels
	Debug   lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Summary panel
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Key        lipgloss.Style
	Value      lipgloss.Style
	Help       lipgloss.Style

	// Prompt
	Prompt  lipgloss.Style
	Choice  lipgloss.Style
	Answer  lipgloss.Style
	Timeout lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Debug: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2),

		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess).
			MarginBottom(1),

		Key: lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Width(18),

		Value: lipgloss.NewStyle().
			Foreground(ColorText),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Prompt: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		Choice: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Answer: lipgloss.NewStyle().
			Foreground(ColorPrimary),

		Timeout: lipgloss.NewStyle().
			Foreground(ColorError),
	}
}

// PlainStyles returns styles that render text unchanged.
// Used when output is not a terminal or colors are disabled.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Debug:      plain,
		Info:       plain,
		Success:    plain,
		Warning:    plain,
		Error:      plain,
		Panel:      plain,
		PanelTitle: plain.MarginBottom(1),
		Key:        plain.Width(18),
		Value:      plain,
		Help:       plain,
		Prompt:     plain,
		Choice:     plain,
		Answer:     plain,
		Timeout:    plain,
	}
}
