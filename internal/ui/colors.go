package ui

import "github.com/charmbracelet/lipgloss"

// Palette groups the named [lipgloss.Style]s the import progress bar and the
// catalog browser share.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	help  lipgloss.Style
}

var styles = Palette{
	title: lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).MarginBottom(1),
	ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
	err:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true),
	help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Faint(true),
}
