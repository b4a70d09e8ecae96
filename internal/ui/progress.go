package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytdb/internal/tasks"
)

// ImportModel renders a live progress bar for a bulk channel import,
// consuming the engine's ProgressUpdate channel.
type ImportModel struct {
	bar      progress.Model
	updates  <-chan tasks.ProgressUpdate
	current  tasks.ProgressUpdate
	metrics  *tasks.ListingMetrics
	done     bool
	quitting bool
}

// NewImportModel creates a progress model over an update channel. The model
// quits once it sees the [tasks.ListingDone] phase or the channel closes.
func NewImportModel(updates <-chan tasks.ProgressUpdate) *ImportModel {
	return &ImportModel{
		bar:     progress.New(progress.WithDefaultGradient()),
		updates: updates,
	}
}

type progressUpdateMsg tasks.ProgressUpdate

type progressClosedMsg struct{}

func (m *ImportModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return progressClosedMsg{}
		}
		return progressUpdateMsg(update)
	}
}

// Init starts listening on the update channel.
func (m *ImportModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Update handles incoming messages and updates the model state.
func (m *ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		return m, nil

	case progressUpdateMsg:
		m.current = tasks.ProgressUpdate(msg)
		if m.current.Phase == tasks.ListingDone {
			if metrics, ok := m.current.Data.(*tasks.ListingMetrics); ok {
				m.metrics = metrics
			}
			m.done = true
			return m, tea.Quit
		}
		return m, m.waitForUpdate()

	case progressClosedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the progress bar, the current message and final metrics.
func (m *ImportModel) View() string {
	if m.quitting {
		return ""
	}

	view := styles.title.Render("ytdb import") + "\n"

	percent := 0.0
	if m.current.Total > 0 {
		percent = float64(m.current.Step) / float64(m.current.Total)
	}
	if m.done {
		percent = 1.0
	}

	view += m.bar.ViewAs(percent) + "\n\n"

	if m.current.Message != "" {
		view += m.current.Message + "\n"
	}

	if m.metrics != nil {
		view += styles.ok.Render(fmt.Sprintf("found: %d", m.metrics.Found))
		if m.metrics.Failed > 0 {
			view += "  " + styles.err.Render(fmt.Sprintf("failed: %d", m.metrics.Failed))
		}
		view += "\n"
	}

	view += styles.help.Render("q to quit")
	return view
}
