package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type shutdownDoneMsg struct {
	err error
}

type shutdownSpinnerModel struct {
	spinner  spinner.Model
	label    string
	shutdown tea.Cmd
	err      error
	done     bool
}

func newShutdownSpinnerModel(label string, shutdown tea.Cmd) shutdownSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return shutdownSpinnerModel{
		spinner:  s,
		label:    label,
		shutdown: shutdown,
	}
}

func (m shutdownSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.shutdown)
}

func (m shutdownSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case shutdownDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m shutdownSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runShutdownSpinner shows progress on output while shutdown drains open
// connections.
func runShutdownSpinner(ctx context.Context, output io.Writer, shutdown func(context.Context) error) error {
	shutdownCmd := func() tea.Msg {
		return shutdownDoneMsg{err: shutdown(ctx)}
	}

	p := tea.NewProgram(
		newShutdownSpinnerModel("Draining connections...", shutdownCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(shutdownSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
