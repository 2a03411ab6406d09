package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	taskSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	taskOKStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	taskFailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// taskDoneMsg carries the outcome of a backend task back into the program.
type taskDoneMsg[T any] struct {
	value T
	err   error
}

// taskModel spins while one backend task runs, then leaves a single
// outcome line behind on the output.
type taskModel[T any] struct {
	spinner spinner.Model
	label   string
	task    tea.Cmd
	outcome *taskDoneMsg[T]
}

func newTaskModel[T any](label string, task tea.Cmd) taskModel[T] {
	return taskModel[T]{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(taskSpinnerStyle)),
		label:   label,
		task:    task,
	}
}

func (m taskModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m taskModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg[T]:
		m.outcome = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		if m.outcome != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m taskModel[T]) View() string {
	switch {
	case m.outcome == nil:
		return fmt.Sprintf("%s %s...", m.spinner.View(), m.label)
	case m.outcome.err != nil:
		return fmt.Sprintf("%s %s\n", taskFailStyle.Render("✗"), m.label)
	default:
		return fmt.Sprintf("%s %s\n", taskOKStyle.Render("✓"), m.label)
	}
}

// runTask runs task behind a spinner on output and hands back its result.
func runTask[T any](ctx context.Context, output io.Writer, label string, task func(context.Context) (T, error)) (T, error) {
	var zero T

	taskCmd := func() tea.Msg {
		value, err := task(ctx)
		return taskDoneMsg[T]{value: value, err: err}
	}

	p := tea.NewProgram(
		newTaskModel[T](label, taskCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return zero, fmt.Errorf("%s: %w", label, err)
	}

	model, ok := final.(taskModel[T])
	if !ok || model.outcome == nil {
		return zero, fmt.Errorf("%s: task ended without a result", label)
	}

	return model.outcome.value, model.outcome.err
}
