package badges

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	states []State
	opts   RenderOptions
	styles styles
	output string
}

func newModel(states []State, opts RenderOptions) model {
	return model{
		states: states,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.states, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render lays out bound states once and returns the text.
func Render(states []State, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(states, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// UpdatedMsg tells a watch model the cache changed.
type UpdatedMsg struct {
	At time.Time
}

// WatchModel re-binds affordances from the lookup on every UpdatedMsg.
type WatchModel struct {
	lookup      StatusLookup
	affordances func() []Affordance
	title       string

	spinner   spinner.Model
	states    []State
	updatedAt time.Time
	styles    styles
}

func NewWatchModel(lookup StatusLookup, affordances func() []Affordance, title string) WatchModel {
	return WatchModel{
		lookup:      lookup,
		affordances: affordances,
		title:       title,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		styles: newStyles(),
	}
}

func (m WatchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case UpdatedMsg:
		m.states = Bind(m.lookup, m.affordances())
		m.updatedAt = msg.At
		return m, nil
	case spinner.TickMsg:
		if !m.updatedAt.IsZero() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m WatchModel) View() string {
	if m.updatedAt.IsZero() {
		return m.spinner.View() + " Waiting for the first refresh... (q to quit)\n"
	}

	return renderView(m.states, RenderOptions{Title: m.title, UpdatedAt: m.updatedAt}, m.styles) +
		"\n" + m.styles.footer.Render("q to quit") + "\n"
}

func (m WatchModel) States() []State {
	return m.states
}
