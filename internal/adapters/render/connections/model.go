package connections

import (
	"errors"
	"io"

	"github.com/bnema/pfconn/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	connections []domain.Connection
	opts        RenderOptions
	styles      styles
	output      string
}

func newModel(connections []domain.Connection, opts RenderOptions) model {
	return model{
		connections: connections,
		opts:        opts,
		styles:      newStyles(),
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
		m.output = renderList(m.connections, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the connection table. Secrets never reach the output.
func Render(connections []domain.Connection, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(connections, opts),
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
