package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// opDoneMsg signals that the operation behind a spinner finished.
type opDoneMsg struct{}

// spinnerModel renders a spinner next to a progress message until the
// operation completes.
type spinnerModel struct {
	spinner spinner.Model
	message string
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleWarn
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	return m.spinner.View() + m.message
}

// isTerminal reports whether stdout is attached to a terminal.
// Variable so tests can force the non-interactive path.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// withSpinner runs fn while showing a spinner and message on stderr.
// When stdout is not a terminal (pipes, tests) fn runs without any
// decoration.
func withSpinner[T any](ctx context.Context, message string, fn func(context.Context) (T, error)) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !isTerminal() {
		return fn(ctx)
	}

	var (
		result T
		fnErr  error
	)

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(os.Stderr))
	done := make(chan struct{})
	go func() {
		result, fnErr = fn(ctx)
		close(done)
		p.Send(opDoneMsg{})
	}()

	_, runErr := p.Run()
	<-done
	if fnErr != nil {
		return result, fnErr
	}
	if runErr != nil {
		return result, runErr
	}
	return result, nil
}
