// Package repl implements the interactive calc session.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/pengelbrecht/calc/internal/binding"
	"github.com/pengelbrecht/calc/internal/format"
	"github.com/pengelbrecht/calc/internal/styles"
)

const helpText = "ops: add sub mul div (or + - * /)  e.g. add 2 3, 2 * 3  |  help, quit"

// Options configures a session.
type Options struct {
	// Precision is the number of decimals to print, or -1 for shortest.
	Precision int
	// HistorySize caps the number of evaluated lines kept on screen.
	HistorySize int
}

type line struct {
	input  string
	output string
	failed bool
}

// Model is the bubbletea model for a session.
type Model struct {
	input    textinput.Model
	history  []line
	opts     Options
	quitting bool
}

// New creates a session model.
func New(opts Options) Model {
	if opts.HistorySize < 1 {
		opts.HistorySize = 1
	}
	ti := textinput.New()
	ti.Prompt = "calc> "
	ti.Placeholder = "add 2 3"
	ti.PromptStyle = styles.LabelStyle
	ti.Focus()
	return Model{input: ti, opts: opts}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			out, failed, quit := Eval(text, m.opts.Precision)
			if quit {
				m.quitting = true
				return m, tea.Quit
			}
			m.push(line{input: text, output: out, failed: failed})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) push(l line) {
	m.history = append(m.history, l)
	if over := len(m.history) - m.opts.HistorySize; over > 0 {
		m.history = append(m.history[:0], m.history[over:]...)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := 0
	for _, l := range m.history {
		width = max(width, ansi.StringWidth(l.input))
	}

	var sb strings.Builder
	for _, l := range m.history {
		sb.WriteString(styles.RenderDim(l.input))
		sb.WriteString(strings.Repeat(" ", width-ansi.StringWidth(l.input)))
		sb.WriteString("  ")
		if l.failed {
			sb.WriteString(styles.RenderError(l.output))
		} else {
			sb.WriteString(styles.RenderResult(l.output))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(m.input.View())
	sb.WriteByte('\n')
	sb.WriteString(styles.RenderDim("esc to quit"))
	sb.WriteByte('\n')
	return sb.String()
}

// Eval evaluates one session line. Lines are either prefix ("add 2 3") or
// infix ("2 + 3"). quit reports a request to end the session.
func Eval(text string, precision int) (out string, failed, quit bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false, false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return "", false, true
	case "help", "?":
		return helpText, false, false
	}

	token, args := fields[0], fields[1:]
	if len(fields) == 3 {
		if _, ok := binding.Resolve(fields[0]); !ok {
			if _, ok := binding.Resolve(fields[1]); ok {
				token, args = fields[1], []string{fields[0], fields[2]}
			}
		}
	}

	e, a, b, err := binding.ParseStrings(token, args...)
	if err != nil {
		return err.Error(), true, false
	}
	return format.Expression(a, e.Symbol, b, e.Fn(a, b), precision), false, false
}

// Run starts an interactive session on the terminal.
func Run(opts Options, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(opts), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}
