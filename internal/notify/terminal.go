package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var writeClipboard = clipboard.WriteAll

var (
	alertBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(1, 3)
	alertTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	alertPathStyle  = lipgloss.NewStyle().Bold(true)
	alertHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertNoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Terminal draws a modal alert in the terminal and waits for a key.
type Terminal struct {
	in          io.Reader
	out         io.Writer
	onInterrupt func()
}

func NewTerminal(in io.Reader, out io.Writer, onInterrupt func()) *Terminal {
	return &Terminal{in: in, out: out, onInterrupt: onInterrupt}
}

func (t *Terminal) Notify(ctx context.Context, path string) error {
	p := tea.NewProgram(alertModel{path: path},
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("terminal alert for %q: %w", path, err)
	}

	if m, ok := final.(alertModel); ok && m.interrupted && t.onInterrupt != nil {
		t.onInterrupt()
	}
	return nil
}

type alertModel struct {
	path        string
	copied      bool
	copyErr     error
	interrupted bool
}

func (m alertModel) Init() tea.Cmd { return nil }

func (m alertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "enter", "esc", "q", " ":
		return m, tea.Quit
	case "ctrl+c":
		m.interrupted = true
		return m, tea.Quit
	case "c":
		m.copyErr = writeClipboard(m.path)
		m.copied = m.copyErr == nil
	}
	return m, nil
}

func (m alertModel) View() string {
	body := alertTitleStyle.Render(Title) + "\n\n" +
		"File modified: " + alertPathStyle.Render(m.path) + "\n\n"

	switch {
	case m.copied:
		body += alertNoteStyle.Render("path copied to clipboard") + "\n"
	case m.copyErr != nil:
		body += alertHintStyle.Render("copy failed: "+m.copyErr.Error()) + "\n"
	}
	body += alertHintStyle.Render("enter: acknowledge • c: copy path")

	return alertBoxStyle.Render(body) + "\n"
}
