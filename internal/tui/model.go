// Package tui plays a builder session in the terminal.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zerocode/landing/internal/builder"
)

type KeyMap struct {
	Restart key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "regenerate"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type eventMsg builder.Event

// streamClosedMsg reports that the subscription ended, either because the
// session closed or because the model fell behind and was dropped.
type streamClosedMsg struct{}

// Model renders one builder session: the prompt, the step list while a run
// is generating and the revealed code.
type Model struct {
	session *builder.Session
	sub     *builder.Subscription
	state   builder.State
	keys    KeyMap
	spinner spinner.Model

	// exitOnDone quits once a run has revealed the whole snippet.
	exitOnDone bool
	quitting   bool
}

// New subscribes to session and returns a model for it. Start the run after
// creating the model so no transition is missed.
func New(session *builder.Session, exitOnDone bool) *Model {
	state, sub := session.Subscribe()
	return &Model{
		session: session,
		sub:     sub,
		state:   state,
		keys:    DefaultKeyMap,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(purple)),
		),
		exitOnDone: exitOnDone,
	}
}

// State returns the last state the model has seen.
func (m *Model) State() builder.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.sub))
}

func waitForEvent(sub *builder.Subscription) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.C
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Restart):
			m.session.Restart()
		}
		return m, nil

	case eventMsg:
		m.state = msg.State
		if msg.Type == builder.EventDone && m.exitOnDone {
			return m.quit()
		}
		return m, waitForEvent(m.sub)

	case streamClosedMsg:
		if m.session.Closed() {
			return m.quit()
		}
		m.state, m.sub = m.session.Subscribe()
		return m, waitForEvent(m.sub)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sub.Close()
	return m, tea.Quit
}

func (m *Model) View() string {
	sc := m.session.Script()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Zero-Code AI Builder"))
	b.WriteString("\n\n")

	prompt := m.state.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = mutedStyle.Render("(no prompt)")
	} else {
		prompt = promptStyle.Render(prompt)
	}
	b.WriteString("> " + prompt + "\n\n")

	if m.state.ShowSteps() {
		for i, step := range sc.Steps {
			switch m.state.StepStatus(i) {
			case builder.StepActive:
				b.WriteString(m.spinner.View() + " " + activeStyle.Render(step.Label))
			case builder.StepDone:
				b.WriteString(doneStyle.Render("✓ " + step.Label))
			default:
				b.WriteString(pendingStyle.Render("○ " + step.Label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.state.ShowOutput() {
		body := m.state.Displayed
		if !m.quitting {
			body += cursorStyle.Render("|")
		}
		b.WriteString(mutedStyle.Render(sc.Filename) + "\n")
		b.WriteString(paneStyle.Render(body))
		b.WriteString("\n")
	}

	if !m.quitting {
		b.WriteString("\n" + mutedStyle.Render(m.keys.Restart.Help().Key+" "+m.keys.Restart.Help().Desc+" • "+m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc))
		b.WriteString("\n")
	}
	return b.String()
}
