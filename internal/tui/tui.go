// Package tui renders a live debate as a bubbletea terminal UI: the
// transcript so far, the speaker currently thinking, and a spinner while a
// completion is in flight.
package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/debateai/internal/event"
	"github.com/Iron-Ham/debateai/internal/util"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	speakerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Faint(true)
)

// EventMsg wraps a debate event for delivery into the bubbletea loop.
type EventMsg struct {
	Event event.Event
}

// DoneMsg signals that the orchestrator finished (successfully or not).
type DoneMsg struct {
	Err error
}

// Model is the bubbletea model for a debate in progress.
type Model struct {
	topic   string
	spinner spinner.Model

	lines    []string // rendered transcript lines
	section  string   // current section name
	thinking string   // speaker currently awaiting a completion
	done     bool
	err      error
	turns    int

	width  int
	height int
}

// New creates a Model for the given debate topic.
func New(topic string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	return Model{
		topic:   topic,
		spinner: s,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.applyEvent(msg.Event)
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// applyEvent folds one debate event into the model state.
func (m *Model) applyEvent(e event.Event) {
	switch ev := e.(type) {
	case event.SectionStartedEvent:
		m.section = ev.Name
		m.lines = append(m.lines, "", sectionStyle.Render(strings.ToUpper(ev.Name)))

	case event.SpeakerStartedEvent:
		m.thinking = fmt.Sprintf("%s (%s)", ev.Name, ev.Role)

	case event.SpeakerMessageEvent:
		m.thinking = ""
		m.turns++
		m.lines = append(m.lines, "", speakerStyle.Render(ev.Name+":"))
		wrapped := util.Wrap(ev.Content, m.contentWidth())
		m.lines = append(m.lines, strings.Split(wrapped, "\n")...)

	case event.SpeakerRetryEvent:
		m.lines = append(m.lines, statusStyle.Render(
			fmt.Sprintf("(%s retrying %d/%d)", ev.Name, ev.Attempt, ev.MaxAttempts)))

	case event.DebateEndedEvent:
		m.thinking = ""
	}
}

func (m Model) contentWidth() int {
	if m.width > 4 {
		return m.width - 2
	}
	return 78
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(util.TruncateANSI("Debate: "+m.topic, m.width)))
	b.WriteString("\n")

	// Show as much of the transcript tail as fits.
	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	lines := m.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for _, line := range lines {
		b.WriteString(util.TruncateANSI(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.done && m.err != nil:
		b.WriteString(statusStyle.Render("Debate failed: " + m.err.Error()))
	case m.done:
		b.WriteString(statusStyle.Render(fmt.Sprintf("Debate concluded after %d turns. Press q to exit.", m.turns)))
	case m.thinking != "":
		b.WriteString(fmt.Sprintf("%s %s is thinking...", m.spinner.View(), m.thinking))
	default:
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n")

	return b.String()
}

// Forward subscribes to the bus and relays every event into the program.
// Call before the debate starts; bubbletea's Send is safe from any
// goroutine.
func Forward(p *tea.Program, bus *event.Bus) {
	bus.SubscribeAll(func(e event.Event) {
		p.Send(EventMsg{Event: e})
	})
}
