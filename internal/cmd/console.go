package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/debateai/internal/event"
	"github.com/Iron-Ham/debateai/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// consoleWidth is the wrap width for transcript text.
const consoleWidth = 80

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)

	speakerForStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	speakerAgainstStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("9"))

	retryStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("11"))

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))
)

// consoleRenderer prints debate events as styled terminal output. It is the
// default renderer when the TUI is not requested.
type consoleRenderer struct {
	out io.Writer
}

// newConsoleRenderer creates a renderer writing to out.
func newConsoleRenderer(out io.Writer) *consoleRenderer {
	return &consoleRenderer{out: out}
}

// attach subscribes the renderer to all debate lifecycle events.
func (r *consoleRenderer) attach(bus *event.Bus) {
	bus.SubscribeAll(r.handle)
}

func (r *consoleRenderer) handle(e event.Event) {
	switch ev := e.(type) {
	case event.SectionStartedEvent:
		fmt.Fprintf(r.out, "\n%s\n", sectionStyle.Render(strings.ToUpper(ev.Name)))
		fmt.Fprintf(r.out, "%s\n", util.Wrap(ev.Description, consoleWidth))

	case event.SpeakerStartedEvent:
		style := speakerForStyle
		if ev.Role == "AGAINST" {
			style = speakerAgainstStyle
		}
		fmt.Fprintf(r.out, "\n%s\n", style.Render(fmt.Sprintf("%s (%s):", ev.Name, ev.Role)))

	case event.SpeakerMessageEvent:
		fmt.Fprintf(r.out, "%s\n", util.Wrap(ev.Content, consoleWidth))

	case event.SpeakerRetryEvent:
		fmt.Fprintf(r.out, "%s\n", retryStyle.Render(
			fmt.Sprintf("(%s returned an empty response, retrying %d/%d...)",
				ev.Name, ev.Attempt, ev.MaxAttempts)))

	case event.DebateEndedEvent:
		fmt.Fprintf(r.out, "\n%s\n", summaryStyle.Render(
			fmt.Sprintf("Debate concluded after %d turns.", ev.Turns)))
	}
}
