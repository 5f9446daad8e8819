package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/debateai/internal/chat"
	"github.com/Iron-Ham/debateai/internal/errors"
	"github.com/Iron-Ham/debateai/internal/event"
	"github.com/Iron-Ham/debateai/internal/format"
	"github.com/Iron-Ham/debateai/internal/logging"
	"github.com/Iron-Ham/debateai/internal/participant"
	"github.com/Iron-Ham/debateai/internal/sanitize"
	"github.com/Iron-Ham/debateai/internal/util"
)

const (
	// maxEmptyRetries is how many times a turn is re-requested when the
	// sanitized response comes back too short to use.
	maxEmptyRetries = 3
	// minResponseLength is the shortest sanitized response accepted as a
	// real turn. Anything at or below this is treated as empty.
	minResponseLength = 10
	// emptyRetryDelay separates empty-response retries.
	emptyRetryDelay = 2 * time.Second
)

// Turn is one accepted entry in the debate transcript.
type Turn struct {
	// Section is the name of the section this turn belongs to.
	Section string
	// SpeakerIndex is the participant's position in the registry.
	SpeakerIndex int
	// SpeakerName is the participant's display name at the time of the turn.
	SpeakerName string
	// Content is the sanitized response text.
	Content string
}

// Orchestrator runs a single debate. It is not reusable: create a new one
// per run.
type Orchestrator struct {
	topic        string
	format       format.DebateFormat
	participants []participant.Participant
	completer    chat.Completer

	bus    *event.Bus
	logger *logging.Logger

	// histories holds one conversation per participant, seeded with that
	// participant's system prompt. Indices align with participants.
	histories [][]chat.Message

	transcript []Turn

	// sleep is swapped out in tests to avoid real retry delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithBus sets the event bus lifecycle events are published to. Without
// one, events are silently dropped.
func WithBus(bus *event.Bus) Option {
	return func(o *Orchestrator) { o.bus = bus }
}

// WithLogger sets the structured logger for the run.
func WithLogger(logger *logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New creates an orchestrator for one debate on the given topic.
//
// The participant count is validated against the format's bounds before
// anything else happens; a mismatch returns a ParticipantCountError. Each
// participant's history is seeded with a system message: the participant's
// own SystemPrompt override when set, otherwise the format-generated prompt.
func New(topic string, f format.DebateFormat, participants []participant.Participant, completer chat.Completer, opts ...Option) (*Orchestrator, error) {
	if len(participants) == 0 {
		return nil, errors.ErrNoParticipants
	}
	if len(participants) < f.MinParticipants() || len(participants) > f.MaxParticipants() {
		return nil, &errors.ParticipantCountError{
			Min:    f.MinParticipants(),
			Max:    f.MaxParticipants(),
			Actual: len(participants),
		}
	}

	o := &Orchestrator{
		topic:        topic,
		format:       f,
		participants: participants,
		completer:    completer,
		bus:          event.NewBus(),
		logger:       logging.NopLogger(),
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.histories = make([][]chat.Message, len(participants))
	for i, p := range participants {
		prompt := p.SystemPrompt
		if prompt == "" {
			prompt = f.SystemPrompt(topic, p.DisplayNameWithRole(), o.opponentName(i))
		}
		o.histories[i] = []chat.Message{{Role: chat.RoleSystem, Content: prompt}}
	}

	return o, nil
}

// opponentName returns the display name of participant i's opponent: the
// first participant, or the second when i is the first.
func (o *Orchestrator) opponentName(i int) string {
	opponent := 0
	if i == 0 {
		opponent = 1
	}
	if opponent >= len(o.participants) {
		return ""
	}
	return o.participants[opponent].Name
}

// Run executes the debate and returns the transcript. The context is
// checked before every completion request and honored during retry delays;
// cancellation surfaces as the context's error.
//
// A turn is accepted once its sanitized content exceeds the minimum useful
// length. Shorter responses are retried up to maxEmptyRetries times with a
// delay between attempts; exhaustion aborts the debate with an
// EmptyResponseError.
func (o *Orchestrator) Run(ctx context.Context) ([]Turn, error) {
	o.logger.Info("debate starting",
		"topic", o.topic,
		"format", o.format.Name(),
		"participants", len(o.participants),
	)

	for _, section := range o.format.Sections() {
		o.bus.Publish(event.NewSectionStartedEvent(section.Name, section.Description))
		sectionLog := o.logger.WithSection(section.Name)
		sectionLog.Info("section started", "speakers", len(section.SpeakerOrder))

		for _, idx := range section.SpeakerOrder {
			if idx < 0 || idx >= len(o.participants) {
				sectionLog.Warn("speaker index out of range, skipping", "index", idx)
				continue
			}
			if err := o.runTurn(ctx, section, idx, sectionLog); err != nil {
				return nil, err
			}
		}
	}

	o.bus.Publish(event.NewDebateEndedEvent(len(o.transcript)))
	o.logger.Info("debate ended", "turns", len(o.transcript))

	out := make([]Turn, len(o.transcript))
	copy(out, o.transcript)
	return out, nil
}

// runTurn collects, validates, and records one speaker's turn.
func (o *Orchestrator) runTurn(ctx context.Context, section format.Section, idx int, sectionLog *logging.Logger) error {
	p := o.participants[idx]
	turnLog := sectionLog.WithParticipant(p.Name)

	o.bus.Publish(event.NewSpeakerStartedEvent(p.Name, p.Role.DisplayName()))

	o.histories[idx] = append(o.histories[idx], chat.Message{
		Role: chat.RoleUser,
		Content: fmt.Sprintf("[%s - %s]\nPlease provide your %s.",
			section.Name, section.Description, strings.ToLower(section.Name)),
	})

	content, err := o.collectResponse(ctx, p, idx, section, turnLog)
	if err != nil {
		return err
	}

	o.transcript = append(o.transcript, Turn{
		Section:      section.Name,
		SpeakerIndex: idx,
		SpeakerName:  p.Name,
		Content:      content,
	})
	o.bus.Publish(event.NewSpeakerMessageEvent(p.Name, content))
	turnLog.Debug("turn accepted", "length", len(content), "preview", util.TruncateString(content, 80))

	o.histories[idx] = append(o.histories[idx], chat.Message{
		Role:    chat.RoleAssistant,
		Content: content,
	})
	for j := range o.histories {
		if j == idx {
			continue
		}
		o.histories[j] = append(o.histories[j], chat.Message{
			Role:    chat.RoleUser,
			Content: fmt.Sprintf("[Opponent %s said]: %s", p.Name, content),
		})
	}

	return nil
}

// collectResponse requests completions until one survives sanitization with
// a useful length, retrying empty results up to maxEmptyRetries times.
func (o *Orchestrator) collectResponse(ctx context.Context, p participant.Participant, idx int, section format.Section, turnLog *logging.Logger) (string, error) {
	for attempt := 1; attempt <= maxEmptyRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		raw, err := o.completer.Complete(ctx, p.Model, o.histories[idx], section.MaxTokens)
		if err != nil {
			// The chat client already retried transport failures; this
			// is final.
			return "", err
		}

		content := sanitize.Sanitize(raw)
		if len(strings.TrimSpace(content)) > minResponseLength {
			return content, nil
		}

		if attempt < maxEmptyRetries {
			turnLog.Warn("empty response, retrying",
				"attempt", attempt,
				"max_attempts", maxEmptyRetries,
			)
			o.bus.Publish(event.NewSpeakerRetryEvent(p.Name, attempt, maxEmptyRetries))
			if err := o.sleep(ctx, emptyRetryDelay); err != nil {
				return "", err
			}
		}
	}

	return "", &errors.EmptyResponseError{
		Participant: p.Name,
		Attempts:    maxEmptyRetries,
	}
}

// sleepContext sleeps for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
