package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "section.started").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// Event type identifiers, usable as Bus subscription keys.
const (
	TypeSectionStarted = "section.started"
	TypeSpeakerStarted = "speaker.started"
	TypeSpeakerMessage = "speaker.message"
	TypeSpeakerRetry   = "speaker.retry"
	TypeDebateEnded    = "debate.ended"
)

// SectionStartedEvent is emitted when a new debate section begins.
type SectionStartedEvent struct {
	baseEvent
	Name        string // Section name, e.g. "Opening Statements"
	Description string // Instructions announced for the section
}

// NewSectionStartedEvent creates a SectionStartedEvent.
func NewSectionStartedEvent(name, description string) SectionStartedEvent {
	return SectionStartedEvent{
		baseEvent:   newBaseEvent(TypeSectionStarted),
		Name:        name,
		Description: description,
	}
}

// SpeakerStartedEvent is emitted when a participant is about to speak.
type SpeakerStartedEvent struct {
	baseEvent
	Name string // Participant display name
	Role string // Role label, e.g. "FOR"
}

// NewSpeakerStartedEvent creates a SpeakerStartedEvent.
func NewSpeakerStartedEvent(name, role string) SpeakerStartedEvent {
	return SpeakerStartedEvent{
		baseEvent: newBaseEvent(TypeSpeakerStarted),
		Name:      name,
		Role:      role,
	}
}

// SpeakerMessageEvent is emitted when a participant's turn is accepted
// into the transcript. Content is already sanitized.
type SpeakerMessageEvent struct {
	baseEvent
	Name    string
	Content string
}

// NewSpeakerMessageEvent creates a SpeakerMessageEvent.
func NewSpeakerMessageEvent(name, content string) SpeakerMessageEvent {
	return SpeakerMessageEvent{
		baseEvent: newBaseEvent(TypeSpeakerMessage),
		Name:      name,
		Content:   content,
	}
}

// SpeakerRetryEvent is emitted when a participant's response came back
// empty (or too short) and the turn is being retried.
type SpeakerRetryEvent struct {
	baseEvent
	Name        string // Participant being retried
	Attempt     int    // 1-based attempt that just failed
	MaxAttempts int    // Total attempts allowed
}

// NewSpeakerRetryEvent creates a SpeakerRetryEvent.
func NewSpeakerRetryEvent(name string, attempt, maxAttempts int) SpeakerRetryEvent {
	return SpeakerRetryEvent{
		baseEvent:   newBaseEvent(TypeSpeakerRetry),
		Name:        name,
		Attempt:     attempt,
		MaxAttempts: maxAttempts,
	}
}

// DebateEndedEvent is emitted once after the final section completes.
type DebateEndedEvent struct {
	baseEvent
	Turns int // Number of accepted transcript entries
}

// NewDebateEndedEvent creates a DebateEndedEvent.
func NewDebateEndedEvent(turns int) DebateEndedEvent {
	return DebateEndedEvent{
		baseEvent: newBaseEvent(TypeDebateEnded),
		Turns:     turns,
	}
}
