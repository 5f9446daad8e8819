// Package format defines debate formats: the ordered sections of a debate,
// who speaks in each, and the system prompt handed to each participant.
//
// Formats are registered by name so new styles (parliamentary, Oxford, ...)
// can be added without touching the orchestrator. Only the presidential
// format ships today.
package format

import (
	"fmt"
	"sort"
	"strings"
)

// Section is one named phase of a debate.
type Section struct {
	// Name of the section, announced to participants.
	Name string
	// Description carries the instructions for this section.
	Description string
	// SpeakerOrder lists the participant indices that speak, in order.
	// An index may appear zero, one, or multiple times.
	SpeakerOrder []int
	// MaxTokens is the response length budget for each turn in this section.
	MaxTokens int
}

// DebateFormat describes a debate style. Implementations must be stateless
// with respect to a run: Sections must return the same list every call for
// the same format value.
type DebateFormat interface {
	// Name returns the registry key for this format.
	Name() string

	// DisplayName returns the human-readable format name.
	DisplayName() string

	// Sections returns all sections of the debate in order.
	Sections() []Section

	// MinParticipants returns the minimum participant count required.
	MinParticipants() int

	// MaxParticipants returns the maximum participant count allowed.
	MaxParticipants() int

	// SystemPrompt builds the system message for a participant, given the
	// debate topic, the participant's role-qualified display name, and the
	// opponent's name.
	SystemPrompt(topic, roleName, opponentName string) string
}

// Constructor builds a format instance for the given round count.
type Constructor func(rounds int) DebateFormat

// ErrUnknownFormat is returned when the requested format is not registered.
var ErrUnknownFormat = fmt.Errorf("unknown debate format")

var registry = map[string]Constructor{
	"presidential": func(rounds int) DebateFormat { return NewPresidential(rounds) },
}

// Register adds a format constructor under the given name. Names are
// matched case-insensitively. Registering an existing name replaces it.
func Register(name string, fn Constructor) {
	registry[strings.ToLower(name)] = fn
}

// Get returns the format registered under name, built for the given round
// count. The name is matched case-insensitively.
func Get(name string, rounds int) (DebateFormat, error) {
	fn, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownFormat, name, strings.Join(Available(), ", "))
	}
	return fn(rounds), nil
}

// Available returns the sorted names of all registered formats.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
