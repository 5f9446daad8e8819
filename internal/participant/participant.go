// Package participant defines the AI debaters taking part in a run.
package participant

import "fmt"

// Role indicates which side of the topic a participant argues.
type Role int

const (
	// RoleFor argues in favor of the topic.
	RoleFor Role = iota
	// RoleAgainst argues against the topic.
	RoleAgainst
	// RoleNeutral moderates or takes no side.
	RoleNeutral
)

// DisplayName returns the role label used in prompts and console output.
func (r Role) DisplayName() string {
	switch r {
	case RoleFor:
		return "FOR"
	case RoleAgainst:
		return "AGAINST"
	case RoleNeutral:
		return "NEUTRAL"
	default:
		return "UNKNOWN"
	}
}

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleFor:
		return "for"
	case RoleAgainst:
		return "against"
	case RoleNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Participant is one AI debater. Participants are value types constructed
// before a run and never mutated afterward.
type Participant struct {
	// Name is the display name for this participant.
	Name string
	// Model is the LLM model identifier, passed through to the chat client
	// (e.g. "gpt-4", "llama3:8b").
	Model string
	// Role is the side this participant argues.
	Role Role
	// SystemPrompt, when non-empty, overrides the format-generated system
	// prompt for this participant.
	SystemPrompt string
	// VoiceID selects the TTS voice for this participant. Opaque to the
	// orchestrator; consumed only by the synthesis pipeline.
	VoiceID string
}

// New creates a participant with the given name, model, and role.
func New(name, model string, role Role) Participant {
	return Participant{
		Name:  name,
		Model: model,
		Role:  role,
	}
}

// WithSystemPrompt returns a copy with a custom system prompt override.
func (p Participant) WithSystemPrompt(prompt string) Participant {
	p.SystemPrompt = prompt
	return p
}

// WithVoice returns a copy with the given TTS voice ID.
func (p Participant) WithVoice(voiceID string) Participant {
	p.VoiceID = voiceID
	return p
}

// DisplayNameWithRole returns the name qualified by the role label,
// e.g. "Candidate A (FOR)".
func (p Participant) DisplayNameWithRole() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Role.DisplayName())
}
