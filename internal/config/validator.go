package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "api.base_url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAPI()...)
	errors = append(errors, c.validateDebate()...)
	errors = append(errors, c.validateTTS()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateAPI validates the APIConfig
func (c *Config) validateAPI() []ValidationError {
	var errors []ValidationError

	if c.API.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "cannot be empty",
		})
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must be an absolute http(s) URL",
		})
	}

	if c.API.RequestTimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "api.request_timeout_seconds",
			Value:   c.API.RequestTimeoutSeconds,
			Message: "must be positive",
		})
	}
	if c.API.ConnectTimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "api.connect_timeout_seconds",
			Value:   c.API.ConnectTimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

// validateDebate validates the DebateConfig
func (c *Config) validateDebate() []ValidationError {
	var errors []ValidationError

	if c.Debate.Format == "" {
		errors = append(errors, ValidationError{
			Field:   "debate.format",
			Value:   c.Debate.Format,
			Message: "cannot be empty",
		})
	}

	// Formats clamp low round counts upward, but a non-positive value is
	// almost certainly a typo.
	if c.Debate.Rounds < 1 {
		errors = append(errors, ValidationError{
			Field:   "debate.rounds",
			Value:   c.Debate.Rounds,
			Message: "must be at least 1",
		})
	}

	const maxRounds = 50
	if c.Debate.Rounds > maxRounds {
		errors = append(errors, ValidationError{
			Field:   "debate.rounds",
			Value:   c.Debate.Rounds,
			Message: fmt.Sprintf("exceeds maximum of %d", maxRounds),
		})
	}

	return errors
}

// validateTTS validates the TTSConfig
func (c *Config) validateTTS() []ValidationError {
	var errors []ValidationError

	if c.TTS.Enabled && strings.TrimSpace(c.TTS.Command) == "" {
		errors = append(errors, ValidationError{
			Field:   "tts.command",
			Value:   c.TTS.Command,
			Message: "cannot be empty when tts is enabled",
		})
	}

	if c.TTS.GapSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "tts.gap_seconds",
			Value:   c.TTS.GapSeconds,
			Message: "must be non-negative",
		})
	}

	const minSpeechRate = 0.5
	const maxSpeechRate = 2.0
	if c.TTS.SpeechRate < minSpeechRate || c.TTS.SpeechRate > maxSpeechRate {
		errors = append(errors, ValidationError{
			Field:   "tts.speech_rate",
			Value:   c.TTS.SpeechRate,
			Message: fmt.Sprintf("must be between %.1f and %.1f", minSpeechRate, maxSpeechRate),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
