// Package errors provides centralized error definitions and classification
// helpers for the debateai codebase.
//
// The error taxonomy has three classes, each with a distinct type:
//
//   - Setup errors (ParticipantCountError, format lookup failures): detected
//     before any network call, never retried.
//   - Transport errors (CompletionError): retried with backoff inside the
//     chat client, surfaced wrapped once retries are exhausted.
//   - Degenerate-content errors (EmptyResponseError): a transport success
//     whose sanitized content is too short to continue the debate; retried
//     at the orchestration level and fatal after exhaustion.
//
// Synthesis errors (SynthesisError) sit outside the taxonomy: they are never
// fatal to a debate and callers are expected to degrade gracefully.
//
// Checking errors:
//
//	if errors.IsRetryable(err) { ... }
//	var countErr *errors.ParticipantCountError
//	if errors.As(err, &countErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience, so callers can
// import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// General sentinel errors.
var (
	// ErrCanceled indicates the run was canceled by the caller.
	ErrCanceled = New("debate canceled")
	// ErrNoParticipants indicates an empty participant list.
	ErrNoParticipants = New("no participants configured")
)

// ParticipantCountError reports a participant list whose size falls outside
// the bounds required by the chosen format. It is a setup error: nothing
// has been sent to the model endpoint when it is returned.
type ParticipantCountError struct {
	Min    int
	Max    int
	Actual int
}

func (e *ParticipantCountError) Error() string {
	return fmt.Sprintf("invalid participant count: expected %d-%d, got %d", e.Min, e.Max, e.Actual)
}

// CompletionError reports a failed remote completion after the chat
// client's transport retries were exhausted. It wraps the last underlying
// transport or endpoint failure.
type CompletionError struct {
	Model    string
	Attempts int
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed for model %s after %d attempts: %v", e.Model, e.Attempts, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// EmptyResponseError reports a participant whose responses stayed empty (or
// below the minimum useful length) through every orchestrator-level retry.
// The debate cannot continue without that turn.
type EmptyResponseError struct {
	Participant string
	Attempts    int
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("participant %q returned an empty response after %d retries; debate cannot continue",
		e.Participant, e.Attempts)
}

// SynthesisError reports a text-to-speech failure for one transcript
// segment. Synthesis failures never abort a debate; callers substitute
// silence for the failed segment.
type SynthesisError struct {
	Voice string
	Err   error
}

func (e *SynthesisError) Error() string {
	if e.Voice != "" {
		return fmt.Sprintf("synthesis failed for voice %s: %v", e.Voice, e.Err)
	}
	return fmt.Sprintf("synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// IsRetryable reports whether the error is transient and the operation may
// succeed if attempted again. Only transport-class failures qualify; setup
// and degenerate-content errors do not.
func IsRetryable(err error) bool {
	var completionErr *CompletionError
	return errors.As(err, &completionErr)
}

// IsFatal reports whether the error must terminate the run. Everything is
// fatal to a debate except synthesis failures, which degrade to silence.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var synthErr *SynthesisError
	return !errors.As(err, &synthErr)
}
