// Package event defines the debate lifecycle events and the synchronous
// bus they are delivered on.
//
// The orchestrator publishes events as the debate progresses; renderers
// (console, TUI, audio) subscribe without the orchestrator knowing about
// them. Dispatch is synchronous and ordered: handlers run on the
// publisher's goroutine in registration order, so a subscriber observing
// SpeakerMessage has already observed the SpeakerStart for the same turn.
// A handler that blocks stalls the debate; subscribers must return
// promptly.
package event
