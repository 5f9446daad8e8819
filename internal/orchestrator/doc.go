// Package orchestrator drives a debate from start to finish: it walks the
// format's sections in order, collects each speaker's turn over the chat
// client, sanitizes responses, cross-pollinates opponent turns into every
// other participant's history, and publishes lifecycle events for renderers.
//
// The orchestrator is strictly sequential. One debate, one goroutine; all
// concurrency lives behind the event bus subscribers.
package orchestrator
