// Package chat implements the client boundary to an OpenAI-compatible
// chat-completions endpoint.
//
// The orchestrator depends only on the Completer interface; Client is the
// HTTP implementation with the transport retry policy (3 attempts,
// exponential backoff) baked in. Content-level retries for empty responses
// are deliberately NOT handled here: a transport success with degenerate
// content is a different failure class, owned by the orchestrator.
package chat
