// Package tts turns debate transcripts into audio. It chunks long turns
// into sentence-sized pieces, synthesizes each piece through a pluggable
// Engine, and assembles the results into a single 16-bit PCM track with
// natural pauses.
//
// Synthesis failures never abort a debate: failed segments degrade to
// silence of a fixed length so the rest of the track stays intact.
package tts
