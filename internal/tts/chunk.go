package tts

import "strings"

// maxChunkChars is the longest text handed to the engine in one call.
// Engines tend to rush or truncate long passages, so turns are split at
// sentence boundaries first and comma boundaries second.
const maxChunkChars = 200

// SplitChunks breaks text into pieces no longer than maxLen characters,
// preferring sentence boundaries and falling back to comma boundaries for
// sentences that are still too long. Whitespace-only pieces are dropped.
func SplitChunks(text string, maxLen int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxLen <= 0 {
		maxLen = maxChunkChars
	}

	var chunks []string
	for _, sentence := range splitAfter(text, ".!?") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if len(sentence) <= maxLen {
			chunks = append(chunks, sentence)
			continue
		}
		for _, clause := range splitAfter(sentence, ",") {
			clause = strings.TrimSpace(clause)
			if clause != "" {
				chunks = append(chunks, clause)
			}
		}
	}
	return chunks
}

// splitAfter splits text after any rune in cutset, keeping the delimiter
// attached to the preceding piece.
func splitAfter(text, cutset string) []string {
	var pieces []string
	start := 0
	for i, r := range text {
		if strings.ContainsRune(cutset, r) {
			pieces = append(pieces, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		pieces = append(pieces, text[start:])
	}
	return pieces
}
