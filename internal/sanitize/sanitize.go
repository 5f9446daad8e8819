// Package sanitize cleans model output before it enters the transcript.
//
// Local and reasoning-tuned models frequently leak scratch work wrapped in
// XML-ish tags (<thinking>, <reflection>, ...) and markdown emphasis that
// reads poorly aloud. Sanitize strips all of it and normalizes whitespace,
// leaving only the spoken argument.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// reasoningTags are the tag names whose entire spans are removed, content
// included. Longer variants are listed before their prefixes so the span
// patterns stay unambiguous to a reader, though matching does not depend
// on the order.
var reasoningTags = []string{
	"thinking",
	"think",
	"reflection",
	"reflect",
	"internal",
	"reasoning",
	"thought",
	"scratch",
	"scratchpad",
	"plan",
	"analysis",
	"analyze",
	"consider",
	"pondering",
	"deliberation",
}

var (
	tagSpanPatterns = buildTagSpanPatterns()

	// orphanTagPattern catches opening or closing tags left behind by
	// mismatched or unknown markup.
	orphanTagPattern = regexp.MustCompile(`</?\w+[^>]*>`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

func buildTagSpanPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(reasoningTags))
	for _, tag := range reasoningTags {
		// Case-insensitive, dot matches newline, non-greedy span.
		// The tag may carry attributes.
		patterns = append(patterns, regexp.MustCompile(
			fmt.Sprintf(`(?is)<%s[^>]*>.*?</%s>`, tag, tag)))
	}
	return patterns
}

// Sanitize strips reasoning-tag spans, orphaned markup tags, and emphasis
// asterisks, then collapses whitespace runs to single spaces and trims.
// Sanitize is pure and idempotent.
func Sanitize(raw string) string {
	s := raw

	for _, re := range tagSpanPatterns {
		s = re.ReplaceAllString(s, "")
	}

	s = orphanTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "*", "")
	s = whitespacePattern.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
