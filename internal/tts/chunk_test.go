package tts

import (
	"strings"
	"testing"
)

func TestSplitChunksShortText(t *testing.T) {
	got := SplitChunks("A short statement.", 200)
	if len(got) != 1 || got[0] != "A short statement." {
		t.Errorf("chunks = %q", got)
	}
}

func TestSplitChunksBySentence(t *testing.T) {
	text := "First point. Second point! Third point?"
	got := SplitChunks(text, 200)

	want := []string{"First point.", "Second point!", "Third point?"}
	if len(got) != len(want) {
		t.Fatalf("chunks = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitChunksLongSentenceFallsBackToCommas(t *testing.T) {
	long := strings.Repeat("a", 120) + ", " + strings.Repeat("b", 120) + ", and done."
	got := SplitChunks(long, 200)

	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3: %q", len(got), got)
	}
	for i, chunk := range got {
		if len(chunk) > 200 {
			t.Errorf("chunk %d length = %d, exceeds limit", i, len(chunk))
		}
	}
}

func TestSplitChunksEmpty(t *testing.T) {
	if got := SplitChunks("", 200); got != nil {
		t.Errorf("empty input produced %q", got)
	}
	if got := SplitChunks("   \n  ", 200); got != nil {
		t.Errorf("whitespace input produced %q", got)
	}
}

func TestSplitChunksNoTerminalPunctuation(t *testing.T) {
	got := SplitChunks("trailing words without a period", 200)
	if len(got) != 1 || got[0] != "trailing words without a period" {
		t.Errorf("chunks = %q", got)
	}
}
