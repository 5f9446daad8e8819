package tts

import (
	"context"
	"fmt"
	"testing"

	"github.com/Iron-Ham/debateai/internal/errors"
)

// fixedEngine returns a constant number of samples per call, or fails.
type fixedEngine struct {
	samplesPerCall int
	err            error
	calls          []string // synthesized texts, in order
}

func (e *fixedEngine) Synthesize(_ context.Context, text, voice string) ([]int16, error) {
	e.calls = append(e.calls, text)
	if e.err != nil {
		return nil, e.err
	}
	out := make([]int16, e.samplesPerCall)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

func TestSynthesizeTurnSingleChunk(t *testing.T) {
	engine := &fixedEngine{samplesPerCall: 1000}
	s := NewSynthesizer(engine)

	audio, err := s.SynthesizeTurn(context.Background(), "A single sentence.", "bf_emma")
	if err != nil {
		t.Fatalf("SynthesizeTurn() error: %v", err)
	}

	// 1000 speech samples, 0.3s pause (7200), 0.5s trailing pad (12000).
	want := 1000 + 7200 + 12000
	if len(audio) != want {
		t.Errorf("audio length = %d, want %d", len(audio), want)
	}
	if len(engine.calls) != 1 {
		t.Errorf("engine called %d times, want 1", len(engine.calls))
	}
}

func TestSynthesizeTurnInsertsPausesBetweenChunks(t *testing.T) {
	engine := &fixedEngine{samplesPerCall: 500}
	s := NewSynthesizer(engine)

	audio, err := s.SynthesizeTurn(context.Background(), "First point. Second point. Third point.", "bf_emma")
	if err != nil {
		t.Fatalf("SynthesizeTurn() error: %v", err)
	}

	// 3 chunks x 500 samples, a 0.3s pause (7200) after each chunk, the
	// last included, then the 0.5s pad (12000).
	want := 3*500 + 3*7200 + 12000
	if len(audio) != want {
		t.Fatalf("audio length = %d, want %d", len(audio), want)
	}

	// First pause sits right after the first chunk.
	for i := 500; i < 500+7200; i++ {
		if audio[i] != 0 {
			t.Fatalf("pause sample %d = %d, want silence", i, audio[i])
		}
	}

	// The third chunk ends at 15900; everything after it is the final
	// pause plus the pad.
	if audio[15899] != 1 {
		t.Errorf("sample 15899 = %d, want speech", audio[15899])
	}
	if audio[15900] != 0 {
		t.Errorf("sample 15900 = %d, want silence after last chunk", audio[15900])
	}
}

func TestSynthesizeTurnAppliesSpeechRate(t *testing.T) {
	engine := &fixedEngine{samplesPerCall: 12000}
	s := NewSynthesizer(engine, WithSpeechRate(2.0))

	audio, err := s.SynthesizeTurn(context.Background(), "A single sentence.", "bf_emma")
	if err != nil {
		t.Fatalf("SynthesizeTurn() error: %v", err)
	}

	// (12000 speech + 7200 pause + 12000 pad) at double speed.
	if len(audio) != 15600 {
		t.Errorf("audio length = %d, want 15600", len(audio))
	}
}

func TestSynthesizeTurnWrapsEngineFailure(t *testing.T) {
	engine := &fixedEngine{err: fmt.Errorf("voice model missing")}
	s := NewSynthesizer(engine)

	_, err := s.SynthesizeTurn(context.Background(), "Some text.", "bm_george")
	var synthErr *errors.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("error = %v, want SynthesisError", err)
	}
	if synthErr.Voice != "bm_george" {
		t.Errorf("voice = %q", synthErr.Voice)
	}
	if errors.IsFatal(err) {
		t.Error("synthesis failures must not be fatal")
	}
}

func TestSynthesizeTurnEmptyText(t *testing.T) {
	s := NewSynthesizer(&fixedEngine{samplesPerCall: 100})

	_, err := s.SynthesizeTurn(context.Background(), "   ", "af_sky")
	var synthErr *errors.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Errorf("error = %v, want SynthesisError", err)
	}
}

func TestFailedSegmentSilence(t *testing.T) {
	got := FailedSegmentSilence()
	if len(got) != 24000 {
		t.Errorf("silence length = %d, want 24000 (1s)", len(got))
	}
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Should AI be open source?", "DebateAI - Should AI be open source_.wav"},
		{"Tabs are better than spaces", "DebateAI - Tabs are better than spaces.wav"},
		{"a/b\\c:d", "DebateAI - a_b_c_d.wav"},
		{"  padded topic  ", "DebateAI - padded topic.wav"},
		{"", "DebateAI - .wav"},
	}

	for _, tt := range tests {
		if got := OutputFilename(tt.topic); got != tt.want {
			t.Errorf("OutputFilename(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestOutputFilenameTruncates(t *testing.T) {
	topic := "This topic is deliberately far too long to fit inside the fifty character budget"
	got := OutputFilename(topic)

	// "DebateAI - " + 50 chars + ".wav"
	if len(got) != len("DebateAI - ")+50+len(".wav") {
		t.Errorf("filename length = %d: %q", len(got), got)
	}
}

func TestOutputFilenameTrimsAfterTruncation(t *testing.T) {
	// Character 50 lands on a space, which must not survive into the name.
	topic := "This topic is exactly long enough that the cutoff " + "lands mid phrase"
	got := OutputFilename(topic)

	if got != "DebateAI - This topic is exactly long enough that the cutoff.wav" {
		t.Errorf("OutputFilename() = %q", got)
	}
}

func TestIsKnownVoice(t *testing.T) {
	if !IsKnownVoice("bf_emma") {
		t.Error("bf_emma should be known")
	}
	if IsKnownVoice("xx_nobody") {
		t.Error("xx_nobody should not be known")
	}
}
