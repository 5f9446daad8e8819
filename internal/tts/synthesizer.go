package tts

import (
	"context"
	"fmt"
	"strings"

	"github.com/Iron-Ham/debateai/internal/errors"
	"github.com/Iron-Ham/debateai/internal/logging"
)

// Pause lengths used when assembling a turn from chunks.
const (
	// interChunkPauseSeconds separates sentence chunks within one turn.
	interChunkPauseSeconds = 0.3
	// trailingPadSeconds follows every turn so consecutive speakers don't
	// run into each other.
	trailingPadSeconds = 0.5
	// failedSegmentSeconds of silence stand in for a segment whose
	// synthesis failed.
	failedSegmentSeconds = 1.0
)

// Default voices for the shipped kokoro-style voice set.
const (
	DefaultVoiceFor       = "bf_emma"
	DefaultVoiceAgainst   = "bm_george"
	DefaultVoiceAnnouncer = "af_sky"
)

// KnownVoices lists the voice IDs bundled with the default engine setup.
// Engines may accept more; this list only drives the voices command and
// config validation warnings.
var KnownVoices = []string{
	"af_bella", "af_nicole", "af_sarah", "af_sky",
	"am_adam", "am_michael",
	"bf_emma", "bf_isabella",
	"bm_george", "bm_lewis",
}

// IsKnownVoice reports whether id is in KnownVoices.
func IsKnownVoice(id string) bool {
	for _, v := range KnownVoices {
		if v == id {
			return true
		}
	}
	return false
}

// Synthesizer converts transcript turns into audio segments through an
// Engine, handling chunking, pacing, and speed adjustment.
type Synthesizer struct {
	engine     Engine
	speechRate float64
	logger     *logging.Logger
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithSpeechRate sets the playback rate applied to every synthesized turn.
// Values at or below zero are ignored.
func WithSpeechRate(rate float64) SynthesizerOption {
	return func(s *Synthesizer) {
		if rate > 0 {
			s.speechRate = rate
		}
	}
}

// WithSynthLogger sets the structured logger.
func WithSynthLogger(logger *logging.Logger) SynthesizerOption {
	return func(s *Synthesizer) { s.logger = logger }
}

// NewSynthesizer creates a Synthesizer over the given engine.
func NewSynthesizer(engine Engine, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		engine:     engine,
		speechRate: 1.0,
		logger:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SynthesizeTurn converts one transcript turn to audio. The text is split
// into sentence chunks, each chunk is synthesized separately, and every
// chunk is followed by a short pause; a trailing pad closes the turn so
// the final words are never cut off.
//
// Any engine failure aborts the turn with a SynthesisError; callers are
// expected to substitute FailedSegmentSilence and keep going.
func (s *Synthesizer) SynthesizeTurn(ctx context.Context, text, voice string) ([]int16, error) {
	chunks := SplitChunks(text, maxChunkChars)
	if len(chunks) == 0 {
		return nil, &errors.SynthesisError{Voice: voice, Err: fmt.Errorf("no synthesizable text")}
	}

	pause := Silence(interChunkPauseSeconds, SampleRate)
	var audio []int16
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		samples, err := s.engine.Synthesize(ctx, chunk, voice)
		if err != nil {
			return nil, &errors.SynthesisError{Voice: voice, Err: err}
		}
		s.logger.Debug("chunk synthesized", "voice", voice, "chunk", i, "samples", len(samples))
		audio = append(audio, samples...)
		// Pause after every chunk, the last included, to prevent cutoff.
		audio = append(audio, pause...)
	}
	audio = append(audio, Silence(trailingPadSeconds, SampleRate)...)

	if s.speechRate != 1.0 {
		audio = AdjustSpeed(audio, s.speechRate)
	}
	return audio, nil
}

// FailedSegmentSilence returns the silence substituted for a turn whose
// synthesis failed.
func FailedSegmentSilence() []int16 {
	return Silence(failedSegmentSeconds, SampleRate)
}

// OutputFilename derives the debate audio filename from the topic.
// Characters outside letters, digits, space, '-' and '_' are replaced
// with '_', and the topic is truncated to 50 characters and trimmed of
// surrounding whitespace.
func OutputFilename(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("DebateAI - %s.wav", strings.TrimSpace(name))
}
