package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Engine synthesizes one piece of text into PCM samples at SampleRate.
type Engine interface {
	// Synthesize converts text to speech using the given voice. The
	// returned samples are 16-bit mono PCM at SampleRate.
	Synthesize(ctx context.Context, text, voice string) ([]int16, error)
}

// Placeholders substituted into CommandEngine arguments.
const (
	placeholderText  = "{text}"
	placeholderVoice = "{voice}"
)

// CommandEngine delegates synthesis to an external command that writes a
// 16-bit PCM WAV stream to stdout. Arguments may contain the {text} and
// {voice} placeholders; when no argument carries {text}, the text is piped
// to the command's stdin instead.
//
// Example configurations:
//
//	kokoro-cli --voice {voice} --rate 24000
//	edge-tts --voice {voice} --text {text} --write-media /dev/stdout
type CommandEngine struct {
	// Command is the executable to run.
	Command string
	// Args are the command arguments, with optional placeholders.
	Args []string
}

// NewCommandEngine parses a shell-style command line into a CommandEngine.
// The line is split on whitespace; quoting is not supported.
func NewCommandEngine(commandLine string) (*CommandEngine, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty synthesis command")
	}
	return &CommandEngine{Command: fields[0], Args: fields[1:]}, nil
}

// Synthesize implements Engine. The external command's WAV output is
// decoded and, if produced at a different rate, resampled to SampleRate.
func (e *CommandEngine) Synthesize(ctx context.Context, text, voice string) ([]int16, error) {
	args := make([]string, len(e.Args))
	textInArgs := false
	for i, arg := range e.Args {
		if strings.Contains(arg, placeholderText) {
			textInArgs = true
		}
		arg = strings.ReplaceAll(arg, placeholderText, text)
		arg = strings.ReplaceAll(arg, placeholderVoice, voice)
		args[i] = arg
	}

	cmd := exec.CommandContext(ctx, e.Command, args...)
	if !textInArgs {
		cmd.Stdin = strings.NewReader(text)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("synthesis command failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("synthesis command failed: %w", err)
	}

	samples, rate, err := DecodeWAV(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode synthesis output: %w", err)
	}
	if rate != SampleRate && rate > 0 {
		samples = AdjustSpeed(samples, float64(rate)/float64(SampleRate))
	}
	return samples, nil
}
