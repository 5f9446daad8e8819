package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Iron-Ham/debateai/internal/chat"
	"github.com/Iron-Ham/debateai/internal/config"
	"github.com/Iron-Ham/debateai/internal/errors"
	"github.com/Iron-Ham/debateai/internal/event"
	"github.com/Iron-Ham/debateai/internal/format"
	"github.com/Iron-Ham/debateai/internal/logging"
	"github.com/Iron-Ham/debateai/internal/orchestrator"
	"github.com/Iron-Ham/debateai/internal/participant"
	"github.com/Iron-Ham/debateai/internal/tts"
	"github.com/Iron-Ham/debateai/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <topic>",
	Short: "Run a debate on the given topic",
	Long: `Run a full debate on the given topic between two AI participants.

Each --model flag adds a participant; with a single --model, both sides
use the same model. The first participant argues for the topic, the
second against.`,
	Example: `  debateai run "Should AI be open source?" --model gpt-4
  debateai run "Tabs vs spaces" --model gpt-4 --model llama3:8b --rounds 8
  debateai run "Remote work" --model gpt-4 --tui`,
	Args: cobra.ExactArgs(1),
	RunE: runDebate,
}

var (
	runModels         []string
	runNames          []string
	runVoiceIDs       []string
	runFormat         string
	runRounds         int
	runOutputDir      string
	runDisableAudio   bool
	runAnnouncerVoice string
	runUseTUI         bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&runModels, "model", "m", nil, "model for a participant (repeatable)")
	runCmd.Flags().StringArrayVarP(&runNames, "name", "n", nil, "display name for a participant (repeatable)")
	runCmd.Flags().StringArrayVar(&runVoiceIDs, "voice", nil, "TTS voice for a participant (repeatable)")
	runCmd.Flags().StringVar(&runFormat, "debate-format", "", "debate format (default from config)")
	runCmd.Flags().IntVar(&runRounds, "rounds", 0, "number of rounds (default from config)")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "directory for the debate audio file")
	runCmd.Flags().BoolVar(&runDisableAudio, "disable-audio", false, "skip audio synthesis even if enabled in config")
	runCmd.Flags().StringVar(&runAnnouncerVoice, "announcer-voice", "", "TTS voice for section announcements")
	runCmd.Flags().BoolVar(&runUseTUI, "tui", false, "render the debate in a full-screen terminal UI")
}

// defaultNames are used when --name flags are not provided.
var defaultNames = []string{"Candidate A", "Candidate B", "Candidate C", "Candidate D"}

func runDebate(cmd *cobra.Command, args []string) error {
	topic := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	applyEnvFallbacks(cfg)

	formatName := cfg.Debate.Format
	if runFormat != "" {
		formatName = runFormat
	}
	rounds := cfg.Debate.Rounds
	if runRounds > 0 {
		rounds = runRounds
	}

	f, err := format.Get(formatName, rounds)
	if err != nil {
		return err
	}

	participants, err := buildParticipants(cfg, f, topic)
	if err != nil {
		return err
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		defer func() { _ = logger.Close() }()
	}

	client := chat.NewClient(chat.ClientConfig{
		BaseURL:            cfg.API.BaseURL,
		APIKey:             cfg.API.Key,
		InsecureSkipVerify: cfg.API.InsecureSkipVerify,
		RequestTimeout:     cfg.API.RequestTimeout(),
		ConnectTimeout:     cfg.API.ConnectTimeout(),
	})

	bus := event.NewBus()

	orch, err := orchestrator.New(topic, f, participants, client,
		orchestrator.WithBus(bus),
		orchestrator.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var transcript []orchestrator.Turn
	if runUseTUI {
		transcript, err = runWithTUI(ctx, orch, bus, topic)
	} else {
		renderer := newConsoleRenderer(os.Stdout)
		renderer.attach(bus)
		fmt.Printf("Starting debate: %s\n", topic)
		fmt.Printf("Format: %s\n", f.DisplayName())
		transcript, err = orch.Run(ctx)
	}
	if err != nil {
		return err
	}

	if cfg.TTS.Enabled && !runDisableAudio {
		if err := synthesizeDebate(ctx, cfg, topic, participants, transcript, logger); err != nil {
			return err
		}
	}

	return nil
}

// runWithTUI runs the orchestrator in the background while bubbletea owns
// the terminal, forwarding bus events into the program. Quitting the TUI
// early cancels the debate; the orchestrator goroutine is always waited
// for before its result is read.
func runWithTUI(ctx context.Context, orch *orchestrator.Orchestrator, bus *event.Bus, topic string) ([]orchestrator.Turn, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.New(topic), tea.WithAltScreen())
	tui.Forward(p, bus)

	results := startDebate(ctx, orch, func(msg tui.DoneMsg) { p.Send(msg) })

	_, uiErr := p.Run()
	cancel()
	res := <-results

	if uiErr != nil {
		return nil, fmt.Errorf("terminal UI failed: %w", uiErr)
	}
	return res.transcript, res.err
}

// debateResult carries the orchestrator's outcome across the goroutine
// boundary in runWithTUI.
type debateResult struct {
	transcript []orchestrator.Turn
	err        error
}

// startDebate runs the orchestrator on its own goroutine. The result is
// delivered on the returned channel before notify fires, so a caller that
// quits on the notification can still receive it without racing.
func startDebate(ctx context.Context, orch *orchestrator.Orchestrator, notify func(tui.DoneMsg)) <-chan debateResult {
	results := make(chan debateResult, 1)
	go func() {
		transcript, err := orch.Run(ctx)
		results <- debateResult{transcript: transcript, err: err}
		notify(tui.DoneMsg{Err: err})
	}()
	return results
}

// applyEnvFallbacks honors the conventional OpenAI environment variables
// when the corresponding config values are unset or left at defaults.
func applyEnvFallbacks(cfg *config.Config) {
	if base := os.Getenv("OPENAI_API_BASE"); base != "" && cfg.API.BaseURL == config.Default().API.BaseURL {
		cfg.API.BaseURL = base
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.API.Key == "" {
		cfg.API.Key = key
	}
}

// buildParticipants assembles the participant list from flags and config.
// The first participant argues for the topic, the second against; with a
// single --model both sides share it.
func buildParticipants(cfg *config.Config, f format.DebateFormat, topic string) ([]participant.Participant, error) {
	if len(runModels) == 0 {
		return nil, errors.New("at least one --model is required")
	}

	count := len(runModels)
	if count < f.MinParticipants() {
		count = f.MinParticipants()
	}
	if count > f.MaxParticipants() {
		return nil, fmt.Errorf("too many models: %s supports at most %d participants", f.Name(), f.MaxParticipants())
	}

	participants := make([]participant.Participant, count)
	for i := 0; i < count; i++ {
		model := runModels[len(runModels)-1]
		if i < len(runModels) {
			model = runModels[i]
		}

		name := fmt.Sprintf("Candidate %d", i+1)
		if i < len(defaultNames) {
			name = defaultNames[i]
		}
		if i < len(runNames) {
			name = runNames[i]
		}

		role := participant.RoleFor
		if i%2 == 1 {
			role = participant.RoleAgainst
		}

		p := participant.New(name, model, role)
		p = p.WithVoice(voiceFor(cfg, role, i))
		if prompt := promptOverride(cfg, role); prompt != "" {
			opponent := ""
			if count > 1 {
				opp := 0
				if i == 0 {
					opp = 1
				}
				oppName := fmt.Sprintf("Candidate %d", opp+1)
				if opp < len(defaultNames) {
					oppName = defaultNames[opp]
				}
				if opp < len(runNames) {
					oppName = runNames[opp]
				}
				opponent = oppName
			}
			p = p.WithSystemPrompt(config.ExpandPrompt(prompt, name, topic, opponent))
		}
		participants[i] = p
	}

	return participants, nil
}

// voiceFor picks the participant's TTS voice: explicit --voice flags win,
// then the configured role voice.
func voiceFor(cfg *config.Config, role participant.Role, index int) string {
	if index < len(runVoiceIDs) {
		return runVoiceIDs[index]
	}
	if role == participant.RoleAgainst {
		return cfg.Voices.Against
	}
	return cfg.Voices.For
}

// promptOverride returns the configured prompt template for a role, or ""
// when the format-generated prompt should be used.
func promptOverride(cfg *config.Config, role participant.Role) string {
	if role == participant.RoleAgainst {
		return cfg.Prompts.Against
	}
	return cfg.Prompts.For
}

// synthesizeDebate narrates the transcript and writes a single WAV file.
// Section changes get an announcer line; failed segments degrade to
// silence so one bad turn never loses the whole recording.
func synthesizeDebate(ctx context.Context, cfg *config.Config, topic string, participants []participant.Participant, transcript []orchestrator.Turn, logger *logging.Logger) error {
	engine, err := tts.NewCommandEngine(cfg.TTS.Command)
	if err != nil {
		return fmt.Errorf("setting up synthesis: %w", err)
	}
	synth := tts.NewSynthesizer(engine,
		tts.WithSpeechRate(cfg.TTS.SpeechRate),
		tts.WithSynthLogger(logger),
	)

	announcerVoice := cfg.Voices.Announcer
	if runAnnouncerVoice != "" {
		announcerVoice = runAnnouncerVoice
	}

	fmt.Println("Synthesizing debate audio...")

	var segments [][]int16
	currentSection := ""
	for _, turn := range transcript {
		if err := ctx.Err(); err != nil {
			return err
		}

		if turn.Section != currentSection {
			currentSection = turn.Section
			announcement, err := synth.SynthesizeTurn(ctx, turn.Section+".", announcerVoice)
			if err != nil {
				logger.Warn("announcer synthesis failed, inserting silence", "section", turn.Section, "error", err)
				announcement = tts.FailedSegmentSilence()
			}
			segments = append(segments, announcement)
		}

		voice := cfg.Voices.For
		if turn.SpeakerIndex < len(participants) {
			voice = participants[turn.SpeakerIndex].VoiceID
		}
		audio, err := synth.SynthesizeTurn(ctx, turn.Content, voice)
		if err != nil {
			logger.Warn("turn synthesis failed, inserting silence", "speaker", turn.SpeakerName, "error", err)
			audio = tts.FailedSegmentSilence()
		}
		segments = append(segments, audio)
	}

	combined := tts.CombineSegments(segments, cfg.TTS.GapSeconds, tts.SampleRate)

	outputDir := cfg.TTS.OutputDir
	if runOutputDir != "" {
		outputDir = runOutputDir
	}
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outPath := filepath.Join(outputDir, tts.OutputFilename(topic))
	if err := tts.WriteWAV(outPath, combined, tts.SampleRate); err != nil {
		return err
	}

	fmt.Printf("Debate audio written to %s\n", outPath)
	return nil
}
