package cmd

import (
	"fmt"

	"github.com/Iron-Ham/debateai/internal/config"
	"github.com/Iron-Ham/debateai/internal/tts"
	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List known TTS voices",
	Long: `List the voice IDs bundled with the default synthesis setup and show
which voice each debate role currently uses. Engines may accept voices
beyond this list.`,
	RunE: runVoices,
}

func init() {
	rootCmd.AddCommand(voicesCmd)
}

func runVoices(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Known voices:")
	for _, voice := range tts.KnownVoices {
		marker := ""
		switch voice {
		case cfg.Voices.For:
			marker = "  (for)"
		case cfg.Voices.Against:
			marker = "  (against)"
		case cfg.Voices.Announcer:
			marker = "  (announcer)"
		}
		fmt.Printf("  %s%s\n", voice, marker)
	}

	fmt.Println()
	fmt.Println("Assign voices with the --voice flag or in the config file:")
	fmt.Println("  voices:")
	fmt.Printf("    for: %s\n", cfg.Voices.For)
	fmt.Printf("    against: %s\n", cfg.Voices.Against)
	fmt.Printf("    announcer: %s\n", cfg.Voices.Announcer)

	return nil
}
