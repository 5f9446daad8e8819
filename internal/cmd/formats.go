package cmd

import (
	"fmt"

	"github.com/Iron-Ham/debateai/internal/format"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available debate formats",
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	fmt.Println("Available debate formats:")
	fmt.Println()

	for _, name := range format.Available() {
		f, err := format.Get(name, 6)
		if err != nil {
			return err
		}

		fmt.Printf("  %s - %s\n", name, f.DisplayName())
		if f.MinParticipants() == f.MaxParticipants() {
			fmt.Printf("      participants: %d\n", f.MinParticipants())
		} else {
			fmt.Printf("      participants: %d-%d\n", f.MinParticipants(), f.MaxParticipants())
		}
		fmt.Printf("      sections at 6 rounds:\n")
		for _, section := range f.Sections() {
			fmt.Printf("        %s (speakers: %d, max tokens: %d)\n",
				section.Name, len(section.SpeakerOrder), section.MaxTokens)
		}
	}

	return nil
}
