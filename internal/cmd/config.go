package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/debateai/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify DebateAI configuration",
	Long: `View or modify DebateAI configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/debateai/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("api:")
	fmt.Printf("  base_url: %s\n", cfg.API.BaseURL)
	if cfg.API.Key != "" {
		fmt.Printf("  key: (set)\n")
	} else {
		fmt.Printf("  key: (not set)\n")
	}
	fmt.Printf("  insecure_skip_verify: %v\n", cfg.API.InsecureSkipVerify)
	fmt.Printf("  request_timeout_seconds: %d\n", cfg.API.RequestTimeoutSeconds)
	fmt.Printf("  connect_timeout_seconds: %d\n", cfg.API.ConnectTimeoutSeconds)

	fmt.Println("debate:")
	fmt.Printf("  format: %s\n", cfg.Debate.Format)
	fmt.Printf("  rounds: %d\n", cfg.Debate.Rounds)

	fmt.Println("voices:")
	fmt.Printf("  for: %s\n", cfg.Voices.For)
	fmt.Printf("  against: %s\n", cfg.Voices.Against)
	fmt.Printf("  announcer: %s\n", cfg.Voices.Announcer)

	fmt.Println("tts:")
	fmt.Printf("  enabled: %v\n", cfg.TTS.Enabled)
	fmt.Printf("  command: %s\n", cfg.TTS.Command)
	fmt.Printf("  gap_seconds: %v\n", cfg.TTS.GapSeconds)
	fmt.Printf("  speech_rate: %v\n", cfg.TTS.SpeechRate)
	fmt.Printf("  output_dir: %s\n", cfg.TTS.OutputDir)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# DebateAI Configuration

# Chat-completions endpoint settings
api:
  # API root; any OpenAI-compatible server works, including local ones
  # like http://localhost:11434/v1
  base_url: https://api.openai.com/v1
  # Bearer token. Leave empty for local endpoints; the OPENAI_API_KEY
  # environment variable is also honored.
  key: ""
  # Disable TLS certificate validation. Only enable for local model
  # servers with self-signed certificates.
  insecure_skip_verify: false

# Debate structure
debate:
  format: presidential
  rounds: 6

# TTS voices per role
voices:
  for: bf_emma
  against: bm_george
  announcer: af_sky

# Optional system prompt overrides per role. Empty values use the
# format-generated prompt. Templates may use {name}, {topic}, and
# {opponent_name} placeholders.
prompts:
  for: ""
  against: ""

# Audio synthesis
tts:
  enabled: false
  # External synthesis command; must write a 16-bit PCM WAV to stdout.
  # Arguments may use {text} and {voice} placeholders.
  command: ""
  # Silence between transcript turns, in seconds
  gap_seconds: 0.5
  # Playback speed (1.0 = as synthesized)
  speech_rate: 1.0
  # Where the debate WAV file is written
  output_dir: .

# Structured logging
logging:
  enabled: true
  level: info
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println("Edit this file to customize DebateAI's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Default path: %s (not created)\n", configFile)
	}

	fmt.Println("\nSearch paths:")
	fmt.Printf("  1. %s\n", configFile)
	fmt.Printf("  2. $HOME/.config/debateai/config.yaml\n")
	fmt.Printf("  3. ./config.yaml (current directory)\n")
	fmt.Println("\nEnvironment variables: DEBATEAI_* (e.g., DEBATEAI_API_BASE_URL)")

	return nil
}
