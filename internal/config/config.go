// Package config defines the DebateAI configuration, loaded with viper
// from ~/.config/debateai/config.yaml, environment variables, and flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete DebateAI configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Debate  DebateConfig  `mapstructure:"debate"`
	Voices  VoicesConfig  `mapstructure:"voices"`
	Prompts PromptsConfig `mapstructure:"prompts"`
	TTS     TTSConfig     `mapstructure:"tts"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig controls the connection to the chat-completions endpoint
type APIConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1" or a
	// local server like "http://localhost:11434/v1"
	BaseURL string `mapstructure:"base_url"`
	// Key is the bearer token. Empty is valid for local endpoints.
	Key string `mapstructure:"key"`
	// InsecureSkipVerify disables TLS certificate validation. Only enable
	// this for local model servers with self-signed certificates.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
	// RequestTimeoutSeconds bounds one completion request
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
	// ConnectTimeoutSeconds bounds connection establishment
	ConnectTimeoutSeconds int `mapstructure:"connect_timeout_seconds"`
}

// DebateConfig controls the debate structure
type DebateConfig struct {
	// Format is the debate format name (default: "presidential")
	Format string `mapstructure:"format"`
	// Rounds is the requested round count; formats may clamp it upward
	Rounds int `mapstructure:"rounds"`
}

// VoicesConfig assigns TTS voices to debate roles
type VoicesConfig struct {
	// For is the voice for the participant arguing in favor
	For string `mapstructure:"for"`
	// Against is the voice for the participant arguing against
	Against string `mapstructure:"against"`
	// Announcer is the voice for section announcements
	Announcer string `mapstructure:"announcer"`
}

// PromptsConfig holds optional system prompt overrides per role.
// Templates may use {name}, {topic}, and {opponent_name} placeholders.
// Empty values fall back to the format-generated prompt.
type PromptsConfig struct {
	For     string `mapstructure:"for"`
	Against string `mapstructure:"against"`
}

// TTSConfig controls audio synthesis
type TTSConfig struct {
	// Enabled turns the audio pipeline on (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Command is the external synthesis command line. Arguments may use
	// the {text} and {voice} placeholders; without a {text} placeholder,
	// text is piped to the command's stdin. The command must write a
	// 16-bit PCM WAV stream to stdout.
	Command string `mapstructure:"command"`
	// GapSeconds is the silence inserted between transcript turns
	GapSeconds float64 `mapstructure:"gap_seconds"`
	// SpeechRate adjusts playback speed (1.0 = as synthesized)
	SpeechRate float64 `mapstructure:"speech_rate"`
	// OutputDir is where the debate WAV file is written (default: ".")
	OutputDir string `mapstructure:"output_dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether structured logging is written (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for the log file. Empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// RequestTimeout returns the request timeout as a time.Duration
func (a *APIConfig) RequestTimeout() time.Duration {
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ConnectTimeout returns the connect timeout as a time.Duration
func (a *APIConfig) ConnectTimeout() time.Duration {
	return time.Duration(a.ConnectTimeoutSeconds) * time.Second
}

// ExpandPrompt substitutes the {name}, {topic}, and {opponent_name}
// placeholders in a prompt template.
func ExpandPrompt(template, name, topic, opponentName string) string {
	out := strings.ReplaceAll(template, "{name}", name)
	out = strings.ReplaceAll(out, "{topic}", topic)
	out = strings.ReplaceAll(out, "{opponent_name}", opponentName)
	return out
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:               "https://api.openai.com/v1",
			Key:                   "",
			InsecureSkipVerify:    false,
			RequestTimeoutSeconds: 120,
			ConnectTimeoutSeconds: 30,
		},
		Debate: DebateConfig{
			Format: "presidential",
			Rounds: 6,
		},
		Voices: VoicesConfig{
			For:       "bf_emma",
			Against:   "bm_george",
			Announcer: "af_sky",
		},
		Prompts: PromptsConfig{
			For:     "", // Empty means use the format-generated prompt
			Against: "",
		},
		TTS: TTSConfig{
			Enabled:    false,
			Command:    "",
			GapSeconds: 0.5,
			SpeechRate: 1.0,
			OutputDir:  ".",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// API defaults
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.key", defaults.API.Key)
	viper.SetDefault("api.insecure_skip_verify", defaults.API.InsecureSkipVerify)
	viper.SetDefault("api.request_timeout_seconds", defaults.API.RequestTimeoutSeconds)
	viper.SetDefault("api.connect_timeout_seconds", defaults.API.ConnectTimeoutSeconds)

	// Debate defaults
	viper.SetDefault("debate.format", defaults.Debate.Format)
	viper.SetDefault("debate.rounds", defaults.Debate.Rounds)

	// Voice defaults
	viper.SetDefault("voices.for", defaults.Voices.For)
	viper.SetDefault("voices.against", defaults.Voices.Against)
	viper.SetDefault("voices.announcer", defaults.Voices.Announcer)

	// Prompt defaults
	viper.SetDefault("prompts.for", defaults.Prompts.For)
	viper.SetDefault("prompts.against", defaults.Prompts.Against)

	// TTS defaults
	viper.SetDefault("tts.enabled", defaults.TTS.Enabled)
	viper.SetDefault("tts.command", defaults.TTS.Command)
	viper.SetDefault("tts.gap_seconds", defaults.TTS.GapSeconds)
	viper.SetDefault("tts.speech_rate", defaults.TTS.SpeechRate)
	viper.SetDefault("tts.output_dir", defaults.TTS.OutputDir)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "debateai")
	}
	// Fall back to ~/.config/debateai
	home, err := os.UserHomeDir()
	if err != nil {
		return ".debateai"
	}
	return filepath.Join(home, ".config", "debateai")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
