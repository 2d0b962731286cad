package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// EnvPrefix prefixes every application environment override
const EnvPrefix = "VALUELENS_"

// Config represents the application configuration
type Config struct {
	Logging      LoggingConfig      `toml:"logging"`
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
	Storage      StorageConfig      `toml:"storage"`
	Gemini       GeminiConfig       `toml:"gemini"`
	Claude       ClaudeConfig       `toml:"claude"`
	LLM          LLMConfig          `toml:"llm"`
	Evaluation   EvaluationConfig   `toml:"evaluation"`
	Scheduler    SchedulerConfig    `toml:"scheduler"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Output     []string `toml:"output" validate:"dive,oneof=stdout console file"`
	Dir        string   `toml:"dir"`         // Log directory (default: "logs" beside the executable)
	TimeFormat string   `toml:"time_format"` // Time format for log lines (default: "15:04:05")
}

// AlphaVantageConfig configures the fundamental data provider
type AlphaVantageConfig struct {
	APIKey            string `toml:"api_key"`
	BaseURL           string `toml:"base_url" validate:"required,url"`
	RequestsPerMinute int    `toml:"requests_per_minute" validate:"gte=1"` // Free tier allows 5
	Timeout           string `toml:"timeout" validate:"required"`          // HTTP timeout as duration string (default: "30s")
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey        string  `toml:"api_key"`
	Model         string  `toml:"model"`                              // default: "gemini-2.5-flash"
	Temperature   float32 `toml:"temperature" validate:"gte=0,lte=2"` // default: 0.4
	ThinkingLevel string  `toml:"thinking_level"`                     // MINIMAL, LOW, MEDIUM, HIGH or empty
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`                              // default: "claude-sonnet-4-20250514"
	MaxTokens   int     `toml:"max_tokens" validate:"gte=1"`        // default: 4096
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=1"` // default: 0.4
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the narrative provider and bounds each call
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"`
	Timeout         string      `toml:"timeout" validate:"required"`         // Narrative call timeout (default: "2m")
	MaxRetries      int         `toml:"max_retries" validate:"gte=0,lte=10"` // Retries on transient provider errors (default: 2)
}

// EvaluationConfig controls how time series are built and scored
type EvaluationConfig struct {
	Frequency        string `toml:"frequency" validate:"oneof=annual quarterly"`
	Alignment        string `toml:"alignment" validate:"oneof=date position"`
	DilutionLookback int    `toml:"dilution_lookback" validate:"gte=1"`
	Narrative        bool   `toml:"narrative"` // Generate the LLM narrative by default
}

// SchedulerConfig drives the periodic cache refresh
type SchedulerConfig struct {
	Enabled  bool     `toml:"enabled"`
	Schedule string   `toml:"schedule"` // Cron schedule (5 fields)
	Symbols  []string `toml:"symbols"`  // Symbols to refresh; empty = all cached symbols
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		AlphaVantage: AlphaVantageConfig{
			BaseURL:           "https://www.alphavantage.co",
			RequestsPerMinute: 5,
			Timeout:           "30s",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/valuelens",
			},
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.4,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Temperature: 0.4,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
			Timeout:         "2m",
			MaxRetries:      2,
		},
		Evaluation: EvaluationConfig{
			Frequency:        "annual",
			Alignment:        "date",
			DilutionLookback: 5,
			Narrative:        true,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,
			Schedule: "0 6 * * 1",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> .env -> env
// Later files override earlier files. Flags are applied afterwards by the caller.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadEnvFile loads KEY=VALUE pairs into the process environment.
// A missing file is not an error and existing variables are never overwritten.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Logging
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv(EnvPrefix + "LOG_OUTPUT"); output != "" {
		if outputs := splitList(output); len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Alpha Vantage, conventional variable first then prefixed
	if key := os.Getenv("ALPHAVANTAGE_API_KEY"); key != "" {
		config.AlphaVantage.APIKey = key
	}
	if key := os.Getenv(EnvPrefix + "ALPHAVANTAGE_API_KEY"); key != "" {
		config.AlphaVantage.APIKey = key
	}
	if baseURL := os.Getenv(EnvPrefix + "ALPHAVANTAGE_BASE_URL"); baseURL != "" {
		config.AlphaVantage.BaseURL = baseURL
	}
	if rpm := os.Getenv(EnvPrefix + "ALPHAVANTAGE_REQUESTS_PER_MINUTE"); rpm != "" {
		if n, err := strconv.Atoi(rpm); err == nil {
			config.AlphaVantage.RequestsPerMinute = n
		}
	}

	// Storage
	if badgerPath := os.Getenv(EnvPrefix + "BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// LLM providers
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv(EnvPrefix + "GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv(EnvPrefix + "GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv(EnvPrefix + "CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv(EnvPrefix + "CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if provider := os.Getenv(EnvPrefix + "LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(provider))
	}

	// Evaluation
	if frequency := os.Getenv(EnvPrefix + "FREQUENCY"); frequency != "" {
		config.Evaluation.Frequency = strings.ToLower(frequency)
	}
	if alignment := os.Getenv(EnvPrefix + "ALIGNMENT"); alignment != "" {
		config.Evaluation.Alignment = strings.ToLower(alignment)
	}

	// Scheduler
	if schedule := os.Getenv(EnvPrefix + "SCHEDULE"); schedule != "" {
		config.Scheduler.Schedule = schedule
	}
	if symbols := os.Getenv(EnvPrefix + "SCHEDULE_SYMBOLS"); symbols != "" {
		config.Scheduler.Symbols = splitList(symbols)
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, logLevel string, quarterly bool) {
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	if quarterly {
		config.Evaluation.Frequency = "quarterly"
	}
}

// Validate checks struct constraints, durations and the refresh schedule
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.ParseDuration(c.AlphaVantage.Timeout); err != nil {
		return fmt.Errorf("invalid alphavantage.timeout %q: %w", c.AlphaVantage.Timeout, err)
	}
	if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
		return fmt.Errorf("invalid llm.timeout %q: %w", c.LLM.Timeout, err)
	}

	if c.Scheduler.Enabled {
		if err := ValidateSchedule(c.Scheduler.Schedule); err != nil {
			return fmt.Errorf("invalid scheduler.schedule: %w", err)
		}
	}

	return nil
}

// ValidateSchedule validates a cron schedule expression and ensures minimum 5-minute interval
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	parts := strings.Fields(schedule)
	if len(parts) < 5 {
		return fmt.Errorf("invalid cron format: expected 5 fields")
	}

	minuteField := parts[0]
	if minuteField == "*" {
		return fmt.Errorf("schedule must have minimum 5-minute interval (every minute is not allowed)")
	}
	if strings.HasPrefix(minuteField, "*/") {
		interval, err := strconv.Atoi(strings.TrimPrefix(minuteField, "*/"))
		if err == nil && interval < 5 {
			return fmt.Errorf("schedule interval must be at least 5 minutes, got %d", interval)
		}
	}

	return nil
}

// ResolveAPIKey returns the configured key or an error naming the settings that supply it
func ResolveAPIKey(name, value string, envVars ...string) (string, error) {
	if value != "" {
		return value, nil
	}
	if len(envVars) == 0 {
		return "", fmt.Errorf("API key '%s' not configured", name)
	}
	return "", fmt.Errorf("API key '%s' not configured (set %s or the config file)", name, strings.Join(envVars, " or "))
}

// TimeoutDuration parses the provider timeout, falling back to 30s
func (c AlphaVantageConfig) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Timeout, 30*time.Second)
}

// TimeoutDuration parses the narrative timeout, falling back to 2m
func (c LLMConfig) TimeoutDuration() time.Duration {
	return parseDurationOr(c.Timeout, 2*time.Minute)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// splitList splits a comma-separated value, dropping empty entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
