package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredential marks an absent required credential. Fatal to the
// process; never retried.
var ErrMissingCredential = errors.New("config: missing credential")

// Config holds all application configuration.
type Config struct {
	OpenAIAPIKey     string   `yaml:"openai_api_key"`
	OpenAIModel      string   `yaml:"openai_model"`
	Port             int      `yaml:"port"`
	AllowedOrigin    string   `yaml:"allowed_origin"`
	Sources          []string `yaml:"sources"`
	SinceDays        int      `yaml:"since_days"`
	MaxArticles      int      `yaml:"max_articles"`
	FetchTimeoutSecs int      `yaml:"fetch_timeout_secs"`
	DigestDay        string   `yaml:"digest_day"`
	DigestTime       string   `yaml:"digest_time"`
	Timezone         string   `yaml:"timezone"`
	OutputDir        string   `yaml:"output_dir"`
	LogLevel         string   `yaml:"log_level"`
}

// digestTimeRegex validates HH:MM format with proper ranges.
var digestTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

var validDays = map[string]bool{
	"MON": true, "TUE": true, "WED": true, "THU": true,
	"FRI": true, "SAT": true, "SUN": true,
}

// Load reads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result. A missing file is not
// an error; defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to defaults
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the config file path from environment or default.
func GetConfigPath() string {
	if path := os.Getenv("AI_NEWSLETTER_CONFIG"); path != "" {
		return path
	}
	return "./config.yaml"
}

func applyDefaults(cfg *Config) {
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.SinceDays == 0 {
		cfg.SinceDays = 7
	}
	if cfg.MaxArticles == 0 {
		cfg.MaxArticles = 8
	}
	if cfg.FetchTimeoutSecs == 0 {
		cfg.FetchTimeoutSecs = 10
	}
	if cfg.DigestDay == "" {
		cfg.DigestDay = "MON"
	}
	if cfg.DigestTime == "" {
		cfg.DigestTime = "09:00"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./out"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIAPIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAIModel = model
	}
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		cfg.AllowedOrigin = origin
	}
}

func validate(cfg *Config) error {
	if cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: openai_api_key (or OPENAI_API_KEY) is required", ErrMissingCredential)
	}
	if cfg.SinceDays < 1 || cfg.SinceDays > 31 {
		return fmt.Errorf("since_days must be between 1 and 31, got %d", cfg.SinceDays)
	}
	if cfg.MaxArticles < 1 || cfg.MaxArticles > 20 {
		return fmt.Errorf("max_articles must be between 1 and 20, got %d", cfg.MaxArticles)
	}
	if !validDays[strings.ToUpper(cfg.DigestDay)] {
		return fmt.Errorf("digest_day must be a three-letter day (MON..SUN), got %q", cfg.DigestDay)
	}
	if !digestTimeRegex.MatchString(cfg.DigestTime) {
		return fmt.Errorf("digest_time must be in HH:MM format (00:00-23:59), got %q", cfg.DigestTime)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return nil
}
