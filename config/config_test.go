package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
openai_api_key: "test-key"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q, want %q", cfg.OpenAIModel, "gpt-4o-mini")
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.SinceDays != 7 {
		t.Errorf("SinceDays = %d, want 7", cfg.SinceDays)
	}
	if cfg.MaxArticles != 8 {
		t.Errorf("MaxArticles = %d, want 8", cfg.MaxArticles)
	}
	if cfg.FetchTimeoutSecs != 10 {
		t.Errorf("FetchTimeoutSecs = %d, want 10", cfg.FetchTimeoutSecs)
	}
	if cfg.DigestDay != "MON" {
		t.Errorf("DigestDay = %q, want MON", cfg.DigestDay)
	}
	if cfg.DigestTime != "09:00" {
		t.Errorf("DigestTime = %q, want 09:00", cfg.DigestTime)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `
openai_api_key: "test-key"
openai_model: "gpt-4.1"
port: 9000
since_days: 14
max_articles: 12
digest_day: "FRI"
digest_time: "18:30"
timezone: "America/New_York"
sources:
  - "https://example.com/feed.xml"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenAIModel != "gpt-4.1" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.SinceDays != 14 {
		t.Errorf("SinceDays = %d", cfg.SinceDays)
	}
	if cfg.DigestDay != "FRI" || cfg.DigestTime != "18:30" {
		t.Errorf("digest schedule = %q %q", cfg.DigestDay, cfg.DigestTime)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0] != "https://example.com/feed.xml" {
		t.Errorf("Sources = %v", cfg.Sources)
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenAIAPIKey != "env-key" {
		t.Errorf("OpenAIAPIKey = %q, want env override", cfg.OpenAIAPIKey)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q, want env override", cfg.OpenAIModel)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	path := writeConfig(t, `
openai_api_key: "file-key"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OpenAIAPIKey != "env-key" {
		t.Errorf("OpenAIAPIKey = %q, want env to win", cfg.OpenAIAPIKey)
	}
}

func TestLoadMissingCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, `
port: 9000
`)

	_, err := Load(path)
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("err = %v, want ErrMissingCredential", err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad since_days", "openai_api_key: k\nsince_days: 40\n"},
		{"bad max_articles", "openai_api_key: k\nmax_articles: 50\n"},
		{"bad digest_day", "openai_api_key: k\ndigest_day: FUNDAY\n"},
		{"bad digest_time", "openai_api_key: k\ndigest_time: \"25:00\"\n"},
		{"bad timezone", "openai_api_key: k\ntimezone: Mars/Olympus\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("Load accepted invalid config %q", tt.content)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("AI_NEWSLETTER_CONFIG", "/tmp/custom.yaml")
	if got := GetConfigPath(); got != "/tmp/custom.yaml" {
		t.Errorf("GetConfigPath = %q", got)
	}

	t.Setenv("AI_NEWSLETTER_CONFIG", "")
	if got := GetConfigPath(); got != "./config.yaml" {
		t.Errorf("GetConfigPath = %q, want default", got)
	}
}
