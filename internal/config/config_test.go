package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/imagegen-mcp/internal/config"
)

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-abcdef")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("IMG_LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAIAPIKey != "sk-test-abcdef" {
		t.Errorf("api key: got %q", cfg.OpenAIAPIKey)
	}
	if cfg.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Errorf("base url: got %q", cfg.OpenAIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level: got %q", cfg.LogLevel)
	}
}

func TestLoad_DefaultLogLevel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	// t.Setenv registers restoration; unset so the default applies (cleanenv
	// treats a set-but-empty variable as a value).
	t.Setenv("IMG_LOG_LEVEL", "")
	os.Unsetenv("IMG_LOG_LEVEL")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level default: got %q want info", cfg.LogLevel)
	}
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for missing OPENAI_API_KEY")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestLoad_FromFileEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "openai_api_key: sk-from-file\nlog_level: warn\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("IMG_LOG_LEVEL", "")
	os.Unsetenv("IMG_LOG_LEVEL")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAIAPIKey != "sk-from-env" {
		t.Errorf("env must override file: got %q", cfg.OpenAIAPIKey)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("file value should survive when env is unset: got %q", cfg.LogLevel)
	}
}

func TestKeyLooksStandard(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"sk-proj-abc", true},
		{"sk-", true},
		{"custom-token", false},
		{"", false},
	}
	for _, c := range cases {
		cfg := &config.Config{OpenAIAPIKey: c.key}
		if got := cfg.KeyLooksStandard(); got != c.want {
			t.Errorf("KeyLooksStandard(%q): got %v want %v", c.key, got, c.want)
		}
	}
}

func TestMaskedKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"sk-proj-abcdef", "sk-pr***"},
		{"abc", "***"},
		{"", "?"},
	}
	for _, c := range cases {
		cfg := &config.Config{OpenAIAPIKey: c.key}
		if got := cfg.MaskedKey(); got != c.want {
			t.Errorf("MaskedKey(%q): got %q want %q", c.key, got, c.want)
		}
	}
}
