package config

import (
	"encoding/json"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != "fast" {
		t.Errorf("Expected default model 'fast', got '%s'", cfg.DefaultModel)
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Expected default markdown style 'dark', got '%s'", cfg.Markdown.Style)
	}
	if !cfg.Markdown.PreserveNewLines {
		t.Error("Expected PreserveNewLines to default to true")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultModel = "pro"
	cfg.Verbose = true
	cfg.SpeechLanguage = "pt-PT"

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if loaded.DefaultModel != "pro" || !loaded.Verbose || loaded.SpeechLanguage != "pt-PT" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadConfigPartialOverridesDefaults(t *testing.T) {
	// Unknown and missing keys keep their defaults
	var cfg = DefaultConfig()
	if err := json.Unmarshal([]byte(`{"default_model":"pro"}`), &cfg); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if cfg.DefaultModel != "pro" {
		t.Errorf("DefaultModel = %q, want 'pro'", cfg.DefaultModel)
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Markdown.Style = %q, want default 'dark'", cfg.Markdown.Style)
	}
}
