package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetModelFlagPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	orig := modelFlag
	defer func() { modelFlag = orig }()

	modelFlag = "gemini-3.0-pro"
	if got := getModel(); got != "gemini-3.0-pro" {
		t.Errorf("getModel() = %q, want flag value", got)
	}

	modelFlag = ""
	if got := getModel(); got != "fast" {
		t.Errorf("getModel() = %q, want config default", got)
	}
}

func TestGetBrowserRefresh(t *testing.T) {
	orig := browserRefreshFlag
	defer func() { browserRefreshFlag = orig }()

	tests := []struct {
		name    string
		flag    string
		enabled bool
	}{
		{"disabled when empty", "", false},
		{"valid browser", "chrome", true},
		{"auto detection", "auto", true},
		{"invalid browser disables", "netscape", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browserRefreshFlag = tt.flag
			_, enabled := getBrowserRefresh()
			if enabled != tt.enabled {
				t.Errorf("getBrowserRefresh() enabled = %v, want %v", enabled, tt.enabled)
			}
		})
	}
}

func TestResolvePromptFromFile(t *testing.T) {
	origFile := fileFlag
	defer func() { fileFlag = origFile }()

	path := filepath.Join(t.TempDir(), "prompt.md")
	if err := os.WriteFile(path, []byte("file prompt"), 0o644); err != nil {
		t.Fatal(err)
	}

	fileFlag = path
	prompt, ok, err := resolvePrompt(nil)
	if err != nil {
		t.Fatalf("resolvePrompt() error = %v", err)
	}
	if !ok || prompt != "file prompt" {
		t.Errorf("resolvePrompt() = %q, %v", prompt, ok)
	}
}

func TestResolvePromptMissingFile(t *testing.T) {
	origFile := fileFlag
	defer func() { fileFlag = origFile }()

	fileFlag = filepath.Join(t.TempDir(), "missing.md")
	if _, _, err := resolvePrompt(nil); err == nil {
		t.Error("expected error for missing prompt file")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	want := []string{"chat", "config", "import-cookies", "auto-login", "history", "speech"}

	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
