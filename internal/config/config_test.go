package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apierrors "github.com/diogo/spielberg/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != "gemini-2.0-flash" {
		t.Errorf("Expected default model to be 'gemini-2.0-flash', got '%s'", cfg.DefaultModel)
	}
	if cfg.TUITheme != "premiere" {
		t.Errorf("Expected TUITheme 'premiere', got '%s'", cfg.TUITheme)
	}
	if cfg.BannerPath != DefaultBannerPath {
		t.Errorf("Expected BannerPath %s, got %s", DefaultBannerPath, cfg.BannerPath)
	}
	if cfg.Verbose {
		t.Errorf("Expected Verbose to be false, got %v", cfg.Verbose)
	}
	if cfg.Markdown.Style != "premiere" {
		t.Errorf("Expected markdown style 'premiere', got '%s'", cfg.Markdown.Style)
	}
}

func TestConfig_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"explicit", 30, 30 * time.Second},
		{"zero falls back", 0, 120 * time.Second},
		{"negative falls back", -5, 120 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{RequestTimeout: tt.seconds}
			if got := cfg.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	want := filepath.Join(tmpDir, ".spielberg", "config.json")
	if path != want {
		t.Errorf("GetConfigPath() = %s, want %s", path, want)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg := DefaultConfig()
	cfg.DefaultModel = "gemini-2.5-pro"
	cfg.TUITheme = "nord"
	cfg.BannerWidth = 60

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmpDir, ".spielberg", "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %o, want 600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.DefaultModel != "gemini-2.5-pro" || loaded.TUITheme != "nord" || loaded.BannerWidth != 60 {
		t.Errorf("loaded config mismatch: %+v", loaded)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	dir := filepath.Join(tmpDir, ".spielberg")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(map[string]any{"tui_theme": "dracula"})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.TUITheme != "dracula" {
		t.Errorf("TUITheme = %s, want dracula", cfg.TUITheme)
	}
	if cfg.DefaultModel != "gemini-2.0-flash" {
		t.Errorf("DefaultModel should keep default, got %s", cfg.DefaultModel)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	dir := filepath.Join(tmpDir, ".spielberg")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.TUITheme != "premiere" {
		t.Errorf("invalid config should return defaults, got %+v", cfg)
	}
}

func TestLookupAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"set", "abc123", "abc123", false},
		{"trimmed", "  abc123\n", "abc123", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(APIKeyEnv, tt.value)

			got, err := LookupAPIKey()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LookupAPIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LookupAPIKey() = %q, want %q", got, tt.want)
			}
			if tt.wantErr && !apierrors.IsConfigError(err) {
				t.Errorf("expected ConfigError, got %T", err)
			}
		})
	}
}

func TestDefaultPersona(t *testing.T) {
	p := DefaultPersona()

	if p.Name != "Spielberg IA" {
		t.Errorf("Name = %s", p.Name)
	}
	if p.SystemPrompt == "" || p.Greeting == "" {
		t.Fatal("persona prompt and greeting must be set")
	}
	if strings.HasPrefix(p.SystemPrompt, " ") || strings.Contains(p.SystemPrompt, "\n        ") {
		t.Error("SystemPrompt should be dedented")
	}
	if !strings.Contains(p.MissingKeyText, APIKeyEnv) {
		t.Errorf("MissingKeyText should name %s: %s", APIKeyEnv, p.MissingKeyText)
	}
	if p.SystemName == p.Name {
		t.Error("system messages need a distinct sender name")
	}
}
