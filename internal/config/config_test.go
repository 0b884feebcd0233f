package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/diogo/helpchat/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServerURL != models.DefaultBaseURL {
		t.Errorf("default server URL = %q, want %q", cfg.ServerURL, models.DefaultBaseURL)
	}
	if cfg.Delivery != "stream" {
		t.Errorf("default delivery = %q, want stream", cfg.Delivery)
	}
	if cfg.RevealDelayMs <= 0 {
		t.Errorf("default reveal delay = %d, want positive", cfg.RevealDelayMs)
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("default markdown style = %q", cfg.Markdown.Style)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing config file should load defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	want := DefaultConfig()
	want.ServerURL = "http://helpdesk.internal:9000"
	want.Delivery = "events"
	want.RevealDelayMs = 5
	want.Verbose = true

	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig returned error: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got != want {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}

	// Config file must not be world readable
	path := filepath.Join(tmpHome, ".helpchat", "config.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}
}

func TestLoadConfig_CorruptFileFallsBack(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir := filepath.Join(tmpHome, ".helpchat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected error for corrupt config")
	}
	if cfg != DefaultConfig() {
		t.Errorf("corrupt config should fall back to defaults, got %+v", cfg)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir := filepath.Join(tmpHome, ".helpchat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	partial, _ := json.Marshal(map[string]string{"delivery": "query"})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), partial, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Delivery != "query" {
		t.Errorf("delivery = %q, want query", cfg.Delivery)
	}
	if cfg.ServerURL != DefaultConfig().ServerURL {
		t.Errorf("untouched field lost its default: %q", cfg.ServerURL)
	}
}

func TestAvailableDeliveries(t *testing.T) {
	got := AvailableDeliveries()
	if len(got) != 3 {
		t.Fatalf("AvailableDeliveries() = %v, want 3 modes", got)
	}
}
