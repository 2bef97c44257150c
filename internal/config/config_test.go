package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`
[platform]
color = false

[face]
demo = true
demo_text = "88:88"

[connectivity]
poll_interval = "30s"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Platform.Color {
		t.Error("expected color off")
	}
	if !cfg.Platform.Health {
		t.Error("expected health default kept")
	}
	if !cfg.Face.Demo || cfg.Face.DemoText != "88:88" {
		t.Errorf("unexpected face config %+v", cfg.Face)
	}
	if cfg.Connectivity.PollInterval.Duration != 30*time.Second {
		t.Errorf("expected 30s poll, got %s", cfg.Connectivity.PollInterval)
	}
	if cfg.Feedback.Frequency != 175 {
		t.Errorf("expected default frequency, got %d", cfg.Feedback.Frequency)
	}
}

func TestLoadFromReaderRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "[face]\nsparkles = true\n",
		"bad duration":      "[connectivity]\npoll_interval = \"soon\"\n",
		"negative duration": "[connectivity]\npoll_interval = \"-1s\"\n",
		"bad syntax":        "[face\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFromReader(strings.NewReader(input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != DefaultConfig().Log.Level {
		t.Fatal("expected defaults for a missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickface.toml")
	if err := os.WriteFile(path, []byte("[feedback]\naudio = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TICKFACE_AUDIO", "false")
	t.Setenv("TICKFACE_TIME_FORMAT", "12h")
	t.Setenv("TICKFACE_FREQUENCY", "220")
	t.Setenv("TICKFACE_POLL_INTERVAL", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Feedback.Audio {
		t.Error("env should override file")
	}
	if cfg.Settings.TimeFormat != "12h" {
		t.Errorf("expected 12h, got %s", cfg.Settings.TimeFormat)
	}
	if cfg.Feedback.Frequency != 220 {
		t.Errorf("expected 220, got %d", cfg.Feedback.Frequency)
	}
	if cfg.Connectivity.PollInterval.Duration != 2*time.Second {
		t.Errorf("expected 2s, got %s", cfg.Connectivity.PollInterval)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("TICKFACE_STRICT", "maybe")
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatal("expected error for invalid bool")
	}
}
