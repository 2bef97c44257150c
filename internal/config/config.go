// Package config provides TOML-based configuration for tickface.
package config

import (
	"fmt"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	Log          LogConfig          `toml:"log"`
	Platform     PlatformConfig     `toml:"platform"`
	Face         FaceConfig         `toml:"face"`
	Settings     SettingsConfig     `toml:"settings"`
	Feedback     FeedbackConfig     `toml:"feedback"`
	Connectivity ConnectivityConfig `toml:"connectivity"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `toml:"level"` // off, normal, verbose
	File  string `toml:"file"`  // "stderr" logs to the console
}

// PlatformConfig holds the capability flags.
type PlatformConfig struct {
	Color    bool `toml:"color"`
	Health   bool `toml:"health"`
	Clock24h bool `toml:"clock_24h"`
	Strict   bool `toml:"strict"` // contract violations panic
}

// FaceConfig controls what the face shows.
type FaceConfig struct {
	Demo     bool   `toml:"demo"`
	DemoText string `toml:"demo_text"`
}

// SettingsConfig locates persisted settings and the inbound message pipe.
type SettingsConfig struct {
	File        string `toml:"file"`
	MessagePipe string `toml:"message_pipe"` // FIFO or file of JSON lines; empty disables
	TimeFormat  string `toml:"time_format"`  // default for a fresh store
}

// FeedbackConfig controls the haptic stand-in.
type FeedbackConfig struct {
	Audio      bool   `toml:"audio"`
	Frequency  int    `toml:"frequency"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// ConnectivityConfig controls the link probe.
type ConnectivityConfig struct {
	Interface    string   `toml:"interface"` // empty means any
	PollInterval Duration `toml:"poll_interval"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "normal",
			File:  ".tickface-logs/tickface.log",
		},
		Platform: PlatformConfig{
			Color:    true,
			Health:   true,
			Clock24h: true,
		},
		Face: FaceConfig{
			DemoText: "12:34",
		},
		Settings: SettingsConfig{
			File:       ".tickface/settings.yaml",
			TimeFormat: "system",
		},
		Feedback: FeedbackConfig{
			Audio:      true,
			Frequency:  175,
			QuietStart: "22:00",
			QuietEnd:   "07:00",
		},
		Connectivity: ConnectivityConfig{
			PollInterval: Duration{5 * time.Second},
		},
	}
}

// Duration wraps time.Duration with TOML-friendly string parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
