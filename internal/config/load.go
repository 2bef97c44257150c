package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "tickface.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TICKFACE_"

// Load reads path (DefaultPath when empty), then applies .env and
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader reads configuration from an io.Reader over the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// applyEnvOverrides checks TICKFACE_* variables and overrides config values.
func applyEnvOverrides(cfg *Config) error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FILE", &cfg.Log.File)
	str("DEMO_TEXT", &cfg.Face.DemoText)
	str("SETTINGS_FILE", &cfg.Settings.File)
	str("MESSAGE_PIPE", &cfg.Settings.MessagePipe)
	str("TIME_FORMAT", &cfg.Settings.TimeFormat)
	str("QUIET_START", &cfg.Feedback.QuietStart)
	str("QUIET_END", &cfg.Feedback.QuietEnd)
	str("INTERFACE", &cfg.Connectivity.Interface)

	for name, dst := range map[string]*bool{
		"COLOR":     &cfg.Platform.Color,
		"HEALTH":    &cfg.Platform.Health,
		"CLOCK_24H": &cfg.Platform.Clock24h,
		"STRICT":    &cfg.Platform.Strict,
		"DEMO":      &cfg.Face.Demo,
		"AUDIO":     &cfg.Feedback.Audio,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "FREQUENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sFREQUENCY: %w", EnvPrefix, err)
		}
		cfg.Feedback.Frequency = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "POLL_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sPOLL_INTERVAL: %w", EnvPrefix, err)
		}
		cfg.Connectivity.PollInterval = Duration{d}
	}
	return nil
}
