// Package settings owns the persisted user configuration: storage, change
// notification, and the inbound message channel from the companion app.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
	"github.com/hammamikhairi/tickface/internal/theme"
)

// Store persists one settings snapshot.
type Store interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}

// Compile-time interface checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)

// MemoryStore keeps settings in memory. Safe for concurrent access.
type MemoryStore struct {
	mu    sync.RWMutex
	saved *domain.Settings
	saves int
	log   *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Load returns the saved snapshot, or ErrNotFound if nothing was saved.
func (m *MemoryStore) Load(ctx context.Context) (domain.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.saved == nil {
		m.log.Debug("no settings in memory")
		return domain.Settings{}, domain.ErrNotFound
	}
	return *m.saved, nil
}

// Save overwrites the stored snapshot.
func (m *MemoryStore) Save(ctx context.Context, s domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saved = &s
	m.saves++
	m.log.Debug("saved settings to memory (saves=%d)", m.saves)
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// record is the on-disk YAML shape.
type record struct {
	HourlyVibe      bool   `yaml:"hourly_vibe"`
	ConnectionVibe  string `yaml:"connection_vibe"`
	HealthVibe      bool   `yaml:"health_vibe"`
	BackgroundColor string `yaml:"background_color"`
	Invert          bool   `yaml:"invert"`
	TimeFormat      string `yaml:"time_format"`
}

func toRecord(s domain.Settings) record {
	return record{
		HourlyVibe:      s.HourlyVibe,
		ConnectionVibe:  s.ConnectionVibe.String(),
		HealthVibe:      s.HealthVibe,
		BackgroundColor: theme.Hex(s.Background),
		Invert:          s.Invert,
		TimeFormat:      s.TimeFormat.String(),
	}
}

func (r record) settings() (domain.Settings, error) {
	s := domain.Settings{
		HourlyVibe: r.HourlyVibe,
		HealthVibe: r.HealthVibe,
		Invert:     r.Invert,
	}
	var ok bool
	if s.ConnectionVibe, ok = domain.VibeStateFromString(r.ConnectionVibe); !ok {
		return s, fmt.Errorf("connection_vibe %q: %w", r.ConnectionVibe, domain.ErrInvalidSetting)
	}
	if s.TimeFormat, ok = domain.TimeFormatFromString(r.TimeFormat); !ok {
		return s, fmt.Errorf("time_format %q: %w", r.TimeFormat, domain.ErrInvalidSetting)
	}
	bg, err := theme.ParseColor(r.BackgroundColor)
	if err != nil {
		return s, fmt.Errorf("background_color: %w", err)
	}
	s.Background = bg
	return s, nil
}

// FileStore persists settings as a YAML file.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore creates a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Load reads the file. A missing file is ErrNotFound.
func (f *FileStore) Load(ctx context.Context) (domain.Settings, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.log.Debug("settings file %s does not exist yet", f.path)
			return domain.Settings{}, domain.ErrNotFound
		}
		return domain.Settings{}, fmt.Errorf("settings: read %s: %w", f.path, err)
	}

	// Fields absent from the file keep their defaults.
	r := toRecord(domain.DefaultSettings())
	if err := yaml.Unmarshal(data, &r); err != nil {
		return domain.Settings{}, fmt.Errorf("settings: parse %s: %w", f.path, err)
	}
	s, err := r.settings()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("settings: %s: %w", f.path, err)
	}
	f.log.Debug("loaded settings from %s", f.path)
	return s, nil
}

// Save writes the file atomically via a temp file and rename.
func (f *FileStore) Save(ctx context.Context, s domain.Settings) error {
	data, err := yaml.Marshal(toRecord(s))
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: mkdir %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("settings: rename %s: %w", tmp, err)
	}
	f.log.Debug("saved settings to %s", f.path)
	return nil
}
