// Package config loads run settings for propforge. Settings come from a
// single YAML file resolved once at startup; nothing mutates them after
// loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/propforge/propforge/pkg/runner"
	"gopkg.in/yaml.v3"
)

// SettingsFileName is the name of the settings file inside the config
// directory.
const SettingsFileName = "propforge.yaml"

// Settings are the recognized run defaults.
type Settings struct {
	// MaxExamples caps generate-phase invocations per property.
	MaxExamples int `yaml:"max_examples"`

	// Seed fixes the randomness sequence; zero means clock-derived.
	Seed uint64 `yaml:"seed,omitempty"`

	// Derandomize forces seed zero for fully repeatable suites.
	Derandomize bool `yaml:"derandomize,omitempty"`

	// MaxShrinkIterations bounds shrink-phase invocations.
	MaxShrinkIterations int `yaml:"max_shrink_iterations"`

	// Database is the path of the failure database. Empty means the
	// default location inside the config directory.
	Database string `yaml:"database,omitempty"`

	// Color controls CLI styling: "auto", "always" or "never".
	Color string `yaml:"color,omitempty"`
}

// DefaultSettings mirrors runner.DefaultConfig.
func DefaultSettings() Settings {
	cfg := runner.DefaultConfig()
	return Settings{
		MaxExamples:         cfg.MaxExamples,
		MaxShrinkIterations: cfg.MaxShrinkIterations,
		Color:               "auto",
	}
}

// RunnerConfig converts the settings into a runner configuration. The
// failure store is attached separately by the caller since opening it
// may fail.
func (s Settings) RunnerConfig() runner.Config {
	cfg := runner.DefaultConfig()
	if s.MaxExamples > 0 {
		cfg.MaxExamples = s.MaxExamples
	}
	if s.MaxShrinkIterations > 0 {
		cfg.MaxShrinkIterations = s.MaxShrinkIterations
	}
	cfg.Seed = s.Seed
	cfg.Derandomize = s.Derandomize
	return cfg
}

// Manager resolves and loads the settings file.
type Manager struct {
	dir      string
	settings Settings
}

// Option customizes a Manager.
type Option func(*Manager)

// WithConfigDir overrides the directory the settings file is read from.
func WithConfigDir(dir string) Option {
	return func(m *Manager) {
		m.dir = dir
	}
}

// NewManager creates a manager and loads settings. A missing settings
// file is not an error; defaults apply.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(m)
	}

	if m.dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		m.dir = filepath.Join(base, "propforge")
	}

	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Settings returns the resolved settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

// Dir returns the config directory in use.
func (m *Manager) Dir() string {
	return m.dir
}

// DatabasePath resolves the failure database location: the configured
// path if set, otherwise failures.db inside the config directory.
func (m *Manager) DatabasePath() string {
	if m.settings.Database != "" {
		return m.settings.Database
	}
	return filepath.Join(m.dir, "failures.db")
}

// Save writes the current settings back to the settings file, creating
// the config directory if needed.
func (m *Manager) Save() error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	path := filepath.Join(m.dir, SettingsFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// SetSettings replaces the settings held by the manager. Intended for
// the CLI before a Save; the runner always receives an explicit copy.
func (m *Manager) SetSettings(s Settings) {
	m.settings = s
}

func (m *Manager) load() error {
	path := filepath.Join(m.dir, SettingsFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := settings.validate(); err != nil {
		return fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	m.settings = settings
	return nil
}

func (s Settings) validate() error {
	if s.MaxExamples < 0 {
		return fmt.Errorf("max_examples must not be negative, got %d", s.MaxExamples)
	}
	if s.MaxShrinkIterations < 0 {
		return fmt.Errorf("max_shrink_iterations must not be negative, got %d", s.MaxShrinkIterations)
	}
	switch s.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", s.Color)
	}
	return nil
}
