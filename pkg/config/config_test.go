package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/propforge/propforge/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewManagerDefaultsWhenFileMissing(t *testing.T) {
	m, err := config.NewManager(config.WithConfigDir(t.TempDir()))
	require.NoError(t, err)

	s := m.Settings()
	assert.Equal(t, 100, s.MaxExamples)
	assert.Equal(t, 1000, s.MaxShrinkIterations)
	assert.Equal(t, "auto", s.Color)
	assert.Zero(t, s.Seed)
	assert.False(t, s.Derandomize)
}

func TestNewManagerLoadsSettingsFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, `
max_examples: 250
seed: 30
derandomize: true
max_shrink_iterations: 500
database: /tmp/other.db
color: never
`)

	m, err := config.NewManager(config.WithConfigDir(dir))
	require.NoError(t, err)

	s := m.Settings()
	assert.Equal(t, 250, s.MaxExamples)
	assert.Equal(t, uint64(30), s.Seed)
	assert.True(t, s.Derandomize)
	assert.Equal(t, 500, s.MaxShrinkIterations)
	assert.Equal(t, "/tmp/other.db", s.Database)
	assert.Equal(t, "never", s.Color)
}

func TestNewManagerPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "seed: 7\n")

	m, err := config.NewManager(config.WithConfigDir(dir))
	require.NoError(t, err)

	s := m.Settings()
	assert.Equal(t, uint64(7), s.Seed)
	assert.Equal(t, 100, s.MaxExamples, "unset fields keep their defaults")
	assert.Equal(t, 1000, s.MaxShrinkIterations)
}

func TestNewManagerRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative max_examples", "max_examples: -1\n"},
		{"negative max_shrink_iterations", "max_shrink_iterations: -5\n"},
		{"unknown color", "color: sometimes\n"},
		{"malformed yaml", "max_examples: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSettings(t, dir, tc.content)
			_, err := config.NewManager(config.WithConfigDir(dir))
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundtrip(t *testing.T) {
	dir := t.TempDir()
	m, err := config.NewManager(config.WithConfigDir(dir))
	require.NoError(t, err)

	s := m.Settings()
	s.MaxExamples = 42
	s.Seed = 9
	s.Color = "always"
	m.SetSettings(s)
	require.NoError(t, m.Save())

	reloaded, err := config.NewManager(config.WithConfigDir(dir))
	require.NoError(t, err)
	assert.Equal(t, s, reloaded.Settings())
}

func TestSaveCreatesConfigDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "propforge")
	m, err := config.NewManager(config.WithConfigDir(dir))
	require.NoError(t, err)

	require.NoError(t, m.Save())
	_, err = os.Stat(filepath.Join(dir, config.SettingsFileName))
	assert.NoError(t, err)
}

func TestRunnerConfigMapping(t *testing.T) {
	s := config.Settings{
		MaxExamples:         250,
		Seed:                30,
		Derandomize:         true,
		MaxShrinkIterations: 500,
	}
	cfg := s.RunnerConfig()
	assert.Equal(t, 250, cfg.MaxExamples)
	assert.Equal(t, uint64(30), cfg.Seed)
	assert.True(t, cfg.Derandomize)
	assert.Equal(t, 500, cfg.MaxShrinkIterations)
	assert.Nil(t, cfg.Store, "the store is attached by the caller")
}

func TestRunnerConfigZeroValuesFallBackToDefaults(t *testing.T) {
	cfg := config.Settings{}.RunnerConfig()
	assert.Equal(t, 100, cfg.MaxExamples)
	assert.Equal(t, 1000, cfg.MaxShrinkIterations)
}

func TestDatabasePath(t *testing.T) {
	dir := t.TempDir()
	m, err := config.NewManager(config.WithConfigDir(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "failures.db"), m.DatabasePath())

	s := m.Settings()
	s.Database = "/var/lib/propforge/failures.db"
	m.SetSettings(s)
	assert.Equal(t, "/var/lib/propforge/failures.db", m.DatabasePath())
}
