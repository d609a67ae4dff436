package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "*.pdf", cfg.FilePattern)
	assert.Equal(t, time.Minute, cfg.ScanInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Journal.Enabled)
	assert.NotEmpty(t, cfg.Journal.DBPath)
	assert.Empty(t, cfg.WatchFolder)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFullFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
watch_folder: "{Desktop}/inbox"
processing_folder: /var/spool/processing
error_folder: /var/spool/error
file_pattern: "*.xml"
scan_interval: 30s
log_level: debug
log_dir: /var/log/filerelay
journal:
  enabled: false
  db_path: /var/lib/filerelay/journal.db
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "{Desktop}/inbox", cfg.WatchFolder)
	assert.Equal(t, "/var/spool/processing", cfg.ProcessingFolder)
	assert.Equal(t, "/var/spool/error", cfg.ErrorFolder)
	assert.Equal(t, "*.xml", cfg.FilePattern)
	assert.Equal(t, 30*time.Second, cfg.ScanInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/log/filerelay", cfg.LogDir)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "/var/lib/filerelay/journal.db", cfg.Journal.DBPath)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
watch_folder: /in
processing_folder: /proc
error_folder: /err
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "*.pdf", cfg.FilePattern)
	assert.Equal(t, time.Minute, cfg.ScanInterval)
	assert.True(t, cfg.Journal.Enabled, "journal defaults should survive a config without a journal section")
}

func TestLoadConfigJournalDisabledOnly(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
watch_folder: /in
processing_folder: /proc
error_folder: /err
journal:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, DefaultConfig().Journal.DBPath, cfg.Journal.DBPath)
}

func TestLoadConfigInvalidInterval(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "scan_interval: soon\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scan_interval")
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "watch_folder: [unclosed\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".filerelay"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".filerelay", "config.yaml"),
		[]byte("watch_folder: /in\n"), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "/in", cfg.WatchFolder)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WatchFolder = "/from-config"

	watch := "/from-flag"
	interval := 5 * time.Second
	cfg.MergeWithFlags(&watch, nil, nil, nil, &interval, nil)

	assert.Equal(t, "/from-flag", cfg.WatchFolder)
	assert.Equal(t, 5*time.Second, cfg.ScanInterval)
	assert.Equal(t, "*.pdf", cfg.FilePattern, "nil flags should not override config")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.WatchFolder = "/in"
		cfg.ProcessingFolder = "/proc"
		cfg.ErrorFolder = "/err"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing watch folder", func(c *Config) { c.WatchFolder = "" }, "watch_folder"},
		{"missing processing folder", func(c *Config) { c.ProcessingFolder = "" }, "processing_folder"},
		{"missing error folder", func(c *Config) { c.ErrorFolder = "" }, "error_folder"},
		{"empty pattern", func(c *Config) { c.FilePattern = "" }, "file_pattern"},
		{"zero interval", func(c *Config) { c.ScanInterval = 0 }, "scan_interval"},
		{"negative interval", func(c *Config) { c.ScanInterval = -time.Second }, "scan_interval"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"journal enabled without path", func(c *Config) { c.Journal.DBPath = "" }, "journal.db_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
