package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// JournalConfig configures the SQLite transfer journal.
type JournalConfig struct {
	// Enabled turns transfer journaling on
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the journal database
	DBPath string `yaml:"db_path"`
}

// Config represents filerelay configuration options.
// Folder paths may contain special-folder tokens (e.g. {Desktop}) that are
// resolved at scan time, so external changes take effect without a restart.
type Config struct {
	// WatchFolder is the directory polled for new input files
	WatchFolder string `yaml:"watch_folder"`

	// ProcessingFolder is the destination for normal files
	ProcessingFolder string `yaml:"processing_folder"`

	// ErrorFolder is the destination for malformed files
	ErrorFolder string `yaml:"error_folder"`

	// FilePattern is the glob applied when scanning the watch folder
	FilePattern string `yaml:"file_pattern"`

	// ScanInterval is the time between scan cycles
	ScanInterval time.Duration `yaml:"scan_interval"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where log files are written
	LogDir string `yaml:"log_dir"`

	// Journal contains transfer journal configuration
	Journal JournalConfig `yaml:"journal"`
}

// DefaultConfig returns a Config with sensible default values.
// The three folder paths have no defaults; they must be configured.
func DefaultConfig() *Config {
	return &Config{
		FilePattern:  "*.pdf",
		ScanInterval: time.Minute,
		LogLevel:     "info",
		LogDir:       filepath.Join(".filerelay", "logs"),
		Journal: JournalConfig{
			Enabled: true,
			DBPath:  filepath.Join(".filerelay", "journal.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are written as strings in YAML ("1m", "30s"), so unmarshal
	// through an intermediate struct before merging onto the defaults.
	type yamlConfig struct {
		WatchFolder      string        `yaml:"watch_folder"`
		ProcessingFolder string        `yaml:"processing_folder"`
		ErrorFolder      string        `yaml:"error_folder"`
		FilePattern      string        `yaml:"file_pattern"`
		ScanInterval     string        `yaml:"scan_interval"`
		LogLevel         string        `yaml:"log_level"`
		LogDir           string        `yaml:"log_dir"`
		Journal          JournalConfig `yaml:"journal"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.WatchFolder = yamlCfg.WatchFolder
	cfg.ProcessingFolder = yamlCfg.ProcessingFolder
	cfg.ErrorFolder = yamlCfg.ErrorFolder
	if yamlCfg.FilePattern != "" {
		cfg.FilePattern = yamlCfg.FilePattern
	}
	if yamlCfg.ScanInterval != "" {
		interval, err := time.ParseDuration(yamlCfg.ScanInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid scan_interval format %q: %w", yamlCfg.ScanInterval, err)
		}
		cfg.ScanInterval = interval
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}

	// The journal section only overrides defaults when present in the file,
	// so a config without it keeps journaling enabled.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if journalSection, exists := rawMap["journal"]; exists && journalSection != nil {
			journalMap, _ := journalSection.(map[string]interface{})

			if _, exists := journalMap["enabled"]; exists {
				cfg.Journal.Enabled = yamlCfg.Journal.Enabled
			}
			if _, exists := journalMap["db_path"]; exists {
				cfg.Journal.DBPath = yamlCfg.Journal.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .filerelay/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".filerelay", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values, letting flags take
// precedence over config file settings.
func (c *Config) MergeWithFlags(watchFolder, processingFolder, errorFolder, filePattern *string, scanInterval *time.Duration, logDir *string) {
	if watchFolder != nil {
		c.WatchFolder = *watchFolder
	}
	if processingFolder != nil {
		c.ProcessingFolder = *processingFolder
	}
	if errorFolder != nil {
		c.ErrorFolder = *errorFolder
	}
	if filePattern != nil {
		c.FilePattern = *filePattern
	}
	if scanInterval != nil {
		c.ScanInterval = *scanInterval
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.WatchFolder == "" {
		return fmt.Errorf("watch_folder is required")
	}
	if c.ProcessingFolder == "" {
		return fmt.Errorf("processing_folder is required")
	}
	if c.ErrorFolder == "" {
		return fmt.Errorf("error_folder is required")
	}
	if c.FilePattern == "" {
		return fmt.Errorf("file_pattern cannot be empty")
	}
	if c.ScanInterval <= 0 {
		return fmt.Errorf("scan_interval must be > 0, got %v", c.ScanInterval)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path cannot be empty when journal is enabled")
	}

	return nil
}
