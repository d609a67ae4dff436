package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/filerelay/internal/config"
	"github.com/harrison/filerelay/internal/journal"
	"github.com/harrison/filerelay/internal/logger"
	"github.com/harrison/filerelay/internal/watcher"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the folder-monitoring service",
		Long: `Start the relay service and scan the watch folder on the configured
interval until interrupted.

Configuration is loaded from .filerelay/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  filerelay run                          # Run with .filerelay/config.yaml
  filerelay run --config relay.yaml      # Use a custom config file
  filerelay run --once                   # Run a single scan cycle and exit
  filerelay run --verbose                # Show per-file classification detail
  filerelay run --log-dir /var/log/relay # Use custom log directory`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .filerelay/config.yaml)")
	cmd.Flags().Bool("once", false, "Run a single scan cycle and exit")
	cmd.Flags().Bool("verbose", false, "Show detailed per-file information")
	cmd.Flags().String("watch-folder", "", "Directory to poll for input files")
	cmd.Flags().String("processing-folder", "", "Destination for normal files")
	cmd.Flags().String("error-folder", "", "Destination for malformed files")
	cmd.Flags().String("pattern", "", "Glob applied when scanning the watch folder")
	cmd.Flags().Duration("interval", 0, "Time between scan cycles (e.g., 30s, 5m)")
	cmd.Flags().String("log-dir", "", "Directory for log files")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	// Flags set on the command line override config file values.
	var watchFolder, processingFolder, errorFolder, pattern, logDir *string
	var interval *time.Duration
	if cmd.Flags().Changed("watch-folder") {
		v, _ := cmd.Flags().GetString("watch-folder")
		watchFolder = &v
	}
	if cmd.Flags().Changed("processing-folder") {
		v, _ := cmd.Flags().GetString("processing-folder")
		processingFolder = &v
	}
	if cmd.Flags().Changed("error-folder") {
		v, _ := cmd.Flags().GetString("error-folder")
		errorFolder = &v
	}
	if cmd.Flags().Changed("pattern") {
		v, _ := cmd.Flags().GetString("pattern")
		pattern = &v
	}
	if cmd.Flags().Changed("interval") {
		v, _ := cmd.Flags().GetDuration("interval")
		interval = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDir = &v
	}
	cfg.MergeWithFlags(watchFolder, processingFolder, errorFolder, pattern, interval, logDir)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.Logger(logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel))
	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Warnf("file logging disabled: %v", err)
	} else {
		defer fileLog.Close()
		log = logger.Tee{log, fileLog}
	}

	recorder := journal.Recorder(journal.Discard())
	if cfg.Journal.Enabled {
		store, err := journal.NewStore(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open transfer journal: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	processor := watcher.New(func() *config.Config { return cfg }, log, watcher.WithJournal(recorder))

	if once, _ := cmd.Flags().GetBool("once"); once {
		processor.RunCycle()
		return nil
	}

	if err := processor.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Infof("received %s, shutting down", sig)

	processor.Stop()
	return nil
}

// loadConfigFromFlags loads configuration from the --config flag path or
// the default .filerelay/config.yaml in the working directory.
func loadConfigFromFlags(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
