package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/filerelay/internal/paths"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration without starting the service",
		Long: `Load and validate the configuration, resolve any special-folder tokens
in the configured paths, and report the resulting folders.

Examples:
  filerelay validate
  filerelay validate --config relay.yaml`,
		Args: cobra.NoArgs,
		RunE: validateCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .filerelay/config.yaml)")

	return cmd
}

// validateCommand implements the validate command logic
func validateCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	resolver := paths.NewResolver()
	out := cmd.OutOrStdout()

	folders := []struct {
		role string
		path string
	}{
		{"watch", cfg.WatchFolder},
		{"processing", cfg.ProcessingFolder},
		{"error", cfg.ErrorFolder},
	}

	fmt.Fprintln(out, "Configuration OK")
	for _, f := range folders {
		resolved, err := resolver.Resolve(f.path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s folder %q: %w", f.role, f.path, err)
		}
		fmt.Fprintf(out, "  %-10s %s\n", f.role+":", resolved)
	}
	fmt.Fprintf(out, "  %-10s %s\n", "pattern:", cfg.FilePattern)
	fmt.Fprintf(out, "  %-10s %s\n", "interval:", cfg.ScanInterval)

	return nil
}
