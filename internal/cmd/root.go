package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for filerelay
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filerelay",
		Short: "Folder-monitoring relay service",
		Long: `Filerelay watches a folder for files matching a pattern, classifies
each file by its name, and relocates it into a processing or error folder.

It runs as a long-lived background process: folders are re-provisioned and
scanned on a fixed interval, files still being written are skipped until the
writer releases them, and name collisions in the destination are resolved
with a versioned rename.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
