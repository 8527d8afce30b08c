package cmd

import (
	"fmt"
	"os"

	"github.com/lowkeylabs/chatsweep/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatsweep",
	Short: "Discover, inspect and delete AI chat data in editor stores",
	Long: `chatsweep finds AI-assistant conversations inside the embedded state
databases that VS Code forks (Cursor, Windsurf, Copilot-enabled VS Code,
Trae, Kiro, and friends) use for persistence, reconstructs readable
transcripts from them, and deletes them with space reclamation.

Quick Start:
  chatsweep editors                  # List detected editors
  chatsweep list cursor              # Scan one editor for conversations
  chatsweep show <db> <key>          # View a reconstructed transcript
  chatsweep delete <db> <key>        # Delete a conversation`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
