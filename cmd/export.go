package cmd

import (
	"fmt"
	"os"

	"github.com/lowkeylabs/chatsweep/internal"
	"github.com/lowkeylabs/chatsweep/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <database> <key> [conversation-id]",
	Short: "Export a reconstructed transcript to a file or stdout",
	Long: `Reconstruct one conversation and write it in the chosen format
(json, jsonl, yaml, md). Writes to stdout unless --output is given.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversationID := ""
		if len(args) == 3 {
			conversationID = args[2]
		}

		content, err := internal.GetConversationContent(internal.DefaultRuleset(), args[0], args[1], conversationID)
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := exporter.Export(content, out); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportOutput != "" {
			internal.LogInfo("Exported %q to %s", content.Title, exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, jsonl, yaml, md")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
