package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lowkeylabs/chatsweep/internal"
	"github.com/spf13/cobra"
)

var (
	listGlobalStorage string
	listWorkspaces    string

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list <editor-id>",
	Short: "Scan one editor for AI chat conversations",
	Long: `Scan an editor's state databases for AI chat conversations and list
them with title, message count, size and age. Use 'chatsweep editors' to
see available editor ids.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		editor, err := resolveEditor(args)
		if err != nil {
			return err
		}

		result := internal.Scan(editor, internal.DefaultRuleset())
		displayScanResult(result)
		return nil
	},
}

// resolveEditor picks the editor descriptor from the positional id, or
// builds a synthetic one from the storage override flags.
func resolveEditor(args []string) (internal.EditorInfo, error) {
	if listGlobalStorage != "" || listWorkspaces != "" {
		return internal.EditorInfo{
			Name:                 "custom",
			ID:                   "custom",
			Installed:            true,
			GlobalStoragePath:    listGlobalStorage,
			WorkspaceStoragePath: listWorkspaces,
		}, nil
	}
	if len(args) == 0 {
		return internal.EditorInfo{}, fmt.Errorf("editor id required (see 'chatsweep editors')")
	}
	editor, ok := internal.FindEditor(args[0])
	if !ok {
		return internal.EditorInfo{}, fmt.Errorf("editor %q not detected", args[0])
	}
	return editor, nil
}

func displayScanResult(result internal.ScanResult) {
	if len(result.Conversations) == 0 {
		fmt.Println(headerStyle.Render("No conversations found"))
		fmt.Printf("Backing stores: %d file(s), %s total\n", len(result.DbFiles), formatBytes(result.TotalSize))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d conversation(s) — %s across %d store file(s)",
		len(result.Conversations), formatBytes(result.TotalSize), len(result.DbFiles))))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, conv := range result.Conversations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			titleStyle.Render(truncate(conv.Title, 48)),
			countStyle.Render(fmt.Sprintf("%d msgs", conv.MessageCount)),
			formatBytes(conv.SizeBytes),
			dateStyle.Render(formatAge(conv.LastModified)),
		)
		fmt.Fprintf(w, "  %s\n", idStyle.Render(conv.ID))
	}
	w.Flush()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func formatAge(epoch int64) string {
	if epoch == 0 {
		return "unknown"
	}
	age := time.Since(time.Unix(epoch, 0))
	switch {
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

func init() {
	listCmd.Flags().StringVar(&listGlobalStorage, "global-storage", "", "Scan a specific globalStorage directory instead of a detected editor")
	listCmd.Flags().StringVar(&listWorkspaces, "workspace-storage", "", "Scan a specific workspaceStorage directory instead of a detected editor")
	rootCmd.AddCommand(listCmd)
}
