package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lowkeylabs/chatsweep/internal"
	"github.com/spf13/cobra"
)

var (
	editorNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	editorPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var editorsCmd = &cobra.Command{
	Use:   "editors",
	Short: "List detected editor installations",
	Long:  `Detect installed VS Code-fork editors and show their storage directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		editors := internal.DetectEditors()
		if len(editors) == 0 {
			fmt.Println(headerStyle.Render("No supported editors detected"))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d editor(s)", len(editors))))
		fmt.Println()
		for _, editor := range editors {
			fmt.Printf("%s %s\n", editorNameStyle.Render(editor.Name), idStyle.Render("("+editor.ID+")"))
			if editor.GlobalStoragePath != "" {
				fmt.Printf("  global:    %s\n", editorPathStyle.Render(editor.GlobalStoragePath))
			}
			if editor.WorkspaceStoragePath != "" {
				fmt.Printf("  workspace: %s\n", editorPathStyle.Render(editor.WorkspaceStoragePath))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editorsCmd)
}
