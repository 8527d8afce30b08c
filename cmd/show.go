package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lowkeylabs/chatsweep/internal"
	"github.com/spf13/cobra"
)

var (
	roleStyles = map[string]lipgloss.Style{
		"user":      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		"assistant": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		"system":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("243")),
	}
	fallbackRoleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
)

var showCmd = &cobra.Command{
	Use:   "show <database> <key> [conversation-id]",
	Short: "Show one reconstructed conversation transcript",
	Long: `Reconstruct and print the transcript for one conversation. The
database path and key come from 'chatsweep list' output. For aggregate
keys holding many conversations, pass the conversation id as well.`,
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

		fmt.Println(headerStyle.Render(content.Title))
		fmt.Println()
		for _, msg := range content.Messages {
			style, ok := roleStyles[msg.Role]
			if !ok {
				style = fallbackRoleStyle
			}
			fmt.Printf("%s\n%s\n\n", style.Render(msg.Role+":"), msg.Content)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
