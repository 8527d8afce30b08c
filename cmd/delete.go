package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lowkeylabs/chatsweep/internal"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <database> <key> [key...]",
	Short: "Delete conversations and reclaim their space",
	Long: `Delete one or more conversations from a backing store. The row (or,
for Windsurf cascade storage, the per-conversation file) is removed and
the store is compacted. Deletion is immediate and irreversible.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceDB := args[0]
		keys := args[1:]

		if !deleteYes && !confirmDelete(len(keys), sourceDB) {
			fmt.Println("Aborted.")
			return nil
		}

		if len(keys) == 1 {
			freed, err := internal.DeleteConversation(sourceDB, keys[0])
			if err != nil {
				return err
			}
			fmt.Printf("Deleted 1 conversation, freed %s\n", formatBytes(freed))
			return nil
		}

		items := make([]internal.DeleteRequest, 0, len(keys))
		for _, key := range keys {
			items = append(items, internal.DeleteRequest{SourceDB: sourceDB, SourceKey: key})
		}
		freed, err := internal.DeleteConversationsBatch(items)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted up to %d conversation(s), freed %s\n", len(keys), formatBytes(freed))
		return nil
	},
}

func confirmDelete(count int, sourceDB string) bool {
	fmt.Printf("Delete %d conversation(s) from %s? This cannot be undone. [y/N] ", count, sourceDB)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
