package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lowkeylabs/chatsweep/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(content *internal.ConversationContent, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", content.Title)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(content.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range content.Messages {
		body := escapeMarkdown(msg.Content)
		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", msg.Role, body)

		if i < len(content.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
