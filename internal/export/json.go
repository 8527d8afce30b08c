package export

import (
	"encoding/json"
	"io"

	"github.com/lowkeylabs/chatsweep/internal"
)

// JSONExporter exports transcripts in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a transcript to JSON format
func (e *JSONExporter) Export(content *internal.ConversationContent, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(content)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
