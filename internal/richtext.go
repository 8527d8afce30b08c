package internal

import (
	"encoding/json"
	"strings"
)

// ExtractRichText pulls plain text out of the editor's rich text-node
// document model: {"root":{"children":[{"children":[{"text":"…"},…]},…]}}.
// Text leaves are joined by newline. Returns "" for anything unparseable;
// this is one extractor behind the same plain-text capability the message
// extraction uses, not inline recursion in the reconstructor.
func ExtractRichText(richJSON string) string {
	if richJSON == "" {
		return ""
	}

	var doc struct {
		Root struct {
			Children []struct {
				Children []struct {
					Text string `json:"text"`
				} `json:"children"`
			} `json:"children"`
		} `json:"root"`
	}
	if err := json.Unmarshal([]byte(richJSON), &doc); err != nil {
		return ""
	}

	var parts []string
	for _, child := range doc.Root.Children {
		for _, leaf := range child.Children {
			if leaf.Text != "" {
				parts = append(parts, leaf.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
