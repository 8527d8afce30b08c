package internal

import "strings"

// titleMarkers are the literal substrings scanned for when JSON parsing of
// a preview fails (truncated blobs). Variants with a space after the colon
// are included since pretty-printed payloads exist in the wild.
var titleMarkers = []string{
	`"chatTitle":"`, `"chatTitle": "`,
	`"name":"`, `"name": "`,
	`"title":"`, `"title": "`,
}

// ExtractTitleFromText scans raw text for the first known title-bearing
// substring and extracts its value, honoring backslash-escaped quotes.
// Titles longer than 200 characters are treated as not-a-title.
func ExtractTitleFromText(text string) string {
	for _, marker := range titleMarkers {
		start := strings.Index(text, marker)
		if start < 0 {
			continue
		}
		rest := text[start+len(marker):]
		end := 0
		for end < len(rest) {
			if rest[end] == '\\' {
				end += 2
				continue
			}
			if rest[end] == '"' {
				break
			}
			end++
		}
		if end > 0 && end < 200 && end <= len(rest) {
			return rest[:end]
		}
	}
	return ""
}

// CountMessagesFromText approximates a message count by counting role-like
// substrings. Intentionally inexact: an exact count would need the full
// parse the size gating exists to avoid.
func CountMessagesFromText(text string) int {
	roles := strings.Count(text, `"role"`)
	users := strings.Count(text, `"type":"user"`)
	if users > roles {
		return users
	}
	return roles
}

// CleanKeyTitle turns a raw store key into a readable fallback title.
func CleanKeyTitle(key string) string {
	cleaned := strings.TrimPrefix(key, "memento/")
	cleaned = strings.ReplaceAll(cleaned, "icube-ai-agent-storage", "Trae AI Sessions")
	cleaned = strings.ReplaceAll(cleaned, "interactive-session-view-copilot", "Copilot Edits")
	cleaned = strings.ReplaceAll(cleaned, "interactive-session", "Copilot Chat")
	if id, ok := strings.CutPrefix(cleaned, "composerData:"); ok {
		if len(id) > 8 {
			id = id[:8]
		}
		return "Composer " + id
	}
	return cleaned
}
