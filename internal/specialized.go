package internal

import (
	"encoding/json"
	"strings"
)

// ExtractFromPreview turns one previewed key entry into a record, trying
// key-specific shapes first, then a generic parse of the preview, then the
// text fallback for truncated JSON.
func ExtractFromPreview(entry KeyEntry, dbPath string, modified int64) (ConversationRecord, bool) {
	if strings.HasPrefix(entry.Key, "memento/interactive-session") {
		return extractSessionHistory(entry, dbPath, modified)
	}
	if strings.HasPrefix(entry.Key, "jetskiStateSync.") || strings.HasPrefix(entry.Key, "antigravityUnifiedStateSync.") {
		return extractBinaryRecord(entry, dbPath, modified)
	}

	// Small values fit inside the preview; a full JSON parse just works.
	if recs := ParseChatValue(entry.Preview, dbPath, entry.Key, modified); len(recs) > 0 {
		return recs[0], true
	}

	// Truncated JSON: fall back to string scraping.
	title := ExtractTitleFromText(entry.Preview)
	msgCount := CountMessagesFromText(entry.Preview)

	if title == "" && entry.Size < minDiscoverySize {
		return ConversationRecord{}, false
	}
	if title == "" {
		title = CleanKeyTitle(entry.Key)
	}

	return ConversationRecord{
		ID:           recordID(dbPath, entry.Key, ""),
		Title:        title,
		SourceDB:     dbPath,
		SourceKey:    entry.Key,
		MessageCount: msgCount,
		SizeBytes:    entry.Size,
		LastModified: modified,
	}, true
}

// extractSessionHistory handles the VS Code memento/interactive-session*
// shape: {"history":{"copilot":[{"text":"…"},…]}}. The message count is the
// sum of array lengths across participants.
func extractSessionHistory(entry KeyEntry, dbPath string, modified int64) (ConversationRecord, bool) {
	var parsed struct {
		History map[string][]map[string]interface{} `json:"history"`
	}
	if err := json.Unmarshal([]byte(entry.Preview), &parsed); err != nil {
		return ConversationRecord{}, false
	}

	total := 0
	firstText := ""
	for _, turns := range parsed.History {
		total += len(turns)
		if firstText == "" && len(turns) > 0 {
			if t, ok := turns[0]["text"].(string); ok {
				firstText = truncateRunes(t, 80)
			}
		}
	}
	if total == 0 {
		return ConversationRecord{}, false
	}

	label := "Copilot Chat"
	if strings.Contains(entry.Key, "view-copilot") {
		label = "Copilot Edits"
	}
	title := label
	if firstText != "" {
		title = label + ": " + firstText
	}

	return ConversationRecord{
		ID:           recordID(dbPath, entry.Key, ""),
		Title:        title,
		SourceDB:     dbPath,
		SourceKey:    entry.Key,
		MessageCount: total,
		SizeBytes:    entry.Size,
		LastModified: modified,
	}, true
}

// extractBinaryRecord handles raw protobuf values by scraping printable
// runs for a title. The message count is unknown and reported as 0.
func extractBinaryRecord(entry KeyEntry, dbPath string, modified int64) (ConversationRecord, bool) {
	runs := ExtractReadableStrings([]byte(entry.Preview), 10)
	if len(runs) == 0 {
		return ConversationRecord{}, false
	}

	title := ""
	for _, run := range runs {
		if titleCandidate(run) {
			title = run
			break
		}
	}
	if title == "" {
		title = "Antigravity Session"
	}

	return ConversationRecord{
		ID:           recordID(dbPath, entry.Key, ""),
		Title:        title,
		SourceDB:     dbPath,
		SourceKey:    entry.Key,
		MessageCount: 0,
		SizeBytes:    entry.Size,
		LastModified: modified,
	}, true
}

// ParseComposerRecord parses one flat-table composerData:{id} entry.
// createdAt (milliseconds) is preferred over the file's modified time.
func ParseComposerRecord(jsonStr, dbPath, key string, modified int64) (ConversationRecord, bool) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return ConversationRecord{}, false
	}

	composerID, _ := parsed["composerId"].(string)
	title := firstStringField(parsed, []string{"name", "subtitle"})
	msgCount := 0
	if headers, ok := parsed["fullConversationHeadersOnly"].([]interface{}); ok {
		msgCount = len(headers)
	}

	if title == "" && msgCount == 0 {
		return ConversationRecord{}, false
	}
	if title == "" {
		title = composerID
	}

	lastModified := modified
	if ms, ok := parsed["createdAt"].(float64); ok && ms != 0 {
		lastModified = int64(ms) / 1000
	}

	itemID := composerID
	if itemID == "" {
		itemID = key
	}

	return ConversationRecord{
		ID:           recordID(dbPath, key, itemID),
		Title:        title,
		SourceDB:     dbPath,
		SourceKey:    key,
		MessageCount: msgCount,
		SizeBytes:    int64(len(jsonStr)),
		LastModified: lastModified,
	}, true
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
