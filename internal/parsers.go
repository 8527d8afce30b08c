package internal

import (
	"encoding/json"
	"fmt"
)

// wrapperFields is the fixed ordered list of container field names tried by
// the generic parser and by aggregate-identity lookup.
var wrapperFields = []string{"conversations", "chats", "history", "data", "items", "threads", "sessions"}

// titleFields, messageArrayFields and idFields are the per-item extraction
// fallback orders.
var (
	titleFields        = []string{"chatTitle", "title", "name", "subject", "description"}
	messageArrayFields = []string{"bubbles", "messages", "conversation", "turns", "exchanges", "entries", "requests", "fullConversationHeadersOnly"}
	idFields           = []string{"id", "chatId", "composerId", "conversationId"}
)

// shapeMatcher extracts candidate conversation items from one parsed JSON
// value. Matchers are pure: they never touch the database. Supporting a new
// vendor layout means appending a matcher, not modifying existing ones.
type shapeMatcher func(parsed interface{}) []interface{}

// shapeMatchers is tried in order; the first matcher yielding at least one
// item wins.
var shapeMatchers = []shapeMatcher{
	matchFieldArray("tabs"),         // Cursor/Windsurf chat mode
	matchFieldArray("allComposers"), // Cursor composer data
	matchTopLevelArray,
	matchWrapperFields,
	matchSingleObject,
}

func matchFieldArray(field string) shapeMatcher {
	return func(parsed interface{}) []interface{} {
		obj, ok := parsed.(map[string]interface{})
		if !ok {
			return nil
		}
		arr, _ := obj[field].([]interface{})
		return arr
	}
}

func matchTopLevelArray(parsed interface{}) []interface{} {
	arr, _ := parsed.([]interface{})
	return arr
}

func matchWrapperFields(parsed interface{}) []interface{} {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil
	}
	for _, field := range wrapperFields {
		if arr, ok := obj[field].([]interface{}); ok && len(arr) > 0 {
			return arr
		}
	}
	return nil
}

func matchSingleObject(parsed interface{}) []interface{} {
	if _, ok := parsed.(map[string]interface{}); ok {
		return []interface{}{parsed}
	}
	return nil
}

// ParseChatValue parses an aggregate chat value in any of the known JSON
// shapes and returns one record per recognized conversation. Unparseable
// input yields nothing; scans never fail on malformed data.
func ParseChatValue(jsonStr, dbPath, key string, modified int64) []ConversationRecord {
	var parsed interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil
	}

	for _, matcher := range shapeMatchers {
		items := matcher(parsed)
		if len(items) == 0 {
			continue
		}
		var records []ConversationRecord
		for i, item := range items {
			if rec, ok := parseConversationItem(item, dbPath, key, i, modified); ok {
				records = append(records, rec)
			}
		}
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

// parseConversationItem turns one candidate item into a record, rejecting
// degenerate entries.
func parseConversationItem(item interface{}, dbPath, key string, idx int, modified int64) (ConversationRecord, bool) {
	obj, ok := item.(map[string]interface{})
	if !ok {
		return ConversationRecord{}, false
	}

	title := firstStringField(obj, titleFields)
	msgCount := firstArrayLen(obj, messageArrayFields)
	itemID := firstStringField(obj, idFields)

	var size int64
	if raw, err := json.Marshal(item); err == nil {
		size = int64(len(raw))
	}

	// Two rejection checks with one net effect: drop entries with no title
	// and no messages. The size sub-condition never relaxes the outcome.
	if size < 50 && title == "" && msgCount == 0 {
		return ConversationRecord{}, false
	}
	if msgCount == 0 && title == "" {
		return ConversationRecord{}, false
	}

	if itemID == "" {
		itemID = fmt.Sprintf("item_%d", idx)
	}
	if title == "" {
		title = fmt.Sprintf("Chat %d", idx+1)
	}

	return ConversationRecord{
		ID:           recordID(dbPath, key, itemID),
		Title:        title,
		SourceDB:     dbPath,
		SourceKey:    key,
		MessageCount: msgCount,
		SizeBytes:    size,
		LastModified: modified,
	}, true
}

func firstStringField(obj map[string]interface{}, fields []string) string {
	for _, f := range fields {
		if s, ok := obj[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstArrayLen(obj map[string]interface{}, fields []string) int {
	for _, f := range fields {
		if arr, ok := obj[f].([]interface{}); ok {
			return len(arr)
		}
	}
	return 0
}

func firstArrayField(obj map[string]interface{}, fields []string) []interface{} {
	for _, f := range fields {
		if arr, ok := obj[f].([]interface{}); ok {
			return arr
		}
	}
	return nil
}
