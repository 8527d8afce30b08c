package internal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// contentFields is the fallback order probed for message bodies.
var contentFields = []string{"text", "content", "message", "body", "value"}

// reconstructMessageArrays is the fallback order for transcript message
// arrays. Narrower than the scan-time list: entries/requests hold request
// metadata, not message bodies.
var reconstructMessageArrays = []string{"bubbles", "messages", "conversation", "turns", "exchanges"}

// GetConversationContent reconstructs the full transcript for one
// conversation. Resolution order: composer-shaped keys are reconstructed
// from metadata; aggregate keys are searched for the identity; anything
// else is parsed directly as a single conversation object.
func GetConversationContent(rules *Ruleset, sourceDB, sourceKey, conversationID string) (*ConversationContent, error) {
	db, err := OpenDatabase(sourceDB)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tables := ListTables(db)

	value, found := "", false
	if tables[tableDiskKV] {
		value, found = QueryValueFull(db, tableDiskKV, sourceKey)
		if !found {
			value, found = QueryValueFull(db, tableItem, sourceKey)
		}
	} else if tables[tableItem] {
		value, found = QueryValueFull(db, tableItem, sourceKey)
	}
	if !found {
		return nil, &NotFoundError{Kind: "key", Name: sourceKey}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, &ParseError{Source: sourceDB, Key: sourceKey, Err: err}
	}

	if strings.HasPrefix(sourceKey, "composerData:") {
		content := reconstructComposer(parsed, sourceKey)
		return &content, nil
	}

	if rules.IsAggregateKey(sourceKey) && conversationID != "" {
		item, ok := findInAggregate(parsed, conversationID)
		if !ok {
			return nil, &NotFoundError{Kind: "conversation", Name: conversationID}
		}
		obj, _ := item.(map[string]interface{})
		if obj != nil && obj["composerId"] != nil && obj["conversationState"] != nil {
			content := reconstructComposer(item, sourceKey)
			return &content, nil
		}
		title := firstStringField(obj, []string{"chatTitle", "title", "name"})
		if title == "" {
			title = sourceKey
		}
		return &ConversationContent{Title: title, Messages: extractMessages(obj)}, nil
	}

	obj, _ := parsed.(map[string]interface{})
	title := firstStringField(obj, []string{"chatTitle", "title", "name"})
	if title == "" {
		title = sourceKey
	}
	return &ConversationContent{Title: title, Messages: extractMessages(obj)}, nil
}

// findInAggregate searches every known wrapper array for an item whose
// identity field matches, or resolves positional item_{N} identities.
func findInAggregate(parsed interface{}, conversationID string) (interface{}, bool) {
	var arrays [][]interface{}
	if obj, ok := parsed.(map[string]interface{}); ok {
		for _, field := range append([]string{"tabs", "allComposers"}, wrapperFields...) {
			if arr, ok := obj[field].([]interface{}); ok {
				arrays = append(arrays, arr)
			}
		}
	}
	if arr, ok := parsed.([]interface{}); ok {
		arrays = append(arrays, arr)
	}

	if idx, ok := positionalIndex(conversationID); ok {
		for _, arr := range arrays {
			if idx < len(arr) {
				return arr[idx], true
			}
		}
	}

	for _, arr := range arrays {
		for _, item := range arr {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if firstStringField(obj, idFields) == conversationID {
				return item, true
			}
		}
	}
	return nil, false
}

func positionalIndex(conversationID string) (int, bool) {
	rest, ok := strings.CutPrefix(conversationID, "item_")
	if !ok {
		return 0, false
	}
	var idx int
	if _, err := fmt.Sscanf(rest, "%d", &idx); err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// extractMessages pulls an ordered transcript out of one conversation
// object. Messages whose content resolves to empty are dropped.
func extractMessages(obj map[string]interface{}) []Message {
	if obj == nil {
		return nil
	}

	var messages []Message
	if arr := firstArrayField(obj, reconstructMessageArrays); arr != nil {
		for _, raw := range arr {
			msg, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			content := ""
			for _, field := range contentFields {
				if v, present := msg[field]; present {
					if content = extractMessageContent(v); content != "" {
						break
					}
				}
			}
			if content == "" {
				continue
			}
			messages = append(messages, Message{Role: normalizeRole(msg), Content: content})
		}
	}

	// Second pass for Cursor-style bubbles holding rawText/displayText.
	if len(messages) == 0 {
		if bubbles, ok := obj["bubbles"].([]interface{}); ok {
			for _, raw := range bubbles {
				bubble, ok := raw.(map[string]interface{})
				if !ok {
					continue
				}
				content := firstStringField(bubble, []string{"rawText", "displayText"})
				if content == "" {
					continue
				}
				messages = append(messages, Message{Role: normalizeRole(bubble), Content: content})
			}
		}
	}

	return messages
}

// extractMessageContent interprets one content value: a plain string, an
// object probed for the content fields, or an array of parts joined by
// newline.
func extractMessageContent(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case map[string]interface{}:
		for _, field := range contentFields {
			if s, ok := v[field].(string); ok && s != "" {
				return s
			}
		}
	case []interface{}:
		var parts []string
		for _, part := range v {
			if s, ok := part.(string); ok {
				parts = append(parts, s)
				continue
			}
			if obj, ok := part.(map[string]interface{}); ok {
				if s := firstStringField(obj, []string{"text", "content"}); s != "" {
					parts = append(parts, s)
				}
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// normalizeRole maps vendor role spellings onto user/assistant/system,
// passing unknown roles through unchanged.
func normalizeRole(msg map[string]interface{}) string {
	role := firstStringField(msg, []string{"role", "type", "sender", "author"})
	if role == "" {
		return "unknown"
	}
	switch strings.ToLower(role) {
	case "user", "human":
		return "user"
	case "assistant", "ai", "bot", "model", "gpt", "claude", "gemini":
		return "assistant"
	case "system":
		return "system"
	}
	return role
}
