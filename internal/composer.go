package internal

import (
	"fmt"
	"strings"
)

// reconstructComposer synthesizes a transcript from composer metadata. The
// vendor keeps the real message bodies in an encrypted blob store, so this
// is best-effort by construction and always ends with a notice saying so.
func reconstructComposer(parsed interface{}, sourceKey string) ConversationContent {
	obj, _ := parsed.(map[string]interface{})

	title := ""
	if obj != nil {
		title, _ = obj["name"].(string)
	}
	if title == "" {
		title = sourceKey
	}

	var messages []Message

	if overview := composerOverview(obj); overview != "" {
		messages = append(messages, Message{Role: "system", Content: overview})
	}

	if userText := composerUserText(obj); userText != "" {
		messages = append(messages, Message{Role: "user", Content: userText})
	}

	if subtitle, _ := obj["subtitle"].(string); subtitle != "" {
		messages = append(messages, Message{Role: "assistant", Content: subtitle})
	}

	if todos := composerTodoList(obj); todos != "" {
		messages = append(messages, Message{Role: "assistant", Content: todos})
	}

	if files := composerNewFiles(obj); files != "" {
		messages = append(messages, Message{Role: "system", Content: files})
	}

	if stats := composerStats(obj); stats != "" {
		messages = append(messages, Message{Role: "system", Content: stats})
	}

	messages = append(messages, Message{
		Role:    "system",
		Content: "Note: Full conversation messages are stored in the editor's encrypted binary format and cannot be displayed. Only metadata is shown above.",
	})

	return ConversationContent{Title: title, Messages: messages}
}

// composerOverview summarizes the conversation headers by discriminant
// type: 1 is a user turn, 2 an assistant turn.
func composerOverview(obj map[string]interface{}) string {
	headers, _ := obj["fullConversationHeadersOnly"].([]interface{})
	if len(headers) == 0 {
		return ""
	}

	users, assistants := 0, 0
	for _, raw := range headers {
		h, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		switch t, _ := h["type"].(float64); t {
		case 1:
			users++
		case 2:
			assistants++
		}
	}
	others := len(headers) - users - assistants

	overview := fmt.Sprintf("Conversation: %d messages (%d user, %d assistant", len(headers), users, assistants)
	if others > 0 {
		overview += fmt.Sprintf(", %d other", others)
	}
	return overview + ")"
}

// composerUserText recovers the user's last authored input: the plain text
// field when present, else the rich text-node document.
func composerUserText(obj map[string]interface{}) string {
	if obj == nil {
		return ""
	}
	if text, _ := obj["text"].(string); text != "" {
		return text
	}
	if rich, _ := obj["richText"].(string); rich != "" {
		return ExtractRichText(rich)
	}
	return ""
}

// composerTodoList renders the todo items as a checklist.
func composerTodoList(obj map[string]interface{}) string {
	todos, _ := obj["todos"].([]interface{})
	if len(todos) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Tasks:\n")
	for _, raw := range todos {
		todo, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		label, _ := todo["label"].(string)
		if label == "" {
			label = "task"
		}
		status, _ := todo["status"].(string)
		mark := "○"
		if status == "done" {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, label)
	}
	return b.String()
}

func composerNewFiles(obj map[string]interface{}) string {
	files, _ := obj["newlyCreatedFiles"].([]interface{})
	var paths []string
	for _, raw := range files {
		if p, ok := raw.(string); ok {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return ""
	}
	return "New files:\n  " + strings.Join(paths, "\n  ")
}

// composerStats renders a one-line status and diff-stat summary when any
// of its fields is present.
func composerStats(obj map[string]interface{}) string {
	if obj == nil {
		return ""
	}
	status, _ := obj["status"].(string)
	mode, _ := obj["unifiedMode"].(string)
	added := intField(obj, "totalLinesAdded")
	removed := intField(obj, "totalLinesRemoved")
	changed := intField(obj, "filesChangedCount")

	if status == "" && added == 0 && changed == 0 {
		return ""
	}
	return fmt.Sprintf("Status: %s | Mode: %s | Files: %d | +%d -%d", status, mode, changed, added, removed)
}

func intField(obj map[string]interface{}, field string) int64 {
	if f, ok := obj[field].(float64); ok {
		return int64(f)
	}
	return 0
}
