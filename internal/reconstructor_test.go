package internal

import (
	"errors"
	"strings"
	"testing"

	"github.com/lowkeylabs/chatsweep/testutil"
)

func TestGetConversationContent_DirectObject(t *testing.T) {
	dbPath := testutil.CreateStateDB(t, t.TempDir())
	testutil.InsertItem(t, dbPath, "chat.session1",
		`{"title":"Direct","messages":[{"role":"user","text":"hi"},{"role":"assistant","text":"hello"}]}`)

	content, err := GetConversationContent(DefaultRuleset(), dbPath, "chat.session1", "")
	if err != nil {
		t.Fatalf("GetConversationContent() error = %v", err)
	}
	if content.Title != "Direct" {
		t.Errorf("Title = %q", content.Title)
	}
	if len(content.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(content.Messages))
	}
	if content.Messages[0].Role != "user" || content.Messages[0].Content != "hi" {
		t.Errorf("messages[0] = %+v", content.Messages[0])
	}
	if content.Messages[1].Role != "assistant" {
		t.Errorf("messages[1].Role = %q", content.Messages[1].Role)
	}
}

func TestGetConversationContent_AggregateByID(t *testing.T) {
	dbPath := testutil.CreateStateDB(t, t.TempDir())
	testutil.InsertItem(t, dbPath, "aiChat.chatdata",
		`{"tabs":[{"chatId":"a","chatTitle":"First","messages":[{"role":"user","text":"one"}]},`+
			`{"chatId":"b","chatTitle":"Second","messages":[{"role":"user","text":"two"}]}]}`)

	content, err := GetConversationContent(DefaultRuleset(), dbPath, "aiChat.chatdata", "b")
	if err != nil {
		t.Fatalf("GetConversationContent() error = %v", err)
	}
	if content.Title != "Second" {
		t.Errorf("Title = %q, want Second", content.Title)
	}
	if len(content.Messages) != 1 || content.Messages[0].Content != "two" {
		t.Errorf("Messages = %+v", content.Messages)
	}
}

func TestGetConversationContent_PositionalIdentity(t *testing.T) {
	dbPath := testutil.CreateStateDB(t, t.TempDir())
	testutil.InsertItem(t, dbPath, "aiChat.chatdata",
		`{"tabs":[{"chatTitle":"Zero","messages":[{"role":"user","text":"0"}]},`+
			`{"chatTitle":"One","messages":[{"role":"user","text":"1"}]}]}`)

	content, err := GetConversationContent(DefaultRuleset(), dbPath, "aiChat.chatdata", "item_1")
	if err != nil {
		t.Fatalf("GetConversationContent() error = %v", err)
	}
	if content.Title != "One" {
		t.Errorf("Title = %q, want One", content.Title)
	}
}

func TestGetConversationContent_IdentityNotFound(t *testing.T) {
	dbPath := testutil.CreateStateDB(t, t.TempDir())
	testutil.InsertItem(t, dbPath, "aiChat.chatdata", `{"tabs":[{"chatId":"a","chatTitle":"A","messages":[{}]}]}`)

	_, err := GetConversationContent(DefaultRuleset(), dbPath, "aiChat.chatdata", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetConversationContent_KeyNotFound(t *testing.T) {
	dbPath := testutil.CreateStateDB(t, t.TempDir())

	_, err := GetConversationContent(DefaultRuleset(), dbPath, "no.such.key", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetConversationContent_ParseFailure(t *testing.T) {
	dbPath := testutil.CreateStateDB(t, t.TempDir())
	testutil.InsertItem(t, dbPath, "chat.broken", `{"title":"cut`)

	_, err := GetConversationContent(DefaultRuleset(), dbPath, "chat.broken", "")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %v, want *ParseError", err)
	}
}

func TestGetConversationContent_ComposerKey(t *testing.T) {
	dbPath := testutil.CreateCompositeStateDB(t, t.TempDir())
	testutil.InsertDiskKV(t, dbPath, "composerData:abc",
		`{"composerId":"abc","name":"Refactor","text":"please refactor the parser",`+
			`"subtitle":"Refactored 3 files","fullConversationHeadersOnly":[{"type":1},{"type":2},{"type":7}],`+
			`"todos":[{"label":"split matcher","status":"done"},{"label":"add tests","status":"open"}],`+
			`"newlyCreatedFiles":["internal/parsers.go"],"status":"completed","unifiedMode":"agent",`+
			`"filesChangedCount":3,"totalLinesAdded":120,"totalLinesRemoved":40}`)

	content, err := GetConversationContent(DefaultRuleset(), dbPath, "composerData:abc", "abc")
	if err != nil {
		t.Fatalf("GetConversationContent() error = %v", err)
	}
	if content.Title != "Refactor" {
		t.Errorf("Title = %q", content.Title)
	}

	// Fixed reconstruction order, each section only when non-empty.
	if len(content.Messages) != 7 {
		t.Fatalf("got %d messages, want 7: %+v", len(content.Messages), content.Messages)
	}
	if content.Messages[0].Role != "system" || !strings.Contains(content.Messages[0].Content, "3 messages (1 user, 1 assistant, 1 other)") {
		t.Errorf("overview = %+v", content.Messages[0])
	}
	if content.Messages[1].Role != "user" || content.Messages[1].Content != "please refactor the parser" {
		t.Errorf("user text = %+v", content.Messages[1])
	}
	if content.Messages[2].Role != "assistant" || content.Messages[2].Content != "Refactored 3 files" {
		t.Errorf("subtitle = %+v", content.Messages[2])
	}
	if !strings.Contains(content.Messages[3].Content, "✓ split matcher") || !strings.Contains(content.Messages[3].Content, "○ add tests") {
		t.Errorf("todos = %+v", content.Messages[3])
	}
	if !strings.Contains(content.Messages[4].Content, "internal/parsers.go") {
		t.Errorf("new files = %+v", content.Messages[4])
	}
	if !strings.Contains(content.Messages[5].Content, "Status: completed | Mode: agent | Files: 3 | +120 -40") {
		t.Errorf("stats = %+v", content.Messages[5])
	}
	last := content.Messages[len(content.Messages)-1]
	if last.Role != "system" || !strings.Contains(last.Content, "encrypted") {
		t.Errorf("missing encrypted-content notice: %+v", last)
	}
}

func TestGetConversationContent_ComposerRichText(t *testing.T) {
	dbPath := testutil.CreateCompositeStateDB(t, t.TempDir())
	testutil.InsertDiskKV(t, dbPath, "composerData:rt",
		`{"composerId":"rt","name":"RT","richText":"{\"root\":{\"children\":[{\"children\":[{\"text\":\"from the tree\"}]}]}}"}`)

	content, err := GetConversationContent(DefaultRuleset(), dbPath, "composerData:rt", "rt")
	if err != nil {
		t.Fatalf("GetConversationContent() error = %v", err)
	}
	found := false
	for _, msg := range content.Messages {
		if msg.Role == "user" && msg.Content == "from the tree" {
			found = true
		}
	}
	if !found {
		t.Errorf("rich text input not reconstructed: %+v", content.Messages)
	}
}

func TestGetConversationContent_AggregateComposerDelegation(t *testing.T) {
	dbPath := testutil.CreateStateDB(t, t.TempDir())
	testutil.InsertItem(t, dbPath, "composer.composerData",
		`{"allComposers":[{"composerId":"c1","conversationState":{},"name":"Delegated","text":"the prompt"}]}`)

	content, err := GetConversationContent(DefaultRuleset(), dbPath, "composer.composerData", "c1")
	if err != nil {
		t.Fatalf("GetConversationContent() error = %v", err)
	}
	if content.Title != "Delegated" {
		t.Errorf("Title = %q", content.Title)
	}
	last := content.Messages[len(content.Messages)-1]
	if !strings.Contains(last.Content, "encrypted") {
		t.Errorf("composer delegation missing notice: %+v", last)
	}
}

func TestExtractMessages_ContentShapes(t *testing.T) {
	obj := map[string]interface{}{
		"messages": []interface{}{
			map[string]interface{}{"role": "user", "content": "plain"},
			map[string]interface{}{"role": "assistant", "content": map[string]interface{}{"text": "nested"}},
			map[string]interface{}{"role": "user", "content": []interface{}{
				"part one",
				map[string]interface{}{"text": "part two"},
			}},
			map[string]interface{}{"role": "assistant", "content": ""},
		},
	}

	messages := extractMessages(obj)
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3 (empty content dropped): %+v", len(messages), messages)
	}
	if messages[1].Content != "nested" {
		t.Errorf("messages[1].Content = %q", messages[1].Content)
	}
	if messages[2].Content != "part one\npart two" {
		t.Errorf("messages[2].Content = %q", messages[2].Content)
	}
}

func TestExtractMessages_BubbleRawTextFallback(t *testing.T) {
	obj := map[string]interface{}{
		"bubbles": []interface{}{
			map[string]interface{}{"type": "user", "rawText": "raw question"},
			map[string]interface{}{"type": "ai", "displayText": "display answer"},
			map[string]interface{}{"type": "user"},
		},
	}

	messages := extractMessages(obj)
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2: %+v", len(messages), messages)
	}
	if messages[0].Role != "user" || messages[0].Content != "raw question" {
		t.Errorf("messages[0] = %+v", messages[0])
	}
	if messages[1].Role != "assistant" {
		t.Errorf("messages[1].Role = %q, want assistant", messages[1].Role)
	}
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"user", "user"},
		{"Human", "user"},
		{"ASSISTANT", "assistant"},
		{"claude", "assistant"},
		{"gemini", "assistant"},
		{"system", "system"},
		{"narrator", "narrator"},
	}

	for _, tt := range tests {
		msg := map[string]interface{}{"role": tt.role}
		if got := normalizeRole(msg); got != tt.want {
			t.Errorf("normalizeRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}

	if got := normalizeRole(map[string]interface{}{}); got != "unknown" {
		t.Errorf("normalizeRole(empty) = %q, want unknown", got)
	}
}
