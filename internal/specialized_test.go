package internal

import (
	"strings"
	"testing"
)

func TestExtractFromPreview_SessionHistory(t *testing.T) {
	entry := KeyEntry{
		Key:     "memento/interactive-session",
		Preview: `{"history":{"copilot":[{"text":"how do I sort a slice"},{"text":"thanks"}],"editor":[{"text":"x"}]}}`,
		Size:    500,
	}
	rec, ok := ExtractFromPreview(entry, "/db", 0)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3", rec.MessageCount)
	}
	if !strings.HasPrefix(rec.Title, "Copilot Chat: ") {
		t.Errorf("Title = %q, want Copilot Chat prefix", rec.Title)
	}
}

func TestExtractFromPreview_SessionHistoryEmpty(t *testing.T) {
	entry := KeyEntry{
		Key:     "memento/interactive-session",
		Preview: `{"history":{}}`,
		Size:    500,
	}
	if _, ok := ExtractFromPreview(entry, "/db", 0); ok {
		t.Error("expected zero-turn history to be discarded")
	}
}

func TestExtractFromPreview_EditsLabel(t *testing.T) {
	entry := KeyEntry{
		Key:     "memento/interactive-session-view-copilot",
		Preview: `{"history":{"copilot":[{"text":"apply the edit"}]}}`,
		Size:    200,
	}
	rec, ok := ExtractFromPreview(entry, "/db", 0)
	if !ok {
		t.Fatal("expected a record")
	}
	if !strings.HasPrefix(rec.Title, "Copilot Edits") {
		t.Errorf("Title = %q, want Copilot Edits prefix", rec.Title)
	}
}

func TestExtractFromPreview_BinaryShape(t *testing.T) {
	entry := KeyEntry{
		Key:     "jetskiStateSync.agentManagerInitState",
		Preview: "\x0a\x1fImplement retry logic for uploads\x12\x04\x08\x01",
		Size:    300,
	}
	rec, ok := ExtractFromPreview(entry, "/db", 0)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.Title != "Implement retry logic for uploads" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.MessageCount != 0 {
		t.Errorf("MessageCount = %d, want 0 (unknown for binary values)", rec.MessageCount)
	}
}

func TestExtractFromPreview_BinaryNoCandidate(t *testing.T) {
	entry := KeyEntry{
		Key:     "antigravityUnifiedStateSync.trajectorySummaries",
		Preview: "\x0a\x08/path/to/some/file.go\x00",
		Size:    300,
	}
	rec, ok := ExtractFromPreview(entry, "/db", 0)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.Title != "Antigravity Session" {
		t.Errorf("Title = %q, want placeholder", rec.Title)
	}
}

func TestExtractFromPreview_TruncatedJSONFallback(t *testing.T) {
	// No closing brace: the generic parse fails, the text fallback runs.
	entry := KeyEntry{
		Key:     "chat.someSession",
		Preview: `{"chatTitle":"Broken payload","messages":[{"role":"user"},{"role":"assistant"`,
		Size:    9000,
	}
	rec, ok := ExtractFromPreview(entry, "/db", 42)
	if !ok {
		t.Fatal("expected a record from text fallback")
	}
	if rec.Title != "Broken payload" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", rec.MessageCount)
	}
}

func TestExtractFromPreview_TinyNoTitle(t *testing.T) {
	entry := KeyEntry{
		Key:     "chat.stub",
		Preview: `{"x":1`,
		Size:    50,
	}
	if _, ok := ExtractFromPreview(entry, "/db", 0); ok {
		t.Error("expected a titleless sub-100-byte entry to be discarded")
	}
}

func TestParseComposerRecord(t *testing.T) {
	json := `{"composerId":"abc","name":"Fix bug","fullConversationHeadersOnly":[{},{}],"createdAt":1700000000000}`
	rec, ok := ParseComposerRecord(json, "/db", "composerData:abc", 99)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.Title != "Fix bug" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", rec.MessageCount)
	}
	if rec.LastModified != 1700000000 {
		t.Errorf("LastModified = %d, want createdAt in seconds", rec.LastModified)
	}
	if rec.SizeBytes != int64(len(json)) {
		t.Errorf("SizeBytes = %d, want %d", rec.SizeBytes, len(json))
	}
}

func TestParseComposerRecord_SubtitleFallback(t *testing.T) {
	rec, ok := ParseComposerRecord(`{"composerId":"x","subtitle":"Did things","fullConversationHeadersOnly":[]}`, "/db", "composerData:x", 0)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.Title != "Did things" {
		t.Errorf("Title = %q, want subtitle fallback", rec.Title)
	}
}

func TestParseComposerRecord_ComposerIDFallback(t *testing.T) {
	rec, ok := ParseComposerRecord(`{"composerId":"cid-1","fullConversationHeadersOnly":[{},{}]}`, "/db", "composerData:cid-1", 0)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.Title != "cid-1" {
		t.Errorf("Title = %q, want composer id fallback", rec.Title)
	}
}

func TestParseComposerRecord_Discarded(t *testing.T) {
	if _, ok := ParseComposerRecord(`{"composerId":"x","fullConversationHeadersOnly":[]}`, "/db", "composerData:x", 0); ok {
		t.Error("expected empty composer to be discarded")
	}
	if _, ok := ParseComposerRecord(`not json`, "/db", "composerData:x", 0); ok {
		t.Error("expected malformed composer to be discarded")
	}
}
