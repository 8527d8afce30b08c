package internal

import "fmt"

// ConversationRecord describes one discovered conversation. Records are
// computed fresh on every scan; nothing is cached between calls.
type ConversationRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	SourceDB     string `json:"source_db"`
	SourceKey    string `json:"source_key"`
	MessageCount int    `json:"message_count"`
	SizeBytes    int64  `json:"size_bytes"`
	LastModified int64  `json:"last_modified,omitempty"` // epoch seconds, 0 = unknown
}

// DbFileRecord describes one physical backing file contributing to a scan.
type DbFileRecord struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Name     string `json:"name"`
	Modified int64  `json:"modified,omitempty"`
}

// ScanResult is the outcome of scanning one editor installation.
type ScanResult struct {
	EditorID      string               `json:"editor_id"`
	Conversations []ConversationRecord `json:"conversations"`
	DbFiles       []DbFileRecord       `json:"db_files"`
	TotalSize     int64                `json:"total_size"`
}

// Message is a single transcript entry. Role is one of "user", "assistant",
// "system", or the vendor's raw role string when it maps to none of those.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationContent is a reconstructed transcript for one conversation.
// Produced on demand, never persisted.
type ConversationContent struct {
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// DeleteRequest identifies one conversation to remove.
type DeleteRequest struct {
	SourceDB  string `json:"source_db"`
	SourceKey string `json:"source_key"`
}

// recordID builds a conversation identity from its backing path, key and an
// optional item discriminator. Identities are unique within one scan result.
func recordID(dbPath, key, itemID string) string {
	if itemID == "" {
		return fmt.Sprintf("%s:%s", dbPath, key)
	}
	return fmt.Sprintf("%s:%s:%s", dbPath, key, itemID)
}
