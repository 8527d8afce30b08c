package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Table names used by the VS Code fork family. ItemTable is the flat
// key→value table present in every state.vscdb; cursorDiskKV is the
// composite-key table Cursor v2.0+ adds alongside it.
const (
	tableItem   = "ItemTable"
	tableDiskKV = "cursorDiskKV"
)

// OpenDatabase opens a state database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// OpenDatabaseRW opens a state database with write access, for deletion.
func OpenDatabaseRW(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// ListTables returns the names of all tables in the database.
func ListTables(db *sql.DB) map[string]bool {
	tables := make(map[string]bool)
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return tables
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		tables[name] = true
	}
	return tables
}

// QueryValueSize returns the byte length of a value, or 0 when the key is
// absent. Only the length is materialized, never the value itself.
func QueryValueSize(db *sql.DB, table, key string) int64 {
	query := fmt.Sprintf("SELECT length(value) FROM [%s] WHERE key = ?", table)
	var size sql.NullInt64
	if err := db.QueryRow(query, key).Scan(&size); err != nil {
		return 0
	}
	return size.Int64
}

// QueryValueFull reads an entire value as text. The caller is responsible
// for size-gating before asking for a full read.
func QueryValueFull(db *sql.DB, table, key string) (string, bool) {
	query := fmt.Sprintf("SELECT value FROM [%s] WHERE key = ?", table)
	var value sql.NullString
	if err := db.QueryRow(query, key).Scan(&value); err != nil {
		return "", false
	}
	if !value.Valid {
		return "", false
	}
	return value.String, true
}

// KeyEntry is one row from a bounded preview scan: the key, the leading
// bytes of its value, and the value's full length.
type KeyEntry struct {
	Key     string
	Preview string
	Size    int64
}

// ScanKeysPreview returns all keys matching a LIKE pattern with a bounded
// preview of each value. Previews cap memory use: oversized blobs are never
// materialized during a scan.
func ScanKeysPreview(db *sql.DB, table, pattern string, previewLen int) []KeyEntry {
	query := fmt.Sprintf(
		"SELECT key, substr(value, 1, %d), length(value) FROM [%s] WHERE key LIKE ?",
		previewLen, table,
	)
	rows, err := db.Query(query, pattern)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var entries []KeyEntry
	for rows.Next() {
		var key string
		var preview sql.NullString
		var size sql.NullInt64
		if err := rows.Scan(&key, &preview, &size); err != nil {
			continue
		}
		entries = append(entries, KeyEntry{
			Key:     key,
			Preview: preview.String,
			Size:    size.Int64,
		})
	}
	return entries
}
