package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateStateDB creates an on-disk state database fixture with the flat
// ItemTable layout and returns its path. The engine opens stores by path,
// so fixtures live on disk rather than in memory.
func CreateStateDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "state.vscdb")
	db := openFixture(t, path)
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ItemTable (key TEXT PRIMARY KEY, value BLOB)`); err != nil {
		t.Fatalf("Failed to create ItemTable: %v", err)
	}
	return path
}

// CreateCompositeStateDB creates a state database fixture that also has
// the composite-key cursorDiskKV table.
func CreateCompositeStateDB(t *testing.T, dir string) string {
	t.Helper()
	path := CreateStateDB(t, dir)
	db := openFixture(t, path)
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cursorDiskKV (key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatalf("Failed to create cursorDiskKV: %v", err)
	}
	return path
}

// InsertItem inserts a row into ItemTable.
func InsertItem(t *testing.T, path, key, value string) {
	t.Helper()
	insert(t, path, "ItemTable", key, value)
}

// InsertDiskKV inserts a row into cursorDiskKV.
func InsertDiskKV(t *testing.T, path, key, value string) {
	t.Helper()
	insert(t, path, "cursorDiskKV", key, value)
}

func insert(t *testing.T, path, table, key, value string) {
	t.Helper()
	db := openFixture(t, path)
	defer db.Close()

	if _, err := db.Exec("INSERT OR REPLACE INTO ["+table+"] (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert into %s: %v", table, err)
	}
}

func openFixture(t *testing.T, path string) *sql.DB {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open fixture database: %v", err)
	}
	return db
}
