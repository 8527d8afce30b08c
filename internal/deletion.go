package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// knownTables is the deletion probe order: the flat table first, then the
// composite-key table.
var knownTables = []string{tableItem, tableDiskKV}

// DeleteConversation removes one conversation and returns the bytes freed.
// When sourceDB is a directory the vendor stores one protobuf file per
// conversation and sourceKey names the file; otherwise the row is deleted
// from whichever known table holds it, followed by a compaction pass.
// Deletion is immediate and irreversible.
func DeleteConversation(sourceDB, sourceKey string) (int64, error) {
	info, err := os.Stat(sourceDB)
	if err == nil && info.IsDir() {
		return deleteCascadeFile(sourceDB, sourceKey)
	}

	db, err := OpenDatabaseRW(sourceDB)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tables := ListTables(db)

	// The row's size comes from whichever table holds it.
	size := QueryValueSize(db, tableItem, sourceKey)
	if s := QueryValueSize(db, tableDiskKV, sourceKey); s > size {
		size = s
	}

	for _, table := range knownTables {
		if !tables[table] {
			continue
		}
		if deleteRow(db, table, sourceKey) {
			vacuum(db, sourceDB)
			return size, nil
		}
	}

	return 0, &NotFoundError{Kind: "key", Name: sourceKey}
}

// DeleteConversationsBatch removes many conversations, opening each backing
// database at most once and compacting it once after all its keys are
// processed. Per-item failures are accumulated; the batch only fails when
// nothing at all was freed and at least one error occurred. There is no
// transaction spanning the batch.
func DeleteConversationsBatch(items []DeleteRequest) (int64, error) {
	var totalFreed int64
	var errs []string

	groups := make(map[string][]string)
	var order []string
	for _, item := range items {
		if _, seen := groups[item.SourceDB]; !seen {
			order = append(order, item.SourceDB)
		}
		groups[item.SourceDB] = append(groups[item.SourceDB], item.SourceKey)
	}

	for _, sourceDB := range order {
		keys := groups[sourceDB]
		info, err := os.Stat(sourceDB)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", sourceDB, err))
			continue
		}

		if info.IsDir() {
			for _, key := range keys {
				freed, err := deleteCascadeFile(sourceDB, key)
				if err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", key, err))
					continue
				}
				totalFreed += freed
			}
			continue
		}

		db, err := OpenDatabaseRW(sourceDB)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", sourceDB, err))
			continue
		}
		tables := ListTables(db)
		for _, key := range keys {
			deleted := false
			for _, table := range knownTables {
				if !tables[table] {
					continue
				}
				size := QueryValueSize(db, table, key)
				if deleteRow(db, table, key) {
					totalFreed += size
					deleted = true
					break
				}
			}
			if !deleted {
				errs = append(errs, fmt.Sprintf("%s: key not found", key))
			}
		}
		vacuum(db, sourceDB)
		db.Close()
	}

	if totalFreed == 0 && len(errs) > 0 {
		return 0, &BatchDeleteError{Errors: errs}
	}
	return totalFreed, nil
}

func deleteCascadeFile(dir, key string) (int64, error) {
	path := filepath.Join(dir, key+".pb")
	info, err := os.Stat(path)
	if err != nil {
		return 0, &NotFoundError{Kind: "file", Name: key + ".pb"}
	}
	size := info.Size()
	if err := os.Remove(path); err != nil {
		return 0, &StorageError{Path: path, Op: "delete", Err: err}
	}
	return size, nil
}

func deleteRow(db *sql.DB, table, key string) bool {
	query := fmt.Sprintf("DELETE FROM [%s] WHERE key = ?", table)
	result, err := db.Exec(query, key)
	if err != nil {
		return false
	}
	count, err := result.RowsAffected()
	return err == nil && count > 0
}

// vacuum reclaims the space freed by row deletion. Failure is logged, not
// surfaced: the rows are already gone.
func vacuum(db *sql.DB, path string) {
	if _, err := db.Exec("VACUUM"); err != nil {
		LogWarn("vacuum failed for %s: %v", path, err)
	}
}
