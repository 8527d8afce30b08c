package internal

import (
	"database/sql"
	"strings"
)

// ExtractFromDB classifies and parses all conversation-bearing keys in one
// state database. The handle lives only for this call; every exit path
// closes it. Malformed data degrades to heuristics or is omitted, never an
// error.
func ExtractFromDB(dbPath string, rules *Ruleset) []ConversationRecord {
	modified := fileModifiedTime(dbPath)

	db, err := OpenDatabase(dbPath)
	if err != nil {
		LogDebug("Skipping unreadable database %s: %v", dbPath, err)
		return nil
	}
	defer db.Close()

	return extractFromHandle(db, dbPath, rules, modified)
}

func extractFromHandle(db *sql.DB, dbPath string, rules *Ruleset, modified int64) []ConversationRecord {
	var results []ConversationRecord

	tables := ListTables(db)
	hasDiskKV := tables[tableDiskKV]

	// Each key is classified at most once per scan.
	processed := make(map[string]bool)

	if tables[tableItem] {
		// Tier 1: aggregate keys holding an entire chat dataset. Size is
		// fetched first; oversized values become stub records.
		for _, key := range rules.AggregateKeys {
			size := QueryValueSize(db, tableItem, key)
			if size < minAggregateSize {
				continue
			}
			processed[key] = true
			if size < MaxFullRead {
				if value, ok := QueryValueFull(db, tableItem, key); ok {
					results = append(results, ParseChatValue(value, dbPath, key, modified)...)
				}
				continue
			}
			results = append(results, ConversationRecord{
				ID:           recordID(dbPath, key, ""),
				Title:        key,
				SourceDB:     dbPath,
				SourceKey:    key,
				MessageCount: 0,
				SizeBytes:    size,
				LastModified: modified,
			})
		}

		// Tier 2: per-conversation keys, preview reads only. Skipped when
		// the composite-key table exists, which holds the same logical
		// conversations under its own schema.
		if !hasDiskKV {
			for _, pattern := range rules.ConversationPatterns {
				for _, entry := range ScanKeysPreview(db, tableItem, pattern, PreviewLen) {
					if processed[entry.Key] || rules.IsIgnored(entry.Key) {
						continue
					}
					processed[entry.Key] = true
					if entry.Size <= minEntrySize {
						continue
					}
					if rec, ok := ExtractFromPreview(entry, dbPath, modified); ok {
						results = append(results, rec)
					}
				}
			}
		}

		// Discovery fallback: broad patterns, only when the targeted tiers
		// found nothing in this table.
		if len(results) == 0 {
			results = append(results, discoverUnknownKeys(db, dbPath, rules, processed, modified)...)
		}
	}

	if hasDiskKV {
		results = append(results, extractComposerTable(db, dbPath, modified)...)
	}

	return results
}

// discoverUnknownKeys scans broad wildcard patterns for key schemas not on
// the targeted lists. Large previews get one full-read attempt with the
// generic parser before the preview heuristics run.
func discoverUnknownKeys(db *sql.DB, dbPath string, rules *Ruleset, processed map[string]bool, modified int64) []ConversationRecord {
	var results []ConversationRecord
	for _, pattern := range rules.DiscoveryPatterns {
		for _, entry := range ScanKeysPreview(db, tableItem, pattern, PreviewLen) {
			if processed[entry.Key] || rules.IsIgnored(entry.Key) {
				continue
			}
			processed[entry.Key] = true
			if entry.Size <= minDiscoverySize {
				continue
			}
			if entry.Size > minDiscoveryFullParse && entry.Size < MaxFullRead {
				if value, ok := QueryValueFull(db, tableItem, entry.Key); ok {
					if recs := ParseChatValue(value, dbPath, entry.Key, modified); len(recs) > 0 {
						results = append(results, recs...)
						continue
					}
				}
			}
			if rec, ok := ExtractFromPreview(entry, dbPath, modified); ok {
				results = append(results, rec)
			}
		}
	}
	return results
}

// extractComposerTable reads the composite-key table: composerData:{id}
// rows are the canonical conversation entries, while the full message
// bodies live in bubbleId:{id}:{bubbleId} child rows. Child sizes are
// rolled up into the owning record so reported sizes reflect what deletion
// would actually free.
func extractComposerTable(db *sql.DB, dbPath string, modified int64) []ConversationRecord {
	var results []ConversationRecord

	bubbleSizes := queryBubbleSizes(db)

	rows, err := db.Query(
		"SELECT key, value FROM cursorDiskKV WHERE key LIKE 'composerData:%' AND typeof(value) = 'text' AND length(value) > 50",
	)
	if err != nil {
		return results
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil || !value.Valid {
			continue
		}
		rec, ok := ParseComposerRecord(value.String, dbPath, key, modified)
		if !ok {
			continue
		}
		if id, found := strings.CutPrefix(key, "composerData:"); found {
			rec.SizeBytes += bubbleSizes[id]
		}
		results = append(results, rec)
	}
	return results
}

// queryBubbleSizes sums child-row sizes grouped by the parent id embedded
// in the key: bubbleId:{composerId}:{bubbleId}.
func queryBubbleSizes(db *sql.DB) map[string]int64 {
	sizes := make(map[string]int64)
	rows, err := db.Query("SELECT key, length(value) FROM cursorDiskKV WHERE key LIKE 'bubbleId:%'")
	if err != nil {
		return sizes
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var size sql.NullInt64
		if err := rows.Scan(&key, &size); err != nil {
			continue
		}
		parts := strings.SplitN(key, ":", 3)
		if len(parts) >= 2 {
			sizes[parts[1]] += size.Int64
		}
	}
	return sizes
}
