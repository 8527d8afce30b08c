package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const stateDBName = "state.vscdb"

// Loose-file thresholds for per-editor merging.
const (
	// Workspace stores smaller than this are empty shells.
	minWorkspaceDBSize = 1024

	// Cascade conversation files smaller than this are noise.
	minCascadeFileSize = 50
)

// Scan discovers all conversations for one editor installation: the main
// global store, every workspace store, and — for Windsurf — the directory
// of per-conversation protobuf files. Everything is computed fresh; the
// engine holds no state between calls.
func Scan(editor EditorInfo, rules *Ruleset) ScanResult {
	result := ScanResult{EditorID: editor.ID}

	if editor.GlobalStoragePath != "" {
		mainDB := filepath.Join(editor.GlobalStoragePath, stateDBName)
		if fileExists(mainDB) {
			size := fileSize(mainDB)
			result.TotalSize += size
			result.DbFiles = append(result.DbFiles, DbFileRecord{
				Path:     mainDB,
				Size:     size,
				Name:     "globalStorage/" + stateDBName,
				Modified: fileModifiedTime(mainDB),
			})
			result.Conversations = append(result.Conversations, ExtractFromDB(mainDB, rules)...)
		}

		// The backup copy counts toward the total but is never parsed; it
		// duplicates the main store's conversations.
		backup := mainDB + ".backup"
		if fileExists(backup) {
			size := fileSize(backup)
			result.TotalSize += size
			result.DbFiles = append(result.DbFiles, DbFileRecord{
				Path:     backup,
				Size:     size,
				Name:     "globalStorage/" + stateDBName + ".backup",
				Modified: fileModifiedTime(backup),
			})
		}
	}

	if editor.WorkspaceStoragePath != "" {
		result.merge(scanWorkspaceStores(editor.WorkspaceStoragePath, rules))
	}

	if editor.ID == "windsurf" {
		dir := editor.CascadeDir
		if dir == "" {
			dir = cascadeDir()
		}
		result.merge(scanCascadeDir(dir))
	}

	// Most recent first; records without a modified time sort last.
	sort.SliceStable(result.Conversations, func(i, j int) bool {
		return result.Conversations[i].LastModified > result.Conversations[j].LastModified
	})

	return result
}

func (r *ScanResult) merge(other ScanResult) {
	r.Conversations = append(r.Conversations, other.Conversations...)
	r.DbFiles = append(r.DbFiles, other.DbFiles...)
	r.TotalSize += other.TotalSize
}

// scanWorkspaceStores walks workspaceStorage/*/state.vscdb. Tiny stores
// are skipped as noise.
func scanWorkspaceStores(wsPath string, rules *Ruleset) ScanResult {
	var result ScanResult

	entries, err := os.ReadDir(wsPath)
	if err != nil {
		return result
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dbPath := filepath.Join(wsPath, entry.Name(), stateDBName)
		if !fileExists(dbPath) {
			continue
		}
		size := fileSize(dbPath)
		if size < minWorkspaceDBSize {
			continue
		}
		result.TotalSize += size

		hash := entry.Name()
		if len(hash) > 8 {
			hash = hash[:8]
		}
		result.DbFiles = append(result.DbFiles, DbFileRecord{
			Path:     dbPath,
			Size:     size,
			Name:     fmt.Sprintf("workspaceStorage/%s/%s", hash, stateDBName),
			Modified: fileModifiedTime(dbPath),
		})
		result.Conversations = append(result.Conversations, ExtractFromDB(dbPath, rules)...)
	}
	return result
}

// scanCascadeDir handles the vendor that writes one protobuf file per
// conversation. Each file of at least minCascadeFileSize bytes becomes a
// record whose key is the file's base name.
func scanCascadeDir(dir string) ScanResult {
	var result ScanResult
	if dir == "" || !fileExists(dir) {
		return result
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return result
	}

	var dirSize int64
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		size := fileSize(path)
		dirSize += size
		if filepath.Ext(entry.Name()) != ".pb" || size < minCascadeFileSize {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".pb")
		short := name
		if len(short) > 8 {
			short = short[:8]
		}
		result.TotalSize += size
		result.Conversations = append(result.Conversations, ConversationRecord{
			ID:           "pb:" + recordID(dir, name, ""),
			Title:        "Cascade " + short,
			SourceDB:     dir,
			SourceKey:    name,
			MessageCount: 0,
			SizeBytes:    size,
			LastModified: fileModifiedTime(path),
		})
	}

	result.DbFiles = append(result.DbFiles, DbFileRecord{
		Path:     dir,
		Size:     dirSize,
		Name:     ".codeium/windsurf/cascade/",
		Modified: fileModifiedTime(dir),
	})
	return result
}

// cascadeDir locates Windsurf's per-conversation file directory.
func cascadeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".codeium", "windsurf", "cascade")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func fileModifiedTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}
