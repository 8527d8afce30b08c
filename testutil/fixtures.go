package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateEditorFixture builds a minimal editor installation tree:
// User/globalStorage/state.vscdb plus an empty workspaceStorage directory.
// Returns (configPath, globalStorageDir, workspaceStorageDir).
func CreateEditorFixture(t *testing.T) (string, string, string) {
	t.Helper()
	base := t.TempDir()

	gs := filepath.Join(base, "User", "globalStorage")
	ws := filepath.Join(base, "User", "workspaceStorage")
	for _, dir := range []string{gs, ws} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create fixture directory: %v", err)
		}
	}

	CreateStateDB(t, gs)
	return base, gs, ws
}

// CreateWorkspaceStore creates workspaceStorage/<hash>/state.vscdb and
// returns the database path.
func CreateWorkspaceStore(t *testing.T, wsDir, hash string) string {
	t.Helper()
	dir := filepath.Join(wsDir, hash)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create workspace directory: %v", err)
	}
	return CreateStateDB(t, dir)
}

// CreateCascadeFile writes one per-conversation protobuf-style file into a
// cascade directory fixture.
func CreateCascadeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create cascade directory: %v", err)
	}
	path := filepath.Join(dir, name+".pb")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write cascade file: %v", err)
	}
	return path
}
