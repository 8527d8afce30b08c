package internal

import (
	"os"
	"path/filepath"
)

// EditorInfo describes one installed editor: its stable identifier and the
// storage directories the scanner reads. CascadeDir overrides the default
// per-conversation file directory for the directory-of-files vendor; tests
// use it to point at fixtures.
type EditorInfo struct {
	Name                 string `json:"name"`
	ID                   string `json:"id"`
	Installed            bool   `json:"installed"`
	ConfigPath           string `json:"config_path,omitempty"`
	GlobalStoragePath    string `json:"global_storage_path,omitempty"`
	WorkspaceStoragePath string `json:"workspace_storage_path,omitempty"`
	CascadeDir           string `json:"-"`
}

type editorDefinition struct {
	name   string
	id     string
	folder string // directory under the user config root
}

// editorDefinitions covers the VS Code fork family that persists chat data
// in state.vscdb stores.
var editorDefinitions = []editorDefinition{
	{"Visual Studio Code", "vscode", "Code"},
	{"Cursor", "cursor", "Cursor"},
	{"Windsurf", "windsurf", "Windsurf"},
	{"Kiro", "kiro", "Kiro"},
	{"Trae", "trae", "Trae"},
	{"Trae CN", "trae_cn", "Trae CN"},
	{"Qoder", "qoder", "Qoder"},
	{"Antigravity", "antigravity", "Antigravity"},
	{"PearAI", "pearai", "PearAI"},
	{"Aide", "aide", "Aide"},
	{"Positron", "positron", "Positron"},
	{"VSCodium", "vscodium", "VSCodium"},
	{"Void", "void", "Void"},
}

// DetectEditors probes the user config root for every known editor and
// returns a descriptor per installation found.
func DetectEditors() []EditorInfo {
	root, err := os.UserConfigDir()
	if err != nil {
		LogWarn("cannot resolve user config directory: %v", err)
		return nil
	}
	return detectEditorsIn(root)
}

func detectEditorsIn(root string) []EditorInfo {
	var editors []EditorInfo
	for _, def := range editorDefinitions {
		base := filepath.Join(root, def.folder)
		info := EditorInfo{Name: def.name, ID: def.id}

		if stat, err := os.Stat(base); err == nil && stat.IsDir() {
			info.Installed = true
			info.ConfigPath = base

			gs := filepath.Join(base, "User", "globalStorage")
			if fileExists(gs) {
				info.GlobalStoragePath = gs
			}
			ws := filepath.Join(base, "User", "workspaceStorage")
			if fileExists(ws) {
				info.WorkspaceStoragePath = ws
			}
		}

		if info.Installed {
			editors = append(editors, info)
		}
	}
	return editors
}

// FindEditor returns the descriptor for one editor by its stable id.
func FindEditor(id string) (EditorInfo, bool) {
	for _, editor := range DetectEditors() {
		if editor.ID == id {
			return editor, true
		}
	}
	return EditorInfo{}, false
}
