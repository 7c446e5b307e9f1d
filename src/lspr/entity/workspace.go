package entity

import (
	"path/filepath"
	"strings"
)

// WorkspaceFolderID identifies a workspace root folder by its cleaned
// absolute path. Sessions opened over the same folder share the same ID, so
// server nodes resolved for that folder are shared across sessions.
type WorkspaceFolderID string

// NewWorkspaceFolderID returns the folder ID for an absolute folder path.
func NewWorkspaceFolderID(path string) WorkspaceFolderID {
	return WorkspaceFolderID(filepath.Clean(path))
}

// Path returns the folder's absolute path.
func (w WorkspaceFolderID) Path() string {
	return string(w)
}

// Contains reports whether abs is inside the folder, returning the relative
// path within it. The folder root itself yields "".
func (w WorkspaceFolderID) Contains(abs string) (string, bool) {
	rel, err := filepath.Rel(string(w), filepath.Clean(abs))
	if err != nil {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// ProjectPath is a path inside a workspace folder. Rel is relative to the
// folder root; an empty Rel denotes the root itself.
type ProjectPath struct {
	Folder WorkspaceFolderID `json:"folder" zap:"folder"`
	Rel    string            `json:"rel" zap:"rel"`
}

// Abs returns the absolute filesystem path.
func (p ProjectPath) Abs() string {
	if p.Rel == "" {
		return string(p.Folder)
	}
	return filepath.Join(string(p.Folder), p.Rel)
}

// Dir returns the path of the directory containing p. For a root path it
// returns the root itself.
func (p ProjectPath) Dir() ProjectPath {
	if p.Rel == "" {
		return p
	}
	parent := filepath.Dir(p.Rel)
	if parent == "." {
		parent = ""
	}
	return ProjectPath{Folder: p.Folder, Rel: parent}
}

// Less orders project paths by folder, then by relative path.
func (p ProjectPath) Less(other ProjectPath) bool {
	if p.Folder != other.Folder {
		return p.Folder < other.Folder
	}
	return p.Rel < other.Rel
}

// String implements fmt.Stringer.
func (p ProjectPath) String() string {
	return p.Abs()
}

// SettingsLocation identifies where settings should be resolved from.
type SettingsLocation struct {
	Folder WorkspaceFolderID
	Path   string
}
