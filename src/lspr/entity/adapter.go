package entity

// LanguageName identifies a language as reported by the IDE (e.g. "go").
type LanguageName string

// ServerName identifies a kind of language server (e.g. "gopls").
type ServerName string

// ManifestKind names a project manifest file a server anchors its roots to
// (e.g. "go.mod", "package.json"). Empty means the server has no manifest
// and attaches at the workspace folder root.
type ManifestKind string

// RestServersMarker expands to all remaining servers when it appears in a
// per-language server ordering.
const RestServersMarker ServerName = "..."

// ServerID identifies a running language server instance. IDs are assigned
// by the langserver gateway, starting at 1, and are never reused within a
// daemon lifetime.
type ServerID int64

// ServerRef pairs a running server's ID with its server name.
type ServerRef struct {
	ID   ServerID   `json:"id" zap:"id"`
	Name ServerName `json:"name" zap:"name"`
}

// Adapter describes one kind of language server the daemon can run.
type Adapter struct {
	// Name of the server, unique across the registry.
	Name ServerName `yaml:"name"`
	// Manifest file the server roots itself at, empty for none.
	Manifest ManifestKind `yaml:"manifest"`
	// Languages the server handles.
	Languages []LanguageName `yaml:"languages"`
	// Command and Args launch the server when no binary override is set.
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// HandlesLanguage returns true if the adapter declares the given language.
func (a Adapter) HandlesLanguage(lang LanguageName) bool {
	for _, l := range a.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// LaunchIntent carries everything an initializer needs to start a server:
// the server name, the project root the server should attach to, and the
// configuration snapshot taken when the node was created.
type LaunchIntent struct {
	Server ServerName
	Root   ProjectPath
	Config ServerConfig
}

// ServerNode is a read-only view of one resolution tree node, used by the
// status surface and tests.
type ServerNode struct {
	Root      ProjectPath    `json:"root" zap:"root"`
	Server    ServerName     `json:"server" zap:"server"`
	ID        ServerID       `json:"id,omitempty" zap:"id"`
	Assigned  bool           `json:"assigned" zap:"assigned"`
	Languages []LanguageName `json:"languages" zap:"languages"`
}

// RouterStatus summarizes the daemon's server state for lspr/status.
type RouterStatus struct {
	Running []ServerRef  `json:"running" zap:"running"`
	Nodes   []ServerNode `json:"nodes" zap:"nodes"`
}
