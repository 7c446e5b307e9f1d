package factory

import (
	"github.com/uber/lsp-router/src/lspr/entity"
)

// Adapter returns an adapter descriptor launching a binary of the same name.
func Adapter(name string, manifest string, languages ...string) entity.Adapter {
	langs := make([]entity.LanguageName, 0, len(languages))
	for _, l := range languages {
		langs = append(langs, entity.LanguageName(l))
	}
	return entity.Adapter{
		Name:      entity.ServerName(name),
		Manifest:  entity.ManifestKind(manifest),
		Languages: langs,
		Command:   name,
	}
}

// ServerConfig returns a config snapshot carrying the given settings.
func ServerConfig(settings map[string]any) entity.ServerConfig {
	return entity.ServerConfig{Settings: settings}
}

// Session returns a session entity attached to the given workspace folders.
func Session(folders ...string) *entity.Session {
	ids := make([]entity.WorkspaceFolderID, 0, len(folders))
	for _, f := range folders {
		ids = append(ids, entity.NewWorkspaceFolderID(f))
	}
	return &entity.Session{
		UUID:             UUID(),
		WorkspaceFolders: ids,
		RouterEnabled:    true,
	}
}
