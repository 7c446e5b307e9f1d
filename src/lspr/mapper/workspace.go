package mapper

import (
	"strings"

	"github.com/uber/lsp-router/src/lspr/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const _fileScheme = "file://"

// InitializeParamsToFolders extracts the workspace folder IDs from initialize
// parameters. WorkspaceFolders take precedence; RootURI is the fallback for
// clients that predate multi-root support. Non-file URIs are skipped.
func InitializeParamsToFolders(params *protocol.InitializeParams) []entity.WorkspaceFolderID {
	seen := make(map[entity.WorkspaceFolderID]struct{})
	folders := make([]entity.WorkspaceFolderID, 0, len(params.WorkspaceFolders)+1)

	appendFolder := func(id entity.WorkspaceFolderID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		folders = append(folders, id)
	}

	for _, f := range params.WorkspaceFolders {
		if path, ok := uriToPath(uri.URI(f.URI)); ok {
			appendFolder(entity.NewWorkspaceFolderID(path))
		}
	}

	if len(folders) == 0 && params.RootURI != "" {
		if path, ok := uriToPath(uri.URI(params.RootURI)); ok {
			appendFolder(entity.NewWorkspaceFolderID(path))
		}
	}

	return folders
}

// WorkspaceFoldersEventToFolders maps a workspace folder change event into
// added and removed folder ID lists.
func WorkspaceFoldersEventToFolders(event protocol.WorkspaceFoldersChangeEvent) (added, removed []entity.WorkspaceFolderID) {
	for _, f := range event.Added {
		if path, ok := uriToPath(uri.URI(f.URI)); ok {
			added = append(added, entity.NewWorkspaceFolderID(path))
		}
	}
	for _, f := range event.Removed {
		if path, ok := uriToPath(uri.URI(f.URI)); ok {
			removed = append(removed, entity.NewWorkspaceFolderID(path))
		}
	}
	return added, removed
}

// URIToProjectPath locates a document URI within the given workspace folders.
// When folders are nested the deepest containing folder wins. Returns false
// for documents outside every folder.
func URIToProjectPath(u protocol.DocumentURI, folders []entity.WorkspaceFolderID) (entity.ProjectPath, bool) {
	path, ok := uriToPath(uri.URI(u))
	if !ok {
		return entity.ProjectPath{}, false
	}

	var best entity.ProjectPath
	found := false
	for _, folder := range folders {
		rel, ok := folder.Contains(path)
		if !ok {
			continue
		}
		if !found || len(folder) > len(best.Folder) {
			best = entity.ProjectPath{Folder: folder, Rel: rel}
			found = true
		}
	}
	return best, found
}

// ProjectPathToURI maps a project path back to a document URI.
func ProjectPathToURI(p entity.ProjectPath) protocol.DocumentURI {
	return protocol.DocumentURI(uri.File(p.Abs()))
}

func uriToPath(u uri.URI) (string, bool) {
	if !strings.HasPrefix(string(u), _fileScheme) {
		return "", false
	}
	return u.Filename(), true
}
