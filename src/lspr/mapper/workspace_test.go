package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber/lsp-router/src/lspr/entity"
	"go.lsp.dev/protocol"
)

func TestInitializeParamsToFolders(t *testing.T) {
	testCases := []struct {
		name     string
		params   *protocol.InitializeParams
		expected []entity.WorkspaceFolderID
	}{
		{
			name: "workspace folders",
			params: &protocol.InitializeParams{
				WorkspaceFolders: []protocol.WorkspaceFolder{
					{URI: "file:///workspace/a", Name: "a"},
					{URI: "file:///workspace/b", Name: "b"},
				},
			},
			expected: []entity.WorkspaceFolderID{"/workspace/a", "/workspace/b"},
		},
		{
			name: "duplicate folders collapse",
			params: &protocol.InitializeParams{
				WorkspaceFolders: []protocol.WorkspaceFolder{
					{URI: "file:///workspace/a", Name: "a"},
					{URI: "file:///workspace/a/", Name: "a again"},
				},
			},
			expected: []entity.WorkspaceFolderID{"/workspace/a"},
		},
		{
			name: "root uri fallback",
			params: &protocol.InitializeParams{
				RootURI: "file:///workspace/root",
			},
			expected: []entity.WorkspaceFolderID{"/workspace/root"},
		},
		{
			name: "workspace folders win over root uri",
			params: &protocol.InitializeParams{
				RootURI: "file:///workspace/root",
				WorkspaceFolders: []protocol.WorkspaceFolder{
					{URI: "file:///workspace/a", Name: "a"},
				},
			},
			expected: []entity.WorkspaceFolderID{"/workspace/a"},
		},
		{
			name: "non-file folders are skipped",
			params: &protocol.InitializeParams{
				WorkspaceFolders: []protocol.WorkspaceFolder{
					{URI: "untitled://workspace", Name: "scratch"},
					{URI: "file:///workspace/a", Name: "a"},
				},
			},
			expected: []entity.WorkspaceFolderID{"/workspace/a"},
		},
		{
			name:     "no folders",
			params:   &protocol.InitializeParams{},
			expected: []entity.WorkspaceFolderID{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InitializeParamsToFolders(tc.params))
		})
	}
}

func TestWorkspaceFoldersEventToFolders(t *testing.T) {
	added, removed := WorkspaceFoldersEventToFolders(protocol.WorkspaceFoldersChangeEvent{
		Added:   []protocol.WorkspaceFolder{{URI: "file:///workspace/new", Name: "new"}},
		Removed: []protocol.WorkspaceFolder{{URI: "file:///workspace/old", Name: "old"}},
	})
	assert.Equal(t, []entity.WorkspaceFolderID{"/workspace/new"}, added)
	assert.Equal(t, []entity.WorkspaceFolderID{"/workspace/old"}, removed)
}

func TestURIToProjectPath(t *testing.T) {
	folders := []entity.WorkspaceFolderID{"/workspace/a", "/workspace/a/nested", "/workspace/b"}

	testCases := []struct {
		name       string
		uri        protocol.DocumentURI
		expected   entity.ProjectPath
		expectedOK bool
	}{
		{
			name:       "document in folder",
			uri:        "file:///workspace/b/src/main.go",
			expected:   entity.ProjectPath{Folder: "/workspace/b", Rel: "src/main.go"},
			expectedOK: true,
		},
		{
			name:       "deepest folder wins",
			uri:        "file:///workspace/a/nested/main.go",
			expected:   entity.ProjectPath{Folder: "/workspace/a/nested", Rel: "main.go"},
			expectedOK: true,
		},
		{
			name:       "folder root document",
			uri:        "file:///workspace/a/README.md",
			expected:   entity.ProjectPath{Folder: "/workspace/a", Rel: "README.md"},
			expectedOK: true,
		},
		{
			name:       "outside all folders",
			uri:        "file:///elsewhere/main.go",
			expectedOK: false,
		},
		{
			name:       "non-file scheme",
			uri:        "untitled://main.go",
			expectedOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := URIToProjectPath(tc.uri, folders)
			assert.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				assert.Equal(t, tc.expected, p)
			}
		})
	}
}

func TestProjectPathToURI(t *testing.T) {
	p := entity.ProjectPath{Folder: "/workspace/a", Rel: "src/main.go"}
	assert.Equal(t, protocol.DocumentURI("file:///workspace/a/src/main.go"), ProjectPathToURI(p))

	root := entity.ProjectPath{Folder: "/workspace/a"}
	assert.Equal(t, protocol.DocumentURI("file:///workspace/a"), ProjectPathToURI(root))
}
