package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestNewWorkspaceFolderID(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected WorkspaceFolderID
	}{
		{
			name:     "clean path",
			path:     "/home/user/repo",
			expected: "/home/user/repo",
		},
		{
			name:     "trailing slash",
			path:     "/home/user/repo/",
			expected: "/home/user/repo",
		},
		{
			name:     "dot segments",
			path:     "/home/user/./repo/../repo",
			expected: "/home/user/repo",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewWorkspaceFolderID(tc.path))
		})
	}
}

func TestWorkspaceFolderIDContains(t *testing.T) {
	folder := NewWorkspaceFolderID("/home/user/repo")

	testCases := []struct {
		name        string
		abs         string
		expectedRel string
		expectedOK  bool
	}{
		{
			name:        "folder root",
			abs:         "/home/user/repo",
			expectedRel: "",
			expectedOK:  true,
		},
		{
			name:        "nested file",
			abs:         "/home/user/repo/pkg/a/file.go",
			expectedRel: "pkg/a/file.go",
			expectedOK:  true,
		},
		{
			name:       "outside the folder",
			abs:        "/home/user/other",
			expectedOK: false,
		},
		{
			name:       "sibling with shared prefix",
			abs:        "/home/user/repo-two/file.go",
			expectedOK: false,
		},
		{
			name:       "parent directory",
			abs:        "/home/user",
			expectedOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rel, ok := folder.Contains(tc.abs)
			assert.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				assert.Equal(t, tc.expectedRel, rel)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	t.Run("abs of root", func(t *testing.T) {
		p := ProjectPath{Folder: "/home/user/repo"}
		assert.Equal(t, "/home/user/repo", p.Abs())
		assert.Equal(t, "/home/user/repo", p.String())
	})

	t.Run("abs of nested path", func(t *testing.T) {
		p := ProjectPath{Folder: "/home/user/repo", Rel: "pkg/a"}
		assert.Equal(t, "/home/user/repo/pkg/a", p.Abs())
	})

	t.Run("dir walks toward the root", func(t *testing.T) {
		p := ProjectPath{Folder: "/home/user/repo", Rel: "pkg/a/file.go"}
		p = p.Dir()
		assert.Equal(t, "pkg/a", p.Rel)
		p = p.Dir()
		assert.Equal(t, "pkg", p.Rel)
		p = p.Dir()
		assert.Equal(t, "", p.Rel)
		assert.Equal(t, p, p.Dir(), "root dir should be a fixed point")
	})

	t.Run("less orders by folder then rel", func(t *testing.T) {
		a := ProjectPath{Folder: "/a", Rel: "z"}
		b := ProjectPath{Folder: "/b", Rel: "a"}
		c := ProjectPath{Folder: "/b", Rel: "b"}
		assert.True(t, a.Less(b))
		assert.True(t, b.Less(c))
		assert.False(t, c.Less(b))
		assert.False(t, a.Less(a))
	})
}

func TestSessionHasFolder(t *testing.T) {
	s := &Session{WorkspaceFolders: []WorkspaceFolderID{"/a", "/b"}}
	assert.True(t, s.HasFolder("/a"))
	assert.True(t, s.HasFolder("/b"))
	assert.False(t, s.HasFolder("/c"))
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
