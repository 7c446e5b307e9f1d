package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, New())
}

func TestFileOperations(t *testing.T) {
	f := New()
	dir := t.TempDir()
	name := filepath.Join(dir, "sample.txt")

	t.Run("write and read", func(t *testing.T) {
		require.NoError(t, f.WriteFile(name, "contents"))
		data, err := f.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, "contents", string(data))
	})

	t.Run("file exists", func(t *testing.T) {
		exists, err := f.FileExists(name)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = f.FileExists(filepath.Join(dir, "missing.txt"))
		require.NoError(t, err)
		assert.False(t, exists)

		// A directory is not a file.
		exists, err = f.FileExists(dir)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("dir exists", func(t *testing.T) {
		exists, err := f.DirExists(dir)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = f.DirExists(name)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("mkdir all", func(t *testing.T) {
		nested := filepath.Join(dir, "a", "b", "c")
		require.NoError(t, f.MkdirAll(nested))
		exists, err := f.DirExists(nested)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("read dir", func(t *testing.T) {
		entries, err := f.ReadDir(dir)
		require.NoError(t, err)
		assert.NotEmpty(t, entries)
	})

	t.Run("temp file and remove", func(t *testing.T) {
		tmp, err := f.TempFile(dir, "t")
		require.NoError(t, err)
		tmp.Close()
		require.NoError(t, f.Remove(tmp.Name()))
		_, err = os.Stat(tmp.Name())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("open", func(t *testing.T) {
		file, err := f.Open(name)
		require.NoError(t, err)
		assert.NoError(t, file.Close())
	})
}
