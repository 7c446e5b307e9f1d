package servertree

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/lsp-router/src/lspr/entity"
)

func testNode() *node {
	return newNode(
		"gopls",
		entity.ProjectPath{Folder: entity.NewWorkspaceFolderID("/ws/app"), Rel: "svc"},
		entity.ServerConfig{Settings: map[string]any{"staticcheck": true}},
	)
}

func TestIdentityOrInit(t *testing.T) {
	t.Run("assigns once", func(t *testing.T) {
		n := testNode()
		h := Handle{n: n}

		_, ok := h.Identity()
		require.False(t, ok)

		var calls atomic.Int32
		init := func(intent entity.LaunchIntent) (entity.ServerID, error) {
			calls.Add(1)
			assert.Equal(t, entity.ServerName("gopls"), intent.Server)
			assert.Equal(t, "svc", intent.Root.Rel)
			assert.Equal(t, true, intent.Config.Settings["staticcheck"])
			return 7, nil
		}

		id, ok, err := h.IdentityOrInit(init)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, entity.ServerID(7), id)

		id, ok, err = h.IdentityOrInit(init)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, entity.ServerID(7), id)
		assert.Equal(t, int32(1), calls.Load())

		id, ok = h.Identity()
		require.True(t, ok)
		assert.Equal(t, entity.ServerID(7), id)
	})

	t.Run("concurrent callers observe one launch", func(t *testing.T) {
		n := testNode()
		h := Handle{n: n}

		var calls atomic.Int32
		init := func(entity.LaunchIntent) (entity.ServerID, error) {
			calls.Add(1)
			return 42, nil
		}

		const workers = 16
		ids := make([]entity.ServerID, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id, ok, err := h.IdentityOrInit(init)
				assert.NoError(t, err)
				assert.True(t, ok)
				ids[i] = id
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, id := range ids {
			assert.Equal(t, entity.ServerID(42), id)
		}
	})

	t.Run("failed launch is retryable", func(t *testing.T) {
		n := testNode()
		h := Handle{n: n}

		boom := errors.New("spawn failed")
		_, ok, err := h.IdentityOrInit(func(entity.LaunchIntent) (entity.ServerID, error) {
			return 0, boom
		})
		require.ErrorIs(t, err, boom)
		assert.False(t, ok)

		_, assigned := h.Identity()
		assert.False(t, assigned)

		id, ok, err := h.IdentityOrInit(func(entity.LaunchIntent) (entity.ServerID, error) {
			return 9, nil
		})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, entity.ServerID(9), id)
	})
}

func TestAdopt(t *testing.T) {
	n := testNode()
	require.True(t, n.adopt(3))
	assert.False(t, n.adopt(4))

	id, ok := n.identity()
	require.True(t, ok)
	assert.Equal(t, entity.ServerID(3), id)
}

func TestHandleExpiry(t *testing.T) {
	t.Run("zero handle", func(t *testing.T) {
		var h Handle
		_, ok := h.Name()
		assert.False(t, ok)
		_, ok = h.Root()
		assert.False(t, ok)
		_, ok = h.Identity()
		assert.False(t, ok)

		_, ok, err := h.IdentityOrInit(func(entity.LaunchIntent) (entity.ServerID, error) {
			t.Fatal("initializer must not run for an expired handle")
			return 0, nil
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("detached node", func(t *testing.T) {
		n := testNode()
		require.True(t, n.adopt(5))
		h := Handle{n: n}

		name, ok := h.Name()
		require.True(t, ok)
		assert.Equal(t, entity.ServerName("gopls"), name)

		n.detach()

		_, ok = h.Name()
		assert.False(t, ok)
		_, ok = h.Root()
		assert.False(t, ok)
		// The node still holds ID 5, but expired handles must not see it.
		_, ok = h.Identity()
		assert.False(t, ok)
		_, ok, err := h.IdentityOrInit(func(entity.LaunchIntent) (entity.ServerID, error) {
			return 6, nil
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLanguageNames(t *testing.T) {
	n := testNode()
	n.addLanguage("typescript")
	n.addLanguage("go")
	n.addLanguage("go")
	n.addLanguage("")

	assert.Equal(t, []entity.LanguageName{"go", "typescript"}, n.languageNames())
}
