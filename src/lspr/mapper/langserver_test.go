package mapper

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/lsp-router/src/lspr/entity"
)

func TestIntentToCommand(t *testing.T) {
	adapter := entity.Adapter{
		Name:    "gopls",
		Command: "gopls",
		Args:    []string{"serve"},
	}

	t.Run("adapter defaults", func(t *testing.T) {
		path, args, env := IntentToCommand(entity.LaunchIntent{Server: "gopls"}, adapter)
		assert.Equal(t, "gopls", path)
		assert.Equal(t, []string{"serve"}, args)
		assert.Equal(t, os.Environ(), env)
	})

	t.Run("binary override replaces command and args", func(t *testing.T) {
		intent := entity.LaunchIntent{
			Server: "gopls",
			Config: entity.ServerConfig{
				Binary: &entity.BinaryConfig{
					Path: "/opt/gopls/gopls",
					Args: []string{"-rpc.trace"},
				},
			},
		}
		path, args, _ := IntentToCommand(intent, adapter)
		assert.Equal(t, "/opt/gopls/gopls", path)
		assert.Equal(t, []string{"-rpc.trace"}, args)
	})

	t.Run("override env extends daemon env in key order", func(t *testing.T) {
		intent := entity.LaunchIntent{
			Server: "gopls",
			Config: entity.ServerConfig{
				Binary: &entity.BinaryConfig{
					Env: map[string]string{
						"GOFLAGS": "-mod=readonly",
						"CGO":     "0",
					},
				},
			},
		}
		path, args, env := IntentToCommand(intent, adapter)
		assert.Equal(t, "gopls", path)
		assert.Equal(t, []string{"serve"}, args)
		require.GreaterOrEqual(t, len(env), 2)
		assert.Equal(t, []string{"CGO=0", "GOFLAGS=-mod=readonly"}, env[len(env)-2:])
	})
}

func TestIntentToInitializeParams(t *testing.T) {
	intent := entity.LaunchIntent{
		Server: "gopls",
		Root:   entity.ProjectPath{Folder: "/ws/app", Rel: "backend"},
		Config: entity.ServerConfig{
			InitializationOptions: map[string]any{"usePlaceholders": true},
		},
	}

	params := IntentToInitializeParams(intent)
	assert.EqualValues(t, os.Getpid(), params.ProcessID)
	require.NotNil(t, params.ClientInfo)
	assert.Equal(t, "lspr-daemon", params.ClientInfo.Name)
	assert.EqualValues(t, "file:///ws/app/backend", params.RootURI)
	require.Len(t, params.WorkspaceFolders, 1)
	assert.Equal(t, "file:///ws/app/backend", params.WorkspaceFolders[0].URI)
	assert.Equal(t, "backend", params.WorkspaceFolders[0].Name)
	assert.Equal(t, map[string]any{"usePlaceholders": true}, params.InitializationOptions)
}

func TestIntentToInitializeParamsNoOptions(t *testing.T) {
	intent := entity.LaunchIntent{
		Server: "gopls",
		Root:   entity.ProjectPath{Folder: "/ws/app"},
	}

	params := IntentToInitializeParams(intent)
	assert.EqualValues(t, "file:///ws/app", params.RootURI)
	assert.Nil(t, params.InitializationOptions)
	require.Len(t, params.WorkspaceFolders, 1)
	assert.Equal(t, "app", params.WorkspaceFolders[0].Name)
}
