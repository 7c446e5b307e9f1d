package langsettings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/lsp-router/src/lspr/entity"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const _sampleConfig = `
languages:
  go:
    servers: [gopls, "..."]
  scala:
    enabled: false
  typescript:
    servers: [ts-server]
servers:
  gopls:
    binary:
      path: /usr/bin/gopls
    settings:
      staticcheck: true
  ts-server:
    settings:
      maxTsServerMemory: 4096
`

func newTestResolver(t *testing.T, yamlText string) Resolver {
	provider, err := config.NewYAML(config.Source(strings.NewReader(yamlText)))
	require.NoError(t, err)

	r, err := New(Params{
		Config: provider,
		Logger: zap.NewNop().Sugar(),
	})
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		r := newTestResolver(t, _sampleConfig)
		assert.Equal(t, _defaultOverrideFileName, r.OverrideFileName())
	})

	t.Run("empty config", func(t *testing.T) {
		r := newTestResolver(t, "a: b")
		got := r.LanguageSettings(entity.SettingsLocation{}, "go")
		assert.True(t, got.Enabled)
		assert.Equal(t, []entity.ServerName{entity.RestServersMarker}, got.Servers)
	})

	t.Run("override file name from config", func(t *testing.T) {
		r := newTestResolver(t, "router:\n  overrideFileName: .custom.yaml\n")
		assert.Equal(t, ".custom.yaml", r.OverrideFileName())
	})

	t.Run("malformed languages section", func(t *testing.T) {
		provider, err := config.NewYAML(config.Source(strings.NewReader("languages: 5\n")))
		require.NoError(t, err)
		_, err = New(Params{Config: provider, Logger: zap.NewNop().Sugar()})
		assert.Error(t, err)
	})
}

func TestLanguageSettings(t *testing.T) {
	r := newTestResolver(t, _sampleConfig)
	loc := entity.SettingsLocation{Folder: entity.NewWorkspaceFolderID("/ws/a")}

	tests := []struct {
		name        string
		lang        entity.LanguageName
		wantEnabled bool
		wantServers []entity.ServerName
	}{
		{
			name:        "configured with rest marker",
			lang:        "go",
			wantEnabled: true,
			wantServers: []entity.ServerName{"gopls", entity.RestServersMarker},
		},
		{
			name:        "disabled language",
			lang:        "scala",
			wantEnabled: false,
			wantServers: []entity.ServerName{entity.RestServersMarker},
		},
		{
			name:        "explicit server list",
			lang:        "typescript",
			wantEnabled: true,
			wantServers: []entity.ServerName{"ts-server"},
		},
		{
			name:        "unconfigured language",
			lang:        "python",
			wantEnabled: true,
			wantServers: []entity.ServerName{entity.RestServersMarker},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.LanguageSettings(loc, tt.lang)
			assert.Equal(t, tt.wantEnabled, got.Enabled)
			assert.Equal(t, tt.wantServers, got.Servers)
		})
	}
}

func TestServerSettings(t *testing.T) {
	r := newTestResolver(t, _sampleConfig)
	loc := entity.SettingsLocation{Folder: entity.NewWorkspaceFolderID("/ws/a")}

	t.Run("configured server", func(t *testing.T) {
		got := r.ServerSettings(loc, "gopls")
		require.NotNil(t, got.Binary)
		assert.Equal(t, "/usr/bin/gopls", got.Binary.Path)
		assert.Equal(t, true, got.Settings["staticcheck"])
	})

	t.Run("unconfigured server", func(t *testing.T) {
		got := r.ServerSettings(loc, "clangd")
		assert.True(t, got.Equal(entity.ServerConfig{}))
	})
}

func TestWorkspaceOverrides(t *testing.T) {
	folderA := entity.NewWorkspaceFolderID("/ws/a")
	folderB := entity.NewWorkspaceFolderID("/ws/b")
	locA := entity.SettingsLocation{Folder: folderA}
	locB := entity.SettingsLocation{Folder: folderB}

	t.Run("language override is folder scoped", func(t *testing.T) {
		r := newTestResolver(t, _sampleConfig)
		require.NoError(t, r.ApplyWorkspaceOverrides(folderA, []byte("languages:\n  go:\n    enabled: false\n")))

		assert.False(t, r.LanguageSettings(locA, "go").Enabled)
		assert.True(t, r.LanguageSettings(locB, "go").Enabled)
		// Keys the override does not set fall through to the base layer.
		assert.Equal(t, []entity.ServerName{"gopls", entity.RestServersMarker}, r.LanguageSettings(locA, "go").Servers)
	})

	t.Run("server override replaces whole entry", func(t *testing.T) {
		r := newTestResolver(t, _sampleConfig)
		require.NoError(t, r.ApplyWorkspaceOverrides(folderA, []byte("servers:\n  gopls:\n    settings:\n      usePlaceholders: true\n")))

		got := r.ServerSettings(locA, "gopls")
		assert.Nil(t, got.Binary)
		assert.Equal(t, true, got.Settings["usePlaceholders"])
		assert.Nil(t, got.Settings["staticcheck"])

		base := r.ServerSettings(locB, "gopls")
		assert.Equal(t, true, base.Settings["staticcheck"])
	})

	t.Run("drop restores base", func(t *testing.T) {
		r := newTestResolver(t, _sampleConfig)
		require.NoError(t, r.ApplyWorkspaceOverrides(folderA, []byte("languages:\n  go:\n    enabled: false\n")))
		r.DropWorkspaceOverrides(folderA)
		assert.True(t, r.LanguageSettings(locA, "go").Enabled)
	})

	t.Run("empty input clears", func(t *testing.T) {
		r := newTestResolver(t, _sampleConfig)
		require.NoError(t, r.ApplyWorkspaceOverrides(folderA, []byte("languages:\n  go:\n    enabled: false\n")))
		require.NoError(t, r.ApplyWorkspaceOverrides(folderA, nil))
		assert.True(t, r.LanguageSettings(locA, "go").Enabled)
	})

	t.Run("malformed input rejected", func(t *testing.T) {
		r := newTestResolver(t, _sampleConfig)
		require.NoError(t, r.ApplyWorkspaceOverrides(folderA, []byte("languages:\n  go:\n    enabled: false\n")))
		err := r.ApplyWorkspaceOverrides(folderA, []byte(":::"))
		assert.Error(t, err)
		// A bad file keeps the last applied overrides.
		assert.False(t, r.LanguageSettings(locA, "go").Enabled)
	})
}
