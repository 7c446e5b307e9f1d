package serverinfofile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uber/lsp-router/idl/mock/configmock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycleMock := fxtest.NewLifecycle(t)

	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{
			name: "all required params are present",
			params: Params{
				Lifecycle: lifecycleMock,
				Config:    newMockConfigProvider(ctrl, "valid"),
				Logger:    zap.NewNop().Sugar(),
			},
			wantErr: false,
		},
		{
			name: "config processing error",
			params: Params{
				Lifecycle: lifecycleMock,
				Config:    newMockConfigProvider(ctrl, "missingKey"),
				Logger:    zap.NewNop().Sugar(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOnStop(t *testing.T) {
	t.Run("file removed", func(t *testing.T) {
		tempFile, err := os.CreateTemp(t.TempDir(), "test")
		assert.NoError(t, err)

		m := module{
			logger:   zap.NewNop().Sugar(),
			infofile: tempFile.Name(),
		}

		err = m.OnStop(context.Background())
		assert.NoError(t, err)
		_, err = os.Stat(tempFile.Name())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("file never written", func(t *testing.T) {
		m := module{
			logger:   zap.NewNop().Sugar(),
			infofile: filepath.Join(t.TempDir(), "never-created"),
		}

		assert.NoError(t, m.OnStop(context.Background()))
	})

	t.Run("file removal error", func(t *testing.T) {
		// A file inside a read only directory forces an error from os.Remove.
		tempDir := t.TempDir()
		tempFile, err := os.CreateTemp(tempDir, "test")
		assert.NoError(t, err)
		tempFile.Close()

		assert.NoError(t, os.Chmod(tempDir, 0555))
		t.Cleanup(func() {
			os.Chmod(tempDir, 0755)
		})

		m := module{
			logger:   zap.NewNop().Sugar(),
			infofile: tempFile.Name(),
		}

		assert.Error(t, m.OnStop(context.Background()))
	})
}

func TestUpdateField(t *testing.T) {
	t.Run("multiple successful updates", func(t *testing.T) {
		tempFile, err := os.CreateTemp(t.TempDir(), "test")
		assert.NoError(t, err)

		m := module{
			infofile:     tempFile.Name(),
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}

		// Make several step by step updates and confirm file contents are as expected
		steps := []struct {
			key        string
			value      string
			expectJSON string
		}{
			{
				key:        "key1",
				value:      "value1",
				expectJSON: `{"key1":"value1"}`,
			},
			{
				key:        "key1",
				value:      "value2",
				expectJSON: `{"key1":"value2"}`,
			},
			{
				key:        "key2",
				value:      "value2",
				expectJSON: `{"key1":"value2","key2":"value2"}`,
			},
		}

		for _, step := range steps {
			err = m.UpdateField(step.key, step.value)
			assert.NoError(t, err)
			assert.Equal(t, step.value, m.fileContents[step.key])
			contents, err := os.ReadFile(tempFile.Name())
			assert.NoError(t, err)
			assert.Equal(t, step.expectJSON, string(contents))
		}
	})

	t.Run("file write failure", func(t *testing.T) {
		// A directory instead of a file forces a write failure.
		m := module{
			infofile:     t.TempDir(),
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		assert.Error(t, m.UpdateField("key", "value"))
	})
}

func TestRemoveField(t *testing.T) {
	tempFile, err := os.CreateTemp(t.TempDir(), "test")
	assert.NoError(t, err)

	m := module{
		infofile:     tempFile.Name(),
		logger:       zap.NewNop().Sugar(),
		fileContents: make(map[string]string),
	}

	assert.NoError(t, m.UpdateField("server:1", "gopls"))
	assert.NoError(t, m.UpdateField("lsp-address", ":27883"))

	assert.NoError(t, m.RemoveField("server:1"))
	contents, err := os.ReadFile(tempFile.Name())
	assert.NoError(t, err)
	assert.Equal(t, `{"lsp-address":":27883"}`, string(contents))

	// Removing an unknown key is a no-op.
	assert.NoError(t, m.RemoveField("server:99"))
}

func TestProcessConfig(t *testing.T) {
	tests := []struct {
		name        string
		configKey   string
		wantErr     bool
		errorString string
	}{
		{
			name:      "valid configuration",
			configKey: "valid",
			wantErr:   false,
		},
		{
			name:        "missing path key",
			configKey:   "missingKey",
			wantErr:     true,
			errorString: "missing field \"serverInfoFilePath\" in config",
		},
		{
			name:        "missing path value",
			configKey:   "missingValue",
			wantErr:     true,
			errorString: "missing field \"serverInfoFilePath\" in config",
		},
		{
			name:        "incorrectly formatted entry",
			configKey:   "formatProblem",
			wantErr:     true,
			errorString: "getting config field \"serverInfoFilePath\": yaml: unmarshal errors:\n  line 1: cannot unmarshal !!map into string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gomockCtrl := gomock.NewController(t)
			cfg := newMockConfigProvider(gomockCtrl, tt.configKey)

			m := module{
				logger: zap.NewNop().Sugar(),
			}
			err := m.processConfig(cfg)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errorString, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func newMockConfigProvider(ctrl *gomock.Controller, configKey string) config.Provider {
	configs := map[string]string{
		"valid": `
serverInfoFilePath: /my/sample/path/.lsprd
`,
		"missingKey": `
otherKey: /my/sample/path/.lsprd
`,
		"missingValue": `
serverInfoFilePath:
otherKey: sample
`,
		"formatProblem": `
serverInfoFilePath:
  infofile: /sample/.file
  address:
    key: val`,
	}

	yamlProv, _ := config.NewYAML(config.Source(strings.NewReader(configs[configKey])))
	configProviderMock := configmock.NewMockProvider(ctrl)
	configProviderMock.EXPECT().Get(_configKeyInfoFile).Return(yamlProv.Get(_configKeyInfoFile)).AnyTimes()
	return configProviderMock
}
