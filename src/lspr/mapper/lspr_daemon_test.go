package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/factory"
	"github.com/uber/lsp-router/src/lspr/model"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
)

func TestSessionToModel(t *testing.T) {
	conn := jsonrpc2.NewConn(nil)
	f := &entity.Session{
		UUID:             factory.UUID(),
		InitializeParams: &protocol.InitializeParams{},
		Conn:             &conn,
		WorkspaceFolders: []entity.WorkspaceFolderID{"/workspace/a", "/workspace/b"},
		Env:              []string{"key=val"},
		RouterEnabled:    true,
	}
	m := SessionToModel(f)
	assert.Equal(t, f.UUID, m.UUID)
	assert.Equal(t, f.InitializeParams, m.InitializeParams)
	assert.Equal(t, f.Conn, m.Conn)
	assert.Equal(t, []string{"/workspace/a", "/workspace/b"}, m.WorkspaceFolders)
	assert.Equal(t, f.Env, m.Env)
	assert.Equal(t, f.RouterEnabled, m.RouterEnabled)
}

func TestModelToSession(t *testing.T) {
	t.Run("valid model mapping", func(t *testing.T) {
		conn := jsonrpc2.NewConn(nil)
		m := &model.Session{
			UUID:             factory.UUID(),
			InitializeParams: &protocol.InitializeParams{},
			Conn:             &conn,
			WorkspaceFolders: []string{"/workspace/a"},
			Env:              []string{"key=val"},
			RouterEnabled:    true,
		}
		f, err := ModelToSession(m)
		assert.NoError(t, err)
		assert.Equal(t, m.UUID, f.UUID)
		assert.Equal(t, m.InitializeParams, f.InitializeParams)
		assert.Equal(t, m.Conn, f.Conn)
		assert.Equal(t, []entity.WorkspaceFolderID{"/workspace/a"}, f.WorkspaceFolders)
		assert.Equal(t, m.Env, f.Env)
		assert.Equal(t, m.RouterEnabled, f.RouterEnabled)
	})
}

func TestUUIDToSession(t *testing.T) {
	u := factory.UUID()
	m := UUIDToSession(u, nil)
	assert.Equal(t, u, m.UUID)
	assert.True(t, m.RouterEnabled)
}

func TestContextToSessionUUID(t *testing.T) {
	t.Run("uuid present", func(t *testing.T) {
		u := factory.UUID()
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, u)
		result, err := ContextToSessionUUID(ctx)
		assert.NoError(t, err)
		assert.Equal(t, u, result)
	})

	t.Run("uuid missing", func(t *testing.T) {
		_, err := ContextToSessionUUID(context.Background())
		assert.Error(t, err)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
