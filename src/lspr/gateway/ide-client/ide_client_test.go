package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/lsp-router/idl/mock/jsonrpc2mock"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/factory"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestRegisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := gateway{
		clients: make(map[uuid.UUID]protocol.Client),
		logger:  zap.NewNop(),
	}

	for i := 0; i < 10; i++ {
		id := factory.UUID()
		mockConn := jsonrpc2mock.NewMockConn(ctrl)
		var conn jsonrpc2.Conn = mockConn
		err := g.RegisterClient(ctx, id, &conn)
		assert.NoError(t, err)
	}

	assert.Len(t, g.clients, 10)
}

func TestDeregisterClient(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	g := gateway{
		clients: make(map[uuid.UUID]protocol.Client),
		logger:  zap.NewNop(),
	}

	for i := 0; i < 10; i++ {
		mockConn := jsonrpc2mock.NewMockConn(ctrl)
		var conn jsonrpc2.Conn = mockConn
		err := g.RegisterClient(ctx, factory.UUID(), &conn)
		require.NoError(t, err)
	}

	for key := range g.clients {
		assert.NotNil(t, g.clients[key])
		err := g.DeregisterClient(ctx, key)
		assert.NoError(t, err)
		assert.Nil(t, g.clients[key])
	}
	assert.Len(t, g.clients, 0)
}

func TestLogMessage(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	logMessageParams := &protocol.LogMessageParams{
		Message: "sample message",
		Type:    protocol.MessageTypeInfo,
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowLogMessage), gomock.Eq(logMessageParams)).Return(nil)
		err := g.LogMessage(ctx, logMessageParams)
		assert.NoError(t, err)
	})
	t.Run("notification failure", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowLogMessage), gomock.Eq(logMessageParams)).Return(errors.New("error"))
		err := g.LogMessage(ctx, logMessageParams)
		assert.Error(t, err)
	})
	t.Run("invalid context", func(t *testing.T) {
		ctx := context.Background()
		err := g.LogMessage(ctx, logMessageParams)
		assert.Error(t, err)
	})
	t.Run("client not found", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, factory.UUID())
		err := g.LogMessage(ctx, logMessageParams)
		assert.Error(t, err)
	})
}

func TestShowMessage(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)

	messageParams := &protocol.ShowMessageParams{
		Message: "sample message",
		Type:    protocol.MessageTypeInfo,
	}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowShowMessage), gomock.Eq(messageParams)).Return(nil)
		err := g.ShowMessage(ctx, messageParams)
		assert.NoError(t, err)
	})
	t.Run("notification failure", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Eq(ctx), gomock.Eq(protocol.MethodWindowShowMessage), gomock.Eq(messageParams)).Return(errors.New("error"))
		err := g.ShowMessage(ctx, messageParams)
		assert.Error(t, err)
	})
	t.Run("invalid context", func(t *testing.T) {
		ctx := context.Background()
		err := g.ShowMessage(ctx, messageParams)
		assert.Error(t, err)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func getTestGateway(t *testing.T) (Gateway, *jsonrpc2mock.MockConn, context.Context) {
	id := factory.UUID()
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)
	ctrl := gomock.NewController(t)

	mockConn := jsonrpc2mock.NewMockConn(ctrl)
	var conn jsonrpc2.Conn = mockConn
	g := New(zap.NewNop())
	g.RegisterClient(ctx, id, &conn)
	return g, mockConn, ctx
}
