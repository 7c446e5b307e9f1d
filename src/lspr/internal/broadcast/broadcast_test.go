package broadcast

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/factory"
	"github.com/uber/lsp-router/src/lspr/gateway/ide-client/ideclientmock"
	"github.com/uber/lsp-router/src/lspr/mapper"
	"github.com/uber/lsp-router/src/lspr/repository/session/repositorymock"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _folder = entity.WorkspaceFolderID("/ws/app")

func newTestBroadcaster(t *testing.T) (Broadcaster, *repositorymock.MockRepository, *ideclientmock.MockGateway) {
	ctrl := gomock.NewController(t)
	sessions := repositorymock.NewMockRepository(ctrl)
	ideGateway := ideclientmock.NewMockGateway(ctrl)
	b := New(Params{
		Sessions:   sessions,
		IdeGateway: ideGateway,
		Logger:     zap.NewNop().Sugar(),
	})
	return b, sessions, ideGateway
}

func folderSessions() []*entity.Session {
	return []*entity.Session{
		{UUID: factory.UUID(), WorkspaceFolders: []entity.WorkspaceFolderID{_folder}},
		{UUID: factory.UUID(), WorkspaceFolders: []entity.WorkspaceFolderID{_folder, "/ws/lib"}},
	}
}

func TestShowMessageToFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to each session with its own context", func(t *testing.T) {
		b, sessions, ideGateway := newTestBroadcaster(t)
		all := folderSessions()
		sessions.EXPECT().GetAllFromWorkspaceFolder(gomock.Any(), _folder).Return(all, nil)

		seen := make(map[uuid.UUID]bool)
		ideGateway.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).DoAndReturn(
			func(sCtx context.Context, params *protocol.ShowMessageParams) error {
				id, err := mapper.ContextToSessionUUID(sCtx)
				require.NoError(t, err)
				seen[id] = true
				assert.Equal(t, "servers restarted", params.Message)
				assert.Equal(t, protocol.MessageTypeInfo, params.Type)
				return nil
			}).Times(2)

		err := b.ShowMessageToFolder(ctx, _folder, protocol.MessageTypeInfo, "servers restarted")
		assert.NoError(t, err)
		assert.True(t, seen[all[0].UUID])
		assert.True(t, seen[all[1].UUID])
	})

	t.Run("one failing session does not block the rest", func(t *testing.T) {
		b, sessions, ideGateway := newTestBroadcaster(t)
		sessions.EXPECT().GetAllFromWorkspaceFolder(gomock.Any(), _folder).Return(folderSessions(), nil)

		gomock.InOrder(
			ideGateway.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).Return(errors.New("sample")),
			ideGateway.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).Return(nil),
		)

		err := b.ShowMessageToFolder(ctx, _folder, protocol.MessageTypeWarning, "sample")
		assert.Error(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		b, sessions, _ := newTestBroadcaster(t)
		sessions.EXPECT().GetAllFromWorkspaceFolder(gomock.Any(), _folder).Return(nil, errors.New("sample"))

		err := b.ShowMessageToFolder(ctx, _folder, protocol.MessageTypeInfo, "sample")
		assert.Error(t, err)
	})

	t.Run("no sessions over the folder", func(t *testing.T) {
		b, sessions, _ := newTestBroadcaster(t)
		sessions.EXPECT().GetAllFromWorkspaceFolder(gomock.Any(), _folder).Return([]*entity.Session{}, nil)

		err := b.ShowMessageToFolder(ctx, _folder, protocol.MessageTypeInfo, "sample")
		assert.NoError(t, err)
	})
}

func TestLogMessageToFolder(t *testing.T) {
	ctx := context.Background()
	b, sessions, ideGateway := newTestBroadcaster(t)
	all := folderSessions()
	sessions.EXPECT().GetAllFromWorkspaceFolder(gomock.Any(), _folder).Return(all, nil)

	seen := make(map[uuid.UUID]bool)
	ideGateway.EXPECT().LogMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(sCtx context.Context, params *protocol.LogMessageParams) error {
			id, err := mapper.ContextToSessionUUID(sCtx)
			require.NoError(t, err)
			seen[id] = true
			assert.Equal(t, "stopping gopls (1)", params.Message)
			return nil
		}).Times(2)

	err := b.LogMessageToFolder(ctx, _folder, protocol.MessageTypeLog, "stopping gopls (1)")
	assert.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
