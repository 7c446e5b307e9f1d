// Package broadcast fans notifications out to every IDE session attached to
// a workspace folder. Outbound gateway calls are routed per session, so each
// send runs under a context carrying that session's UUID.
package broadcast

import (
	"context"
	"fmt"

	"github.com/uber/lsp-router/src/lspr/entity"
	ideclient "github.com/uber/lsp-router/src/lspr/gateway/ide-client"
	"github.com/uber/lsp-router/src/lspr/repository/session"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Broadcaster sends one notification to all sessions over a folder.
type Broadcaster interface {
	// ShowMessageToFolder surfaces a message in every IDE session that has
	// the folder open.
	ShowMessageToFolder(ctx context.Context, folder entity.WorkspaceFolderID, msgType protocol.MessageType, message string) error
	// LogMessageToFolder writes a log line to every IDE session that has
	// the folder open.
	LogMessageToFolder(ctx context.Context, folder entity.WorkspaceFolderID, msgType protocol.MessageType, message string) error
}

// Params define the dependencies of the broadcaster.
type Params struct {
	fx.In

	Sessions   session.Repository
	IdeGateway ideclient.Gateway
	Logger     *zap.SugaredLogger
}

type broadcaster struct {
	sessions   session.Repository
	ideGateway ideclient.Gateway
	logger     *zap.SugaredLogger
}

// New creates a Broadcaster.
func New(p Params) Broadcaster {
	return &broadcaster{
		sessions:   p.Sessions,
		ideGateway: p.IdeGateway,
		logger:     p.Logger,
	}
}

func (b *broadcaster) ShowMessageToFolder(ctx context.Context, folder entity.WorkspaceFolderID, msgType protocol.MessageType, message string) error {
	params := &protocol.ShowMessageParams{Type: msgType, Message: message}
	return b.fanOut(ctx, folder, func(sCtx context.Context) error {
		return b.ideGateway.ShowMessage(sCtx, params)
	})
}

func (b *broadcaster) LogMessageToFolder(ctx context.Context, folder entity.WorkspaceFolderID, msgType protocol.MessageType, message string) error {
	params := &protocol.LogMessageParams{Type: msgType, Message: message}
	return b.fanOut(ctx, folder, func(sCtx context.Context) error {
		return b.ideGateway.LogMessage(sCtx, params)
	})
}

// fanOut runs send once per session over the folder, each under a context
// carrying that session's UUID. Failures are collected, not short-circuited.
func (b *broadcaster) fanOut(ctx context.Context, folder entity.WorkspaceFolderID, send func(ctx context.Context) error) error {
	sessions, err := b.sessions.GetAllFromWorkspaceFolder(ctx, folder)
	if err != nil {
		return err
	}

	var errs error
	for _, s := range sessions {
		sCtx := context.WithValue(ctx, entity.SessionContextKey, s.UUID)
		if err := send(sCtx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("notifying session %s: %w", s.UUID, err))
		}
	}
	return errs
}
