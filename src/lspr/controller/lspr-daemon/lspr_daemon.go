// Package lsprdaemon implements the lspr-daemon business logic.
package lsprdaemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber/lsp-router/src/lspr/controller/langservers"
	"github.com/uber/lsp-router/src/lspr/entity"
	ideclient "github.com/uber/lsp-router/src/lspr/gateway/ide-client"
	"github.com/uber/lsp-router/src/lspr/internal/adapterregistry"
	"github.com/uber/lsp-router/src/lspr/internal/langsettings"
	"github.com/uber/lsp-router/src/lspr/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_serverName = "LSP Router"

	// Configuration keys
	_idleTimeoutMinutesKey = "idleTimeoutMinutes"
)

// Commands accepted via workspace/executeCommand.
const (
	// CommandStatus reports the running servers and tree nodes.
	CommandStatus = "lspr.status"
	// CommandRestartServer stops and relaunches every instance of one server.
	CommandRestartServer = "lspr.restartServer"
	// CommandShareServer registers a running server with another workspace folder.
	CommandShareServer = "lspr.shareServer"
)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// LSP Methods defined per protocol.
	Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context, params *protocol.InitializedParams) (err error)
	Shutdown(ctx context.Context) (err error)
	Exit(ctx context.Context) error

	// Document related methods.
	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error

	// Workspace related methods.
	DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error
	DidChangeConfiguration(ctx context.Context, params *protocol.DidChangeConfigurationParams) error
	DidChangeWorkspaceFolders(ctx context.Context, params *protocol.DidChangeWorkspaceFoldersParams) error
	ExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (interface{}, error)

	// Router specific methods, reachable both as custom JSON-RPC methods and
	// as executeCommand commands.
	Status(ctx context.Context) (*entity.RouterStatus, error)
	RestartServer(ctx context.Context, params *entity.RestartServerParams) ([]entity.ServerRef, error)
	ShareServer(ctx context.Context, params *entity.ShareServerParams) error

	// Custom methods for use within this service.
	RequestFullShutdown(ctx context.Context) error
	InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, uuid uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Adapters    adapterregistry.Registry
	Config      config.Provider
	IdeGateway  ideclient.Gateway
	LangServers langservers.Controller
	Logger      *zap.SugaredLogger
	Sessions    session.Repository
	Settings    langsettings.Resolver
	Shutdowner  fx.Shutdowner
}

type controller struct {
	adapters    adapterregistry.Registry
	ideGateway  ideclient.Gateway
	langServers langservers.Controller
	logger      *zap.SugaredLogger
	sessions    session.Repository
	settings    langsettings.Resolver
	shutdowner  fx.Shutdowner

	fullShutdown       bool
	idleTimer          *time.Timer
	idleTimerMu        sync.Mutex
	idleTimeoutMinutes time.Duration
}

// New constructs a new top-level controller for the service.
func New(p Params) (Controller, error) {
	ctx := context.Background()

	var timeoutMinutesRaw int64
	if err := p.Config.Get(_idleTimeoutMinutesKey).Populate(&timeoutMinutesRaw); err != nil || timeoutMinutesRaw == 0 {
		return nil, fmt.Errorf("unable to get idle timeout from config: %w", err)
	}

	c := &controller{
		adapters:    p.Adapters,
		ideGateway:  p.IdeGateway,
		langServers: p.LangServers,
		logger:      p.Logger,
		sessions:    p.Sessions,
		settings:    p.Settings,
		shutdowner:  p.Shutdowner,

		idleTimeoutMinutes: time.Duration(timeoutMinutesRaw) * time.Minute,
	}
	c.refreshIdleTimer(ctx)

	return c, nil
}
