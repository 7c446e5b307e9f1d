package lsprdaemon

import (
	"context"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/lsp-router/src/lspr/controller/lspr-daemon"
	"github.com/uber/lsp-router/src/lspr/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Custom JSON-RPC methods for use within this service.
const (
	// MethodRequestFullShutdown directs the server to shut down on the next JSON-RPC 'exit' method call.
	MethodRequestFullShutdown = "lspr/requestFullShutdown"
	// MethodStatus reports the running servers and the current tree nodes.
	MethodStatus = "lspr/status"
	// MethodRestartServer stops and relaunches every instance of one server.
	MethodRestartServer = "lspr/restartServer"
	// MethodShareServer registers a running server with another workspace folder.
	MethodShareServer = "lspr/shareServer"
)

type jsonRPCRouter struct {
	lsprdaemon controller.Controller
	uuid       uuid.UUID
	stats      tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	// Routing to each of the available methods in go.lsp.dev/protocol will occur here.
	// Results are passed back to reply to be returned to the client.
	switch req.Method() {
	// Lifecycle related methods.
	case protocol.MethodInitialize:
		return r.Initialize(ctx, reply, req)

	case protocol.MethodInitialized:
		return r.Initialized(ctx, reply, req)

	case protocol.MethodShutdown:
		return r.Shutdown(ctx, reply, req)

	case protocol.MethodExit:
		return r.Exit(ctx, reply, req)

	case MethodRequestFullShutdown:
		return r.RequestFullShutdown(ctx, reply, req)

	// Document related methods.
	case protocol.MethodTextDocumentDidOpen:
		return r.DidOpen(ctx, reply, req)

	case protocol.MethodTextDocumentDidClose:
		return r.DidClose(ctx, reply, req)

	// Workspace methods.
	case protocol.MethodWorkspaceDidChangeWatchedFiles:
		return r.DidChangeWatchedFiles(ctx, reply, req)

	case protocol.MethodWorkspaceDidChangeConfiguration:
		return r.DidChangeConfiguration(ctx, reply, req)

	case protocol.MethodWorkspaceDidChangeWorkspaceFolders:
		return r.DidChangeWorkspaceFolders(ctx, reply, req)

	case protocol.MethodWorkspaceExecuteCommand:
		return r.ExecuteCommand(ctx, reply, req)

	// Router methods.
	case MethodStatus:
		return r.Status(ctx, reply, req)

	case MethodRestartServer:
		return r.RestartServer(ctx, reply, req)

	case MethodShareServer:
		return r.ShareServer(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
