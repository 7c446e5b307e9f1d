// Package lsprdaemon implements the lspr-daemon service's JSON-RPC handlers.
package lsprdaemon

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/lsp-router/src/lspr/controller/lspr-daemon"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/jsonrpcfx"
	"go.lsp.dev/jsonrpc2"
)

// New constructs the lspr-daemon connection manager and registers it with the
// JSON-RPC module, so every inbound connection gets its own session and router.
func New(ctrl controller.Controller, jsonrpcmod jsonrpcfx.JSONRPCModule, stats tally.Scope) (jsonrpcfx.ConnectionManager, error) {
	c := jsonRPCConnectionManager{
		ctrl:  ctrl,
		stats: stats.SubScope("json_rpc"),
	}
	if err := jsonrpcmod.RegisterConnectionManager(&c); err != nil {
		return nil, fmt.Errorf("registering connection manager: %w", err)
	}

	return &c, nil
}

type jsonRPCConnectionManager struct {
	ctrl  controller.Controller
	stats tally.Scope
}

// NewConnection will store a new connection and return a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router jsonrpcfx.Router, err error) {
	id, err := c.ctrl.InitSession(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	r := jsonRPCRouter{
		lsprdaemon: c.ctrl,
		uuid:       id,
		stats:      c.stats,
	}

	return &r, nil
}

// RemoveConnection cleans up a closed connection.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	// Ensure session is removed even if no Exit call has been received.
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	c.ctrl.EndSession(ctx, id)
}
