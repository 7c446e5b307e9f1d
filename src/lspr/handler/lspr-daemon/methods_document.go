package lsprdaemon

import (
	"context"

	"github.com/uber/lsp-router/src/lspr/mapper"
	"go.lsp.dev/jsonrpc2"
)

// DidOpen notifies the server that a document was opened, resolving and launching its language servers.
func (r *jsonRPCRouter) DidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidOpenTextDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.lsprdaemon.DidOpen(ctx, params)
	return reply(ctx, nil, err)
}

// DidClose notifies the server that a document was closed.
func (r *jsonRPCRouter) DidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidCloseTextDocumentParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.lsprdaemon.DidClose(ctx, params)
	return reply(ctx, nil, err)
}
