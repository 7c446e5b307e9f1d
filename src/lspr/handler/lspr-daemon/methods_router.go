package lsprdaemon

import (
	"context"

	"github.com/uber/lsp-router/src/lspr/mapper"
	"go.lsp.dev/jsonrpc2"
)

// Status reports the running servers and the current resolution tree nodes.
func (r *jsonRPCRouter) Status(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result, err := r.lsprdaemon.Status(ctx)
	if err != nil {
		return reply(ctx, nil, err)
	}

	return reply(ctx, result, nil)
}

// RestartServer stops every running instance of the named server and relaunches replacements.
func (r *jsonRPCRouter) RestartServer(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToRestartServerParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.lsprdaemon.RestartServer(ctx, params)
	return reply(ctx, result, err)
}

// ShareServer registers a server running at one workspace folder with another folder.
func (r *jsonRPCRouter) ShareServer(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToShareServerParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.lsprdaemon.ShareServer(ctx, params)
	return reply(ctx, nil, err)
}
