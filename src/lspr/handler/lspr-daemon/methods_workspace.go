package lsprdaemon

import (
	"context"

	"github.com/uber/lsp-router/src/lspr/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) DidChangeWatchedFiles(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidChangeWatchedFilesParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.lsprdaemon.DidChangeWatchedFiles(ctx, params)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) DidChangeConfiguration(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidChangeConfigurationParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.lsprdaemon.DidChangeConfiguration(ctx, params)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) DidChangeWorkspaceFolders(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToDidChangeWorkspaceFoldersParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.lsprdaemon.DidChangeWorkspaceFolders(ctx, params)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) ExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToExecuteCommandParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	result, err := r.lsprdaemon.ExecuteCommand(ctx, params)
	return reply(ctx, result, err)
}
