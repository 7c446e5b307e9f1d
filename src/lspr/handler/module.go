package handler

import (
	controller "github.com/uber/lsp-router/src/lspr/controller"
	lsprdaemonctrl "github.com/uber/lsp-router/src/lspr/controller/lspr-daemon"
	lsprdaemon "github.com/uber/lsp-router/src/lspr/handler/lspr-daemon"
	"github.com/uber/lsp-router/src/lspr/internal/jsonrpcfx"
	"github.com/uber/lsp-router/src/lspr/repository/session"
	"go.uber.org/fx"
)

// Module provides the lspr-daemon server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(lsprdaemon.New),
	fx.Invoke(outputDaemonInfo),
	fx.Invoke(func(cm jsonrpcfx.ConnectionManager) {}),
	fx.Invoke(func(c lsprdaemonctrl.Controller) {}),
)
