package controller

import (
	"github.com/uber/lsp-router/src/lspr/controller/langservers"
	lsprdaemon "github.com/uber/lsp-router/src/lspr/controller/lspr-daemon"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(lsprdaemon.New),
	langservers.Module,
)
