package app

import (
	"context"
	"time"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/lsp-router/src/lspr/gateway"
	notifier "github.com/uber/lsp-router/src/lspr/gateway/ide-client"
	"github.com/uber/lsp-router/src/lspr/handler"
	"github.com/uber/lsp-router/src/lspr/internal/adapterregistry"
	"github.com/uber/lsp-router/src/lspr/internal/broadcast"
	"github.com/uber/lsp-router/src/lspr/internal/clock"
	"github.com/uber/lsp-router/src/lspr/internal/core"
	"github.com/uber/lsp-router/src/lspr/internal/executor"
	"github.com/uber/lsp-router/src/lspr/internal/fs"
	"github.com/uber/lsp-router/src/lspr/internal/jsonrpcfx"
	"github.com/uber/lsp-router/src/lspr/internal/langsettings"
	"github.com/uber/lsp-router/src/lspr/internal/manifest"
	"github.com/uber/lsp-router/src/lspr/internal/serverinfofile"
	"github.com/uber/lsp-router/src/lspr/repository/servertree"
	"go.uber.org/fx"
)

// Module defines the lspr-daemon application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	executor.Module,
	serverinfofile.Module,
	adapterregistry.Module,
	langsettings.Module,
	manifest.Module,
	broadcast.Module,
	servertree.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(notifier.New),
	fx.Provide(clock.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "lspr-daemon",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
