// Package gateway provides outbound integrations for the daemon.
package gateway

import (
	"github.com/uber/lsp-router/src/lspr/gateway/langserver"
	"go.uber.org/fx"
)

// Module provides all gateways for the service.
var Module = fx.Options(
	langserver.Module,
)
