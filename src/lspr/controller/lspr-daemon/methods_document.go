package lsprdaemon

import (
	"context"
	"fmt"

	"github.com/uber/lsp-router/src/lspr/entity"
	"go.lsp.dev/protocol"
)

// DidOpen resolves and launches the language servers for a newly opened document.
func (c *controller) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}
	if !s.RouterEnabled {
		return nil
	}

	lang := entity.LanguageName(params.TextDocument.LanguageID)
	refs, err := c.langServers.EnsureForDocument(ctx, s, params.TextDocument.URI, lang)
	if err != nil {
		return fmt.Errorf("ensuring servers for %q: %w", params.TextDocument.URI, err)
	}

	c.logger.Debugw("document opened", "uri", params.TextDocument.URI, "language", lang, "servers", len(refs))
	return nil
}

// DidClose drops the session's claim on a closed document.
func (c *controller) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}
	if !s.RouterEnabled {
		return nil
	}

	c.langServers.DocumentClosed(ctx, s, params.TextDocument.URI)
	return nil
}
