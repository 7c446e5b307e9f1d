package lsprdaemon

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/errors"
	"github.com/uber/lsp-router/src/lspr/mapper"
	"go.lsp.dev/protocol"
)

// DidChangeWatchedFiles rebases the resolution tree when a project manifest
// appears, changes or disappears. Other file events are ignored.
func (c *controller) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	if !c.manifestTouched(params.Changes) {
		return nil
	}

	stopped, err := c.langServers.RebaseAll(ctx)
	if err != nil {
		return fmt.Errorf("rebasing after manifest change: %w", err)
	}
	c.logger.Infow("rebased after manifest change", "stopped", len(stopped))
	return nil
}

// DidChangeConfiguration replaces the session folders' setting overrides with
// the pushed settings and rebases. Servers whose effective configuration is
// unchanged keep running.
func (c *controller) DidChangeConfiguration(ctx context.Context, params *protocol.DidChangeConfigurationParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}
	if !s.RouterEnabled {
		return nil
	}

	// YAML is a superset of JSON, so the pushed settings reuse the override
	// file schema as-is.
	raw, err := json.Marshal(params.Settings)
	if err != nil {
		return fmt.Errorf("encoding pushed settings: %w", err)
	}

	for _, folder := range s.WorkspaceFolders {
		if err := c.settings.ApplyWorkspaceOverrides(folder, raw); err != nil {
			return fmt.Errorf("applying settings to %q: %w", folder, err)
		}
	}

	if _, err := c.langServers.RebaseAll(ctx); err != nil {
		return fmt.Errorf("rebasing after configuration change: %w", err)
	}
	return nil
}

// DidChangeWorkspaceFolders updates the session's folder set and rebases so
// servers rooted in removed folders are reported for shutdown.
func (c *controller) DidChangeWorkspaceFolders(ctx context.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return fmt.Errorf("getting session from context: %w", err)
	}

	added, removed := mapper.WorkspaceFoldersEventToFolders(params.Event)

	folders := make([]entity.WorkspaceFolderID, 0, len(s.WorkspaceFolders)+len(added))
	dropped := make(map[entity.WorkspaceFolderID]struct{}, len(removed))
	for _, folder := range removed {
		dropped[folder] = struct{}{}
	}
	for _, folder := range s.WorkspaceFolders {
		if _, ok := dropped[folder]; !ok {
			folders = append(folders, folder)
		}
	}
	for _, folder := range added {
		if !containsFolder(folders, folder) {
			folders = append(folders, folder)
		}
	}
	s.WorkspaceFolders = folders
	s.RouterEnabled = len(folders) > 0

	if err := c.sessions.Set(ctx, s); err != nil {
		return fmt.Errorf("setting updated session state: %w", err)
	}

	for _, folder := range added {
		if err := c.langServers.WatchFolder(folder); err != nil {
			c.logger.Warnw("watching workspace folder failed", "folder", folder, "error", err)
		}
	}
	for _, folder := range removed {
		if c.folderStillAttached(ctx, folder) {
			continue
		}
		if err := c.langServers.UnwatchFolder(folder); err != nil {
			c.logger.Warnw("unwatching workspace folder failed", "folder", folder, "error", err)
		}
	}

	if _, err := c.langServers.RebaseAll(ctx); err != nil {
		return fmt.Errorf("rebasing after workspace folder change: %w", err)
	}
	return nil
}

// ExecuteCommand routes lspr commands sent via workspace/executeCommand.
func (c *controller) ExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (interface{}, error) {
	switch params.Command {
	case CommandStatus:
		return c.Status(ctx)

	case CommandRestartServer:
		args := entity.RestartServerParams{}
		if err := unmarshalCommandArgs(params, &args); err != nil {
			return nil, err
		}
		return c.RestartServer(ctx, &args)

	case CommandShareServer:
		args := entity.ShareServerParams{}
		if err := unmarshalCommandArgs(params, &args); err != nil {
			return nil, err
		}
		return nil, c.ShareServer(ctx, &args)

	default:
		return nil, fmt.Errorf("unsupported command %q", params.Command)
	}
}

// Status reports the running servers and the current tree nodes.
func (c *controller) Status(ctx context.Context) (*entity.RouterStatus, error) {
	status := c.langServers.Status(ctx)
	return &status, nil
}

// RestartServer stops every instance of one server and relaunches replacements
// for the documents that need them.
func (c *controller) RestartServer(ctx context.Context, params *entity.RestartServerParams) ([]entity.ServerRef, error) {
	if params.Server == "" {
		return nil, &errors.ServerNotFoundError{Name: string(params.Server)}
	}
	return c.langServers.RestartServers(ctx, params.Server)
}

// ShareServer registers a server running at one workspace folder so queries at
// another folder resolve to it.
func (c *controller) ShareServer(ctx context.Context, params *entity.ShareServerParams) error {
	from := entity.NewWorkspaceFolderID(params.From)
	to := entity.NewWorkspaceFolderID(params.To)
	return c.langServers.ShareServer(ctx, from, to, params.Server, params.Language)
}

// manifestTouched reports whether any changed file is a manifest some
// registered adapter anchors its roots to.
func (c *controller) manifestTouched(changes []*protocol.FileEvent) bool {
	kinds := c.adapters.ManifestKinds()
	for _, change := range changes {
		base := entity.ManifestKind(path.Base(string(change.URI)))
		for _, kind := range kinds {
			if base == kind {
				return true
			}
		}
	}
	return false
}

// folderStillAttached reports whether any other session still has the folder open.
func (c *controller) folderStillAttached(ctx context.Context, folder entity.WorkspaceFolderID) bool {
	sessions, err := c.sessions.GetAllFromWorkspaceFolder(ctx, folder)
	if err != nil {
		return false
	}
	return len(sessions) > 0
}

// unmarshalCommandArgs decodes the first command argument into out.
func unmarshalCommandArgs(params *protocol.ExecuteCommandParams, out interface{}) error {
	if len(params.Arguments) == 0 {
		return errors.NoCommandArgumentsError
	}
	raw, ok := params.Arguments[0].([]byte)
	if !ok {
		return errors.NoCommandArgumentsError
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %q arguments: %w", params.Command, err)
	}
	return nil
}

func containsFolder(folders []entity.WorkspaceFolderID, folder entity.WorkspaceFolderID) bool {
	for _, f := range folders {
		if f == folder {
			return true
		}
	}
	return false
}
