// Package langservers owns the resolution tree and decides which language
// servers run for the documents the IDE has open. It tracks open documents
// per session, launches servers on first use through the langserver gateway,
// and rebuilds the tree when workspace settings change, stopping servers the
// rebuild leaves behind.
package langservers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally/v4"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/gateway/langserver"
	"github.com/uber/lsp-router/src/lspr/internal/broadcast"
	"github.com/uber/lsp-router/src/lspr/internal/fs"
	"github.com/uber/lsp-router/src/lspr/internal/langsettings"
	"github.com/uber/lsp-router/src/lspr/internal/logfilewriter"
	"github.com/uber/lsp-router/src/lspr/internal/manifest"
	"github.com/uber/lsp-router/src/lspr/internal/serverinfofile"
	"github.com/uber/lsp-router/src/lspr/mapper"
	"github.com/uber/lsp-router/src/lspr/repository/servertree"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// _outputKey names this controller's entry in the server info file, which
// points the IDE at the output log it can tail.
const _outputKey = "langservers"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller routes documents to language servers.
type Controller interface {
	// EnsureForDocument resolves the servers for an open document and
	// launches any that are not yet running. Documents outside the session's
	// workspace folders and documents of a disabled language yield no
	// servers.
	EnsureForDocument(ctx context.Context, session *entity.Session, uri protocol.DocumentURI, lang entity.LanguageName) ([]entity.ServerRef, error)
	// DocumentClosed drops the session's claim on a document. Servers keep
	// running; the next rebase stops the ones nothing references.
	DocumentClosed(ctx context.Context, session *entity.Session, uri protocol.DocumentURI)
	// ReleaseSession drops every document claim a session holds and rebases
	// so servers only that session needed stop early.
	ReleaseSession(ctx context.Context, id uuid.UUID) error
	// RebaseAll rebuilds the tree against current settings, relaunching
	// where configuration changed. It returns the servers that were stopped.
	RebaseAll(ctx context.Context) ([]entity.ServerRef, error)
	// RestartServers stops every running instance of a server and launches
	// replacements for the documents that need them. It returns the stopped
	// servers.
	RestartServers(ctx context.Context, name entity.ServerName) ([]entity.ServerRef, error)
	// ShareServer registers a server running at one folder so queries at
	// another folder resolve to it.
	ShareServer(ctx context.Context, from, to entity.WorkspaceFolderID, name entity.ServerName, lang entity.LanguageName) error
	// WatchFolder starts tracking a folder's override file.
	WatchFolder(folder entity.WorkspaceFolderID) error
	// UnwatchFolder stops tracking a folder's override file and drops its
	// overrides.
	UnwatchFolder(folder entity.WorkspaceFolderID) error
	// Status reports the running servers and the current tree nodes.
	Status(ctx context.Context) entity.RouterStatus
}

// document is one open document and the sessions referencing it.
type document struct {
	path     entity.ProjectPath
	language entity.LanguageName
	sessions map[uuid.UUID]struct{}
}

type controller struct {
	broadcaster broadcast.Broadcaster
	gateway     langserver.Gateway
	logger      *zap.SugaredLogger
	probe       manifest.Delegate
	stats       tally.Scope
	tree        servertree.Tree
	watcher     langsettings.Watcher

	outputWriterParams logfilewriter.Params
	output             io.Writer

	// mu serializes every tree mutation and guards docs.
	mu   sync.Mutex
	docs map[protocol.DocumentURI]*document
}

// Params define the dependencies of this module.
type Params struct {
	fx.In

	Broadcaster    broadcast.Broadcaster
	FS             fs.LsprFS
	Gateway        langserver.Gateway
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	ServerInfoFile serverinfofile.ServerInfoFile
	Settings       langsettings.Resolver
	Stats          tally.Scope
	Tree           servertree.Tree
}

// New creates a langservers controller and starts its settings watcher.
func New(p Params) (Controller, error) {
	c := &controller{
		broadcaster: p.Broadcaster,
		gateway:     p.Gateway,
		logger:      p.Logger,
		probe:       manifest.NewFSDelegate(p.FS),
		stats:       p.Stats.SubScope("langservers"),
		tree:        p.Tree,
		docs:        make(map[protocol.DocumentURI]*document),

		outputWriterParams: logfilewriter.Params{
			FS:             p.FS,
			Lifecycle:      p.Lifecycle,
			ServerInfoFile: p.ServerInfoFile,
		},
	}

	w, err := langsettings.NewWatcher(p.FS, p.Settings, p.Logger, c.onSettingsChange)
	if err != nil {
		return nil, err
	}
	c.watcher = w

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.watcher.Close()
		},
	})
	return c, nil
}

func (c *controller) EnsureForDocument(ctx context.Context, session *entity.Session, uri protocol.DocumentURI, lang entity.LanguageName) ([]entity.ServerRef, error) {
	path, ok := mapper.URIToProjectPath(uri, session.WorkspaceFolders)
	if !ok {
		c.logger.Debugw("document outside every workspace folder", "uri", uri)
		return nil, nil
	}

	if err := c.watcher.Watch(path.Folder); err != nil {
		c.logger.Warnw("watching workspace folder failed", "folder", path.Folder, "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.registerDocument(uri, path, lang, session.UUID)

	handles := c.tree.Resolve(path, servertree.ByLanguage(lang), c.probe)
	refs, err := c.ensureIdentities(ctx, handles)
	if err != nil {
		return refs, err
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return refs, nil
}

func (c *controller) DocumentClosed(ctx context.Context, session *entity.Session, uri protocol.DocumentURI) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.docs[uri]
	if !ok {
		return
	}
	delete(d.sessions, session.UUID)
	if len(d.sessions) == 0 {
		delete(c.docs, uri)
		c.stats.Gauge("open_documents").Update(float64(len(c.docs)))
	}
}

func (c *controller) ReleaseSession(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := false
	for uri, d := range c.docs {
		if _, ok := d.sessions[id]; !ok {
			continue
		}
		delete(d.sessions, id)
		if len(d.sessions) == 0 {
			delete(c.docs, uri)
			dropped = true
		}
	}
	if !dropped {
		return nil
	}
	c.stats.Gauge("open_documents").Update(float64(len(c.docs)))

	// Servers only this session needed become orphans of this rebase.
	_, err := c.rebaseLocked(ctx)
	return err
}

func (c *controller) RebaseAll(ctx context.Context) ([]entity.ServerRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebaseLocked(ctx)
}

func (c *controller) rebaseLocked(ctx context.Context) ([]entity.ServerRef, error) {
	c.stats.Counter("rebases").Inc(1)
	rebase := c.tree.Rebase()

	var errs error
	for _, uri := range c.sortedDocURIs() {
		d := c.docs[uri]
		handles := rebase.Resolve(d.path, servertree.ByLanguage(d.language), c.probe)
		if _, err := c.ensureIdentities(ctx, handles); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	stopped := rebase.Finish()
	if len(stopped) == 0 {
		return nil, errs
	}

	if err := c.gateway.Stop(ctx, stopped); err != nil {
		errs = multierr.Append(errs, err)
	}
	c.stats.Counter("servers_orphaned").Inc(int64(len(stopped)))
	for _, ref := range stopped {
		c.writeOutput("Stopped %s (server %d): no longer needed after configuration change.", ref.Name, ref.ID)
	}

	msg := fmt.Sprintf("configuration change stopped %d language server(s)", len(stopped))
	for _, folder := range c.documentFolders() {
		if err := c.broadcaster.LogMessageToFolder(ctx, folder, protocol.MessageTypeInfo, msg); err != nil {
			c.logger.Warnw("notifying folder about stopped servers failed", "folder", folder, "error", err)
		}
	}
	return stopped, errs
}

func (c *controller) RestartServers(ctx context.Context, name entity.ServerName) ([]entity.ServerRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var refs []entity.ServerRef
	var ids []entity.ServerID
	for _, ref := range c.gateway.Running() {
		if ref.Name == name {
			refs = append(refs, ref)
			ids = append(ids, ref.ID)
		}
	}
	if len(refs) == 0 {
		return nil, nil
	}

	var errs error
	if err := c.gateway.Stop(ctx, refs); err != nil {
		errs = multierr.Append(errs, err)
	}
	c.tree.RemoveNodes(ids)

	// Pruned slots resolve to fresh nodes, so every document still open gets
	// a replacement server.
	for _, uri := range c.sortedDocURIs() {
		d := c.docs[uri]
		handles := c.tree.Resolve(d.path, servertree.ByLanguage(d.language), c.probe)
		if _, err := c.ensureIdentities(ctx, handles); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	c.logger.Infow("servers restarted", "server", name, "stopped", len(refs))
	c.writeOutput("Restarted %s: stopped %d running instance(s).", name, len(refs))
	return refs, errs
}

func (c *controller) ShareServer(ctx context.Context, from, to entity.WorkspaceFolderID, name entity.ServerName, lang entity.LanguageName) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	handles := c.tree.Resolve(entity.ProjectPath{Folder: from}, servertree.ByName(name), c.probe)
	for _, h := range handles {
		if _, ok := h.Identity(); !ok {
			continue
		}
		if c.tree.RegisterReused(to, lang, h) {
			return nil
		}
	}
	return fmt.Errorf("no running %q server to share from %q", name, from)
}

func (c *controller) WatchFolder(folder entity.WorkspaceFolderID) error {
	return c.watcher.Watch(folder)
}

func (c *controller) UnwatchFolder(folder entity.WorkspaceFolderID) error {
	return c.watcher.Unwatch(folder)
}

func (c *controller) Status(ctx context.Context) entity.RouterStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return entity.RouterStatus{
		Running: c.gateway.Running(),
		Nodes:   c.tree.Snapshot(),
	}
}

// writeOutput narrates server starts, stops and rebase outcomes to the
// user-facing output log. The channel is set up on first use; its file path
// is published through the server info file so the IDE can tail it.
func (c *controller) writeOutput(format string, args ...interface{}) {
	if c.output == nil {
		w, err := logfilewriter.SetupOutputWriter(c.outputWriterParams, _outputKey)
		if err != nil {
			c.logger.Warnw("setting up output log file failed", "error", err)
			return
		}
		c.output = w
	}
	fmt.Fprintf(c.output, format+"\n", args...)
}

// onSettingsChange runs on the watcher goroutine after a folder's override
// file has been reloaded.
func (c *controller) onSettingsChange(folder entity.WorkspaceFolderID) {
	c.logger.Infow("workspace settings changed", "folder", folder)
	if _, err := c.RebaseAll(context.Background()); err != nil {
		c.logger.Warnw("rebase after settings change failed", "folder", folder, "error", err)
	}
}

// ensureIdentities launches a server for every handle that has none yet.
// Failed launches leave their node unassigned and are reported together; the
// successful servers are still returned.
func (c *controller) ensureIdentities(ctx context.Context, handles []servertree.Handle) ([]entity.ServerRef, error) {
	refs := make([]entity.ServerRef, 0, len(handles))
	var errs error
	for _, h := range handles {
		name, ok := h.Name()
		if !ok {
			continue
		}
		id, ok, err := h.IdentityOrInit(func(intent entity.LaunchIntent) (entity.ServerID, error) {
			launched, err := c.gateway.Launch(ctx, intent)
			if err == nil {
				c.writeOutput("Started %s (server %d).", name, launched)
			}
			return launched, err
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("launching %q: %w", name, err))
			continue
		}
		if ok {
			refs = append(refs, entity.ServerRef{ID: id, Name: name})
		}
	}
	return refs, errs
}

func (c *controller) registerDocument(uri protocol.DocumentURI, path entity.ProjectPath, lang entity.LanguageName, session uuid.UUID) {
	d, ok := c.docs[uri]
	if !ok {
		d = &document{
			path:     path,
			language: lang,
			sessions: make(map[uuid.UUID]struct{}),
		}
		c.docs[uri] = d
		c.stats.Gauge("open_documents").Update(float64(len(c.docs)))
	}
	d.sessions[session] = struct{}{}
}

func (c *controller) sortedDocURIs() []protocol.DocumentURI {
	uris := make([]protocol.DocumentURI, 0, len(c.docs))
	for uri := range c.docs {
		uris = append(uris, uri)
	}
	sort.Slice(uris, func(i, j int) bool { return uris[i] < uris[j] })
	return uris
}

// documentFolders returns the distinct folders of the registered documents,
// sorted.
func (c *controller) documentFolders() []entity.WorkspaceFolderID {
	seen := make(map[entity.WorkspaceFolderID]struct{})
	for _, d := range c.docs {
		seen[d.path.Folder] = struct{}{}
	}
	out := make([]entity.WorkspaceFolderID, 0, len(seen))
	for folder := range seen {
		out = append(out, folder)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
