// Package langserver launches language server child processes and speaks
// LSP to each over stdio. It owns the full instance lifecycle: spawn,
// initialize handshake, settings push, and shutdown.
package langserver

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/uber-go/tally/v4"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/adapterregistry"
	"github.com/uber/lsp-router/src/lspr/internal/clock"
	"github.com/uber/lsp-router/src/lspr/internal/errors"
	"github.com/uber/lsp-router/src/lspr/internal/executor"
	"github.com/uber/lsp-router/src/lspr/internal/fs"
	"github.com/uber/lsp-router/src/lspr/internal/serverinfofile"
	"github.com/uber/lsp-router/src/lspr/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	_logsDirName     = "lspr-servers"
	_fmtServerLogKey = "serverLog:%s-%d"

	// Time allowed between the exit notification and process exit before
	// the child is killed.
	_stopGracePeriod = 3 * time.Second
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Gateway starts and stops language server instances.
type Gateway interface {
	// Launch spawns a server for the intent, runs the initialize handshake,
	// and returns the new instance's ID. IDs start at 1 and are never
	// reused.
	Launch(ctx context.Context, intent entity.LaunchIntent) (entity.ServerID, error)
	// Stop shuts down the given instances. Refs that are not running
	// contribute an error without blocking the rest.
	Stop(ctx context.Context, refs []entity.ServerRef) error
	// StopAll shuts down every running instance.
	StopAll(ctx context.Context) error
	// Running lists the running instances ordered by ID.
	Running() []entity.ServerRef
}

// Params define the dependencies of the langserver gateway.
type Params struct {
	fx.In

	Adapters       adapterregistry.Registry
	Clock          clock.Clock
	Executor       executor.Executor
	FS             fs.LsprFS
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	ServerInfoFile serverinfofile.ServerInfoFile
	Stats          tally.Scope
}

type instance struct {
	ref     entity.ServerRef
	root    entity.ProjectPath
	cmd     *exec.Cmd
	conn    jsonrpc2.Conn
	logFile *os.File
}

type gateway struct {
	logger   *zap.SugaredLogger
	stats    tally.Scope
	clock    clock.Clock
	executor executor.Executor
	fsys     fs.LsprFS
	adapters adapterregistry.Registry
	infoFile serverinfofile.ServerInfoFile

	// newConn builds the jsonrpc2 connection over the child's stdio.
	newConn func(stdout io.ReadCloser, stdin io.WriteCloser) jsonrpc2.Conn

	mu        sync.Mutex
	nextID    entity.ServerID
	instances map[entity.ServerID]*instance
}

// New creates a Gateway. All remaining instances are stopped when the
// daemon shuts down.
func New(p Params) Gateway {
	g := &gateway{
		logger:    p.Logger,
		stats:     p.Stats.SubScope("langserver"),
		clock:     p.Clock,
		executor:  p.Executor,
		fsys:      p.FS,
		adapters:  p.Adapters,
		infoFile:  p.ServerInfoFile,
		newConn:   newStdioConn,
		nextID:    1,
		instances: make(map[entity.ServerID]*instance),
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: g.StopAll,
	})
	return g
}

// Launch spawns the server described by the intent. The child's stderr goes
// to a per-instance log file recorded in the server info file.
func (g *gateway) Launch(ctx context.Context, intent entity.LaunchIntent) (entity.ServerID, error) {
	adapter, ok := g.adapters.LoadIfAvailable(intent.Server)
	if !ok {
		return 0, &errors.ServerNotFoundError{Name: string(intent.Server)}
	}

	path, args, env := mapper.IntentToCommand(intent, adapter)
	cmd := exec.Command(path, args...)
	cmd.Dir = intent.Root.Abs()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return 0, fmt.Errorf("opening stdin for %s: %w", intent.Server, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("opening stdout for %s: %w", intent.Server, err)
	}

	logFile, err := g.openLogFile(intent.Server)
	if err != nil {
		return 0, err
	}
	cmd.Stderr = logFile

	if err := g.executor.StartCommand(cmd, env); err != nil {
		logFile.Close()
		g.fsys.Remove(logFile.Name())
		return 0, fmt.Errorf("starting %s: %w", intent.Server, err)
	}

	conn := g.newConn(stdout, stdin)
	// The read loop must outlive the request that launched the server.
	conn.Go(context.Background(), jsonrpc2.MethodNotFoundHandler)

	if err := g.handshake(ctx, conn, intent); err != nil {
		conn.Close()
		g.reap(cmd)
		logFile.Close()
		// The log file holds whatever the server wrote before dying.
		g.logger.Warnw("language server failed to initialize",
			"server", intent.Server, "log", logFile.Name(), "error", err)
		return 0, err
	}

	inst := &instance{
		root:    intent.Root,
		cmd:     cmd,
		conn:    conn,
		logFile: logFile,
	}
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	inst.ref = entity.ServerRef{ID: id, Name: intent.Server}
	g.instances[id] = inst
	running := len(g.instances)
	g.mu.Unlock()

	if err := g.infoFile.UpdateField(fmt.Sprintf(_fmtServerLogKey, intent.Server, id), logFile.Name()); err != nil {
		g.logger.Warnf("recording server log path: %s", err)
	}

	g.stats.Counter("servers_started").Inc(1)
	g.stats.Gauge("running_servers").Update(float64(running))
	g.logger.Infow("language server started", "server", intent.Server, "id", id, "root", intent.Root)
	return id, nil
}

// Stop shuts down each referenced instance, collecting failures.
func (g *gateway) Stop(ctx context.Context, refs []entity.ServerRef) error {
	var errs error
	for _, ref := range refs {
		if err := g.stopOne(ctx, ref); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// StopAll shuts down every running instance.
func (g *gateway) StopAll(ctx context.Context) error {
	return g.Stop(ctx, g.Running())
}

// Running lists the running instances ordered by ID.
func (g *gateway) Running() []entity.ServerRef {
	g.mu.Lock()
	defer g.mu.Unlock()
	refs := make([]entity.ServerRef, 0, len(g.instances))
	for _, inst := range g.instances {
		refs = append(refs, inst.ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

func (g *gateway) handshake(ctx context.Context, conn jsonrpc2.Conn, intent entity.LaunchIntent) error {
	server := protocol.ServerDispatcher(conn, g.logger.Desugar())
	if _, err := server.Initialize(ctx, mapper.IntentToInitializeParams(intent)); err != nil {
		return fmt.Errorf("initializing %s: %w", intent.Server, err)
	}
	if err := server.Initialized(ctx, &protocol.InitializedParams{}); err != nil {
		return fmt.Errorf("confirming initialize for %s: %w", intent.Server, err)
	}
	// Settings failures are survivable; the server runs on its defaults.
	if len(intent.Config.Settings) > 0 {
		err := server.DidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
			Settings: intent.Config.Settings,
		})
		if err != nil {
			g.logger.Warnf("pushing settings to %s: %s", intent.Server, err)
		}
	}
	return nil
}

func (g *gateway) stopOne(ctx context.Context, ref entity.ServerRef) error {
	g.mu.Lock()
	inst, ok := g.instances[ref.ID]
	if ok {
		delete(g.instances, ref.ID)
	}
	running := len(g.instances)
	g.mu.Unlock()
	if !ok {
		return &errors.ServerNotRunningError{ID: int64(ref.ID)}
	}

	server := protocol.ServerDispatcher(inst.conn, g.logger.Desugar())
	if err := server.Shutdown(ctx); err != nil {
		g.logger.Warnw("language server shutdown request failed",
			"server", inst.ref.Name, "id", inst.ref.ID, "error", err)
	} else if err := server.Exit(ctx); err != nil {
		g.logger.Warnw("language server exit notification failed",
			"server", inst.ref.Name, "id", inst.ref.ID, "error", err)
	}
	inst.conn.Close()
	g.reap(inst.cmd)

	if err := g.infoFile.RemoveField(fmt.Sprintf(_fmtServerLogKey, inst.ref.Name, inst.ref.ID)); err != nil {
		g.logger.Warnf("clearing server log path: %s", err)
	}
	g.closeLogFile(inst.logFile)

	g.stats.Counter("servers_stopped").Inc(1)
	g.stats.Gauge("running_servers").Update(float64(running))
	g.logger.Infow("language server stopped", "server", inst.ref.Name, "id", inst.ref.ID)
	return nil
}

// reap waits for the child to exit, killing it after the grace period.
func (g *gateway) reap(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-g.clock.After(_stopGracePeriod):
		cmd.Process.Kill()
		<-done
	}
}

func (g *gateway) openLogFile(name entity.ServerName) (*os.File, error) {
	dir := filepath.Join(os.TempDir(), _logsDirName)
	if err := g.fsys.MkdirAll(dir); err != nil {
		return nil, err
	}
	return g.fsys.TempFile(dir, string(name)+"-")
}

func (g *gateway) closeLogFile(logFile *os.File) {
	logFile.Close()
	if err := g.fsys.Remove(logFile.Name()); err != nil {
		g.logger.Warnf("removing server log file: %s", err)
	}
}

func newStdioConn(stdout io.ReadCloser, stdin io.WriteCloser) jsonrpc2.Conn {
	return jsonrpc2.NewConn(jsonrpc2.NewStream(stdioPipe{stdout, stdin}))
}

// stdioPipe joins a child's stdout and stdin into one ReadWriteCloser.
type stdioPipe struct {
	io.ReadCloser
	io.WriteCloser
}

func (p stdioPipe) Close() error {
	return multierr.Append(p.ReadCloser.Close(), p.WriteCloser.Close())
}
