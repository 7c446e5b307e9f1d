// Package manifest locates project roots by walking a document's ancestor
// directories and probing for manifest files (go.mod, package.json, ...).
// Servers whose adapter declares a manifest attach at the deepest directory
// that carries one.
package manifest

import (
	"path/filepath"

	"github.com/uber-go/tally/v4"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/fs"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Delegate answers existence probes during a root search. Probes stay inside
// the workspace folder, so implementations never see absolute paths.
type Delegate interface {
	Exists(folder entity.WorkspaceFolderID, rel string) bool
}

// Resolver finds manifest roots for documents.
type Resolver interface {
	// RootsFor walks the ancestor directories of path, from the document's
	// directory up to the workspace folder root, and returns the deepest
	// directory carrying each requested manifest kind. Kinds with no
	// manifest anywhere on the chain are absent from the result.
	RootsFor(del Delegate, path entity.ProjectPath, kinds []entity.ManifestKind) map[entity.ManifestKind]entity.ProjectPath
}

type resolver struct {
	logger *zap.SugaredLogger
	stats  tally.Scope
}

// Params define the dependencies of the manifest resolver.
type Params struct {
	fx.In

	Logger *zap.SugaredLogger
	Stats  tally.Scope
}

// New creates a manifest Resolver.
func New(p Params) Resolver {
	return &resolver{
		logger: p.Logger,
		stats:  p.Stats.SubScope("manifest"),
	}
}

func (r *resolver) RootsFor(del Delegate, path entity.ProjectPath, kinds []entity.ManifestKind) map[entity.ManifestKind]entity.ProjectPath {
	roots := make(map[entity.ManifestKind]entity.ProjectPath, len(kinds))
	if len(kinds) == 0 {
		return roots
	}

	pending := make(map[entity.ManifestKind]struct{}, len(kinds))
	for _, kind := range kinds {
		if kind != "" {
			pending[kind] = struct{}{}
		}
	}

	dir := path.Dir()
	for {
		for kind := range pending {
			probe := filepath.Join(dir.Rel, string(kind))
			if del.Exists(path.Folder, probe) {
				roots[kind] = dir
				delete(pending, kind)
				r.stats.Counter("roots_found").Inc(1)
			}
		}
		if len(pending) == 0 || dir.Rel == "" {
			break
		}
		dir = dir.Dir()
	}

	return roots
}

type fsDelegate struct {
	fsys fs.LsprFS
}

// NewFSDelegate returns a Delegate probing the real filesystem.
func NewFSDelegate(fsys fs.LsprFS) Delegate {
	return &fsDelegate{fsys: fsys}
}

func (d *fsDelegate) Exists(folder entity.WorkspaceFolderID, rel string) bool {
	ok, err := d.fsys.FileExists(filepath.Join(folder.Path(), rel))
	return err == nil && ok
}
