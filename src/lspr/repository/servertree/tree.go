// Package servertree maintains the mapping from workspace paths to running
// language server instances. Paths resolve through adapter settings and
// manifest roots to nodes; each node lazily launches one server and keeps
// its identity until the node is pruned or a rebuild decides its
// configuration changed.
package servertree

import (
	"sort"

	"github.com/uber-go/tally/v4"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/adapterregistry"
	"github.com/uber/lsp-router/src/lspr/internal/langsettings"
	"github.com/uber/lsp-router/src/lspr/internal/manifest"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Query selects which servers to resolve for a path.
type Query struct {
	lang   entity.LanguageName
	name   entity.ServerName
	byName bool
}

// ByLanguage resolves every server configured for a language, in settings
// order.
func ByLanguage(lang entity.LanguageName) Query {
	return Query{lang: lang}
}

// ByName resolves a single server by name, regardless of language.
func ByName(name entity.ServerName) Query {
	return Query{name: name, byName: true}
}

// Tree is the resolution tree. All methods that change tree topology must be
// serialized by the caller; the langservers controller owns that lock.
type Tree interface {
	// Resolve maps a path to the server nodes that should serve it,
	// creating missing nodes with a fresh settings snapshot. Resolving
	// never launches servers.
	Resolve(path entity.ProjectPath, q Query, del manifest.Delegate) []Handle
	// Rebase starts a tree rebuild. The caller re-resolves every live path
	// against the returned Rebase and then calls Finish.
	Rebase() *Rebase
	// RemoveNodes prunes every node assigned one of the given IDs. Nodes
	// that never launched stay.
	RemoveNodes(ids []entity.ServerID)
	// RegisterReused registers a running server's node at another folder's
	// root, so queries there resolve to the same server. Expired handles
	// are ignored.
	RegisterReused(folder entity.WorkspaceFolderID, lang entity.LanguageName, h Handle) bool
	// Snapshot returns a sorted read-only view of every node.
	Snapshot() []entity.ServerNode
	// IdentifiedServers returns every assigned (ID, name) pair, sorted by
	// ID.
	IdentifiedServers() []entity.ServerRef
}

type tree struct {
	logger    *zap.SugaredLogger
	stats     tally.Scope
	adapters  adapterregistry.Registry
	settings  langsettings.Resolver
	manifests manifest.Resolver

	// folder -> root rel -> server name -> node
	instances map[entity.WorkspaceFolderID]map[string]map[entity.ServerName]*node
}

// Params define the dependencies of the resolution tree.
type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Adapters  adapterregistry.Registry
	Settings  langsettings.Resolver
	Manifests manifest.Resolver
}

// New creates an empty resolution tree.
func New(p Params) Tree {
	return &tree{
		logger:    p.Logger,
		stats:     p.Stats.SubScope("servertree"),
		adapters:  p.Adapters,
		settings:  p.Settings,
		manifests: p.Manifests,
		instances: make(map[entity.WorkspaceFolderID]map[string]map[entity.ServerName]*node),
	}
}

type candidate struct {
	adapter entity.Adapter
	config  entity.ServerConfig
	lang    entity.LanguageName
}

func (t *tree) Resolve(path entity.ProjectPath, q Query, del manifest.Delegate) []Handle {
	loc := entity.SettingsLocation{Folder: path.Folder, Path: path.Rel}

	var candidates []candidate
	if q.byName {
		a, ok := t.adapters.ForName(q.name)
		if !ok {
			t.logger.Debugw("no adapter registered for server", "server", q.name)
			return nil
		}
		candidates = append(candidates, candidate{
			adapter: a,
			config:  t.settings.ServerSettings(loc, a.Name),
		})
	} else {
		ordered := t.adapters.ForLanguage(loc, q.lang)
		for _, a := range ordered {
			candidates = append(candidates, candidate{
				adapter: a,
				config:  t.settings.ServerSettings(loc, a.Name),
				lang:    q.lang,
			})
		}
		// Keep the registry's per-language order in step with what this
		// lookup resolved, so rest marker expansion stays stable as
		// adapters load incrementally.
		t.adapters.Reorder(q.lang, ordered)
	}
	if len(candidates) == 0 {
		return nil
	}

	roots := t.manifests.RootsFor(del, path, manifestKinds(candidates))

	handles := make([]Handle, 0, len(candidates))
	for _, c := range candidates {
		// Servers without a manifest root attach at the folder root.
		root := entity.ProjectPath{Folder: path.Folder}
		if c.adapter.Manifest != "" {
			if r, ok := roots[c.adapter.Manifest]; ok {
				root = r
			}
		}

		n := t.nodeAt(root, c.adapter.Name)
		if n == nil {
			n = newNode(c.adapter.Name, root, c.config)
			t.insert(root, n)
			t.stats.Counter("nodes_created").Inc(1)
			t.logger.Debugw("server node created", "server", c.adapter.Name, "root", root.String())
		}
		n.addLanguage(c.lang)
		handles = append(handles, Handle{n: n})
	}

	t.updateNodeGauge()
	return handles
}

func (t *tree) RemoveNodes(ids []entity.ServerID) {
	if len(ids) == 0 {
		return
	}
	doomed := make(map[entity.ServerID]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	for folder, byRoot := range t.instances {
		for rel, byName := range byRoot {
			for name, n := range byName {
				id, ok := n.identity()
				if !ok {
					// Nodes still waiting on a first launch are kept.
					continue
				}
				if _, gone := doomed[id]; gone {
					delete(byName, name)
					n.detach()
					t.stats.Counter("nodes_removed").Inc(1)
				}
			}
			if len(byName) == 0 {
				delete(byRoot, rel)
			}
		}
		if len(byRoot) == 0 {
			delete(t.instances, folder)
		}
	}
	t.updateNodeGauge()
}

func (t *tree) RegisterReused(folder entity.WorkspaceFolderID, lang entity.LanguageName, h Handle) bool {
	if h.expired() {
		return false
	}

	root := entity.ProjectPath{Folder: folder}
	if existing := t.nodeAt(root, h.n.name); existing != nil {
		// The slot is taken; queries at this folder already resolve.
		existing.addLanguage(lang)
		return existing == h.n
	}

	t.insert(root, h.n)
	h.n.addLanguage(lang)
	t.stats.Counter("nodes_reused").Inc(1)
	t.logger.Infow("server registered for reuse", "server", h.n.name, "folder", folder)
	t.updateNodeGauge()
	return true
}

func (t *tree) Snapshot() []entity.ServerNode {
	var out []entity.ServerNode
	t.forEachNode(func(folder entity.WorkspaceFolderID, rel string, n *node) {
		id, ok := n.identity()
		out = append(out, entity.ServerNode{
			Root:      entity.ProjectPath{Folder: folder, Rel: rel},
			Server:    n.name,
			ID:        id,
			Assigned:  ok,
			Languages: n.languageNames(),
		})
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Root != out[j].Root {
			return out[i].Root.Less(out[j].Root)
		}
		return out[i].Server < out[j].Server
	})
	return out
}

func (t *tree) IdentifiedServers() []entity.ServerRef {
	seen := make(map[entity.ServerID]entity.ServerName)
	t.forEachNode(func(_ entity.WorkspaceFolderID, _ string, n *node) {
		if id, ok := n.identity(); ok {
			seen[id] = n.name
		}
	})

	out := make([]entity.ServerRef, 0, len(seen))
	for id, name := range seen {
		out = append(out, entity.ServerRef{ID: id, Name: name})
	}
	return entity.SortServerRefs(out)
}

func (t *tree) nodeAt(root entity.ProjectPath, name entity.ServerName) *node {
	return t.instances[root.Folder][root.Rel][name]
}

func (t *tree) insert(root entity.ProjectPath, n *node) {
	byRoot, ok := t.instances[root.Folder]
	if !ok {
		byRoot = make(map[string]map[entity.ServerName]*node)
		t.instances[root.Folder] = byRoot
	}
	byName, ok := byRoot[root.Rel]
	if !ok {
		byName = make(map[entity.ServerName]*node)
		byRoot[root.Rel] = byName
	}
	byName[n.name] = n
}

func (t *tree) forEachNode(fn func(folder entity.WorkspaceFolderID, rel string, n *node)) {
	for folder, byRoot := range t.instances {
		for rel, byName := range byRoot {
			for _, n := range byName {
				fn(folder, rel, n)
			}
		}
	}
}

func (t *tree) updateNodeGauge() {
	count := 0
	t.forEachNode(func(entity.WorkspaceFolderID, string, *node) {
		count++
	})
	t.stats.Gauge("live_nodes").Update(float64(count))
}

func manifestKinds(candidates []candidate) []entity.ManifestKind {
	seen := make(map[entity.ManifestKind]struct{}, len(candidates))
	out := make([]entity.ManifestKind, 0, len(candidates))
	for _, c := range candidates {
		if c.adapter.Manifest == "" {
			continue
		}
		if _, ok := seen[c.adapter.Manifest]; ok {
			continue
		}
		seen[c.adapter.Manifest] = struct{}{}
		out = append(out, c.adapter.Manifest)
	}
	return out
}
