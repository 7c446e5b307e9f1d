package servertree

import (
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/manifest"
	"github.com/uber/lsp-router/src/lspr/mapper"
)

// Rebase is one tree rebuild in progress. Resolving through it re-creates
// nodes with fresh settings snapshots, carrying over the identity of any
// server whose snapshot is unchanged at the same (folder, root, name) slot.
// Finish reports every server the rebuild left behind so the caller can
// shut it down. At most one Rebase may be open at a time.
type Rebase struct {
	tree     *tree
	old      map[entity.WorkspaceFolderID]map[string]map[entity.ServerName]*node
	universe map[entity.ServerID]entity.ServerName
	carried  map[entity.ServerID]struct{}
	finished bool
}

func (t *tree) Rebase() *Rebase {
	old := t.instances
	t.instances = make(map[entity.WorkspaceFolderID]map[string]map[entity.ServerName]*node)

	universe := make(map[entity.ServerID]entity.ServerName)
	for _, byRoot := range old {
		for _, byName := range byRoot {
			for _, n := range byName {
				if id, ok := n.identity(); ok {
					universe[id] = n.name
				}
			}
		}
	}

	return &Rebase{
		tree:     t,
		old:      old,
		universe: universe,
		carried:  make(map[entity.ServerID]struct{}),
	}
}

// Resolve is Tree.Resolve plus identity carry-over from the previous
// generation.
func (r *Rebase) Resolve(path entity.ProjectPath, q Query, del manifest.Delegate) []Handle {
	handles := r.tree.Resolve(path, q, del)
	for _, h := range handles {
		r.carry(h.n)
	}
	return handles
}

func (r *Rebase) carry(n *node) {
	if _, ok := n.identity(); ok {
		// Already carried by an earlier resolve, or freshly launched
		// during this rebuild.
		return
	}

	prev := r.oldNodeAt(n.root, n.name)
	if prev == nil {
		return
	}
	prevID, ok := prev.identity()
	if !ok {
		return
	}

	if !n.config.Equal(prev.config) {
		r.tree.stats.Counter("identity_restarted").Inc(1)
		r.tree.logger.Infow("server config changed, restart scheduled",
			"server", n.name,
			"root", n.root.String(),
			"id", prevID,
			"diff", mapper.ConfigDiff(prev.config, n.config),
		)
		return
	}

	if n.adopt(prevID) {
		r.carried[prevID] = struct{}{}
		r.tree.stats.Counter("identity_carried").Inc(1)
	}
}

// Finish closes the rebuild. It returns the servers that were running before
// the rebase and were not carried into the new tree, sorted by ID, and
// expires handles to every node the rebuild dropped. Calling Finish twice
// returns nothing.
func (r *Rebase) Finish() []entity.ServerRef {
	if r.finished {
		return nil
	}
	r.finished = true

	orphans := make([]entity.ServerRef, 0, len(r.universe))
	for id, name := range r.universe {
		if _, ok := r.carried[id]; !ok {
			orphans = append(orphans, entity.ServerRef{ID: id, Name: name})
		}
	}
	entity.SortServerRefs(orphans)

	// Nodes re-registered into the rebuilt tree stay live; everything else
	// from the previous generation expires.
	kept := make(map[*node]struct{})
	r.tree.forEachNode(func(_ entity.WorkspaceFolderID, _ string, n *node) {
		kept[n] = struct{}{}
	})
	for _, byRoot := range r.old {
		for _, byName := range byRoot {
			for _, n := range byName {
				if _, ok := kept[n]; !ok {
					n.detach()
				}
			}
		}
	}
	r.old = nil

	r.tree.updateNodeGauge()
	r.tree.logger.Infow("tree rebase complete", "carried", len(r.carried), "orphaned", len(orphans))
	return orphans
}

func (r *Rebase) oldNodeAt(root entity.ProjectPath, name entity.ServerName) *node {
	return r.old[root.Folder][root.Rel][name]
}
