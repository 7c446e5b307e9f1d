package servertree

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/uber/lsp-router/src/lspr/entity"
)

// Initializer launches a language server for a node and returns the ID the
// gateway assigned to it.
type Initializer func(intent entity.LaunchIntent) (entity.ServerID, error)

// node is one entry of the resolution tree: a (root, server) pair plus the
// configuration snapshot taken when the node was created. A server identity
// is assigned at most once over the node's lifetime. Nodes dropped from the
// tree are detached, which expires every handle pointing at them.
//
// Tree topology and the languages set are guarded by the owning controller,
// which serializes all resolution. The identity cell and the detached flag
// are safe to read from any goroutine.
type node struct {
	name   entity.ServerName
	root   entity.ProjectPath
	config entity.ServerConfig

	mu       sync.Mutex
	id       entity.ServerID
	assigned bool

	detached  atomic.Bool
	languages map[entity.LanguageName]struct{}
}

func newNode(name entity.ServerName, root entity.ProjectPath, config entity.ServerConfig) *node {
	return &node{
		name:      name,
		root:      root,
		config:    config,
		languages: make(map[entity.LanguageName]struct{}),
	}
}

// identity returns the assigned server ID, if any.
func (n *node) identity() (entity.ServerID, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.id, n.assigned
}

// identityOrInit returns the assigned server ID, running init to obtain one
// if the node has none. The initializer runs at most once per node: callers
// racing on an unassigned node block until the first one finishes and then
// observe its result. A failed initializer leaves the node unassigned, so a
// later call retries.
func (n *node) identityOrInit(init Initializer) (entity.ServerID, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.assigned {
		return n.id, nil
	}

	id, err := init(entity.LaunchIntent{Server: n.name, Root: n.root, Config: n.config})
	if err != nil {
		return 0, err
	}
	n.id = id
	n.assigned = true
	return id, nil
}

// adopt assigns an existing server ID without launching anything. It returns
// false if the node already has an identity.
func (n *node) adopt(id entity.ServerID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.assigned {
		return false
	}
	n.id = id
	n.assigned = true
	return true
}

func (n *node) detach() {
	n.detached.Store(true)
}

func (n *node) addLanguage(lang entity.LanguageName) {
	if lang != "" {
		n.languages[lang] = struct{}{}
	}
}

func (n *node) languageNames() []entity.LanguageName {
	out := make([]entity.LanguageName, 0, len(n.languages))
	for lang := range n.languages {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Handle is a non-owning reference to a tree node. Handles survive tree
// rebuilds, but one whose node was pruned or replaced expires: every
// accessor reports absent from then on.
type Handle struct {
	n *node
}

func (h Handle) expired() bool {
	return h.n == nil || h.n.detached.Load()
}

// Name returns the server name for a live handle.
func (h Handle) Name() (entity.ServerName, bool) {
	if h.expired() {
		return "", false
	}
	return h.n.name, true
}

// Root returns the project root the node is anchored at.
func (h Handle) Root() (entity.ProjectPath, bool) {
	if h.expired() {
		return entity.ProjectPath{}, false
	}
	return h.n.root, true
}

// Identity returns the node's server ID if one has been assigned. It never
// triggers a launch.
func (h Handle) Identity() (entity.ServerID, bool) {
	if h.expired() {
		return 0, false
	}
	return h.n.identity()
}

// IdentityOrInit returns the node's server ID, running init to launch one
// when the node is unassigned. The bool reports whether the ID is valid: an
// expired handle yields (0, false, nil), a failed launch (0, false, err).
func (h Handle) IdentityOrInit(init Initializer) (entity.ServerID, bool, error) {
	if h.expired() {
		return 0, false, nil
	}
	id, err := h.n.identityOrInit(init)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
