// Package adapterregistry tracks the language server adapters the daemon
// knows how to run. Adapters registered at startup are active immediately;
// adapters in the available pool are promoted when workspace settings name
// them for a language.
package adapterregistry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/uber-go/tally/v4"
	"github.com/uber/lsp-router/src/lspr/entity"
	"github.com/uber/lsp-router/src/lspr/internal/langsettings"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyAdapters  = "adapters"
	_configKeyAvailable = "availableAdapters"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Registry answers which adapters apply at a workspace location.
type Registry interface {
	// ForLanguage returns the adapters to run for a language at a location,
	// in the order workspace settings dictate. Settings may disable the
	// language, reorder servers, or pull adapters in from the available
	// pool. A nil result means no servers should run.
	ForLanguage(loc entity.SettingsLocation, lang entity.LanguageName) []entity.Adapter
	// ForName resolves a single adapter by server name.
	ForName(name entity.ServerName) (entity.Adapter, bool)
	// LoadIfAvailable returns the active adapter for a name, promoting it
	// from the available pool if it is not yet active.
	LoadIfAvailable(name entity.ServerName) (entity.Adapter, bool)
	// Reorder records the order a lookup resolved adapters for a language,
	// so later rest marker expansions follow it. Adapters the lookup
	// omitted keep their registration after the resolved ones. Bookkeeping
	// only; already-returned results are unaffected.
	Reorder(lang entity.LanguageName, ordered []entity.Adapter)
	// Register makes an adapter active for all its declared languages.
	Register(a entity.Adapter) error
	// RegisterAvailable adds an adapter to the pool promoted on demand.
	RegisterAvailable(a entity.Adapter)
	// ManifestKinds returns every manifest file name any known adapter
	// anchors to, sorted, for file watch filtering.
	ManifestKinds() []entity.ManifestKind
	// ServerNames returns the active adapter names, sorted.
	ServerNames() []entity.ServerName
}

type registry struct {
	logger   *zap.SugaredLogger
	stats    tally.Scope
	settings langsettings.Resolver

	mu         sync.Mutex
	adapters   map[entity.ServerName]entity.Adapter
	available  map[entity.ServerName]entity.Adapter
	byLanguage map[entity.LanguageName][]entity.ServerName
}

// Params define the dependencies of the adapter registry.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
	Settings langsettings.Resolver
}

// New creates a Registry seeded from the daemon config.
func New(p Params) (Registry, error) {
	r := &registry{
		logger:     p.Logger,
		stats:      p.Stats.SubScope("adapters"),
		settings:   p.Settings,
		adapters:   make(map[entity.ServerName]entity.Adapter),
		available:  make(map[entity.ServerName]entity.Adapter),
		byLanguage: make(map[entity.LanguageName][]entity.ServerName),
	}

	var active []entity.Adapter
	if err := p.Config.Get(_configKeyAdapters).Populate(&active); err != nil {
		return nil, fmt.Errorf("reading %q config: %w", _configKeyAdapters, err)
	}
	for _, a := range active {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}

	var pool []entity.Adapter
	if err := p.Config.Get(_configKeyAvailable).Populate(&pool); err != nil {
		return nil, fmt.Errorf("reading %q config: %w", _configKeyAvailable, err)
	}
	for _, a := range pool {
		r.RegisterAvailable(a)
	}

	return r, nil
}

func (r *registry) ForLanguage(loc entity.SettingsLocation, lang entity.LanguageName) []entity.Adapter {
	ls := r.settings.LanguageSettings(loc, lang)
	if !ls.Enabled {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	names := r.expandServerOrder(lang, ls.Servers)

	out := make([]entity.Adapter, 0, len(names))
	for _, name := range names {
		a, ok := r.adapters[name]
		if !ok {
			a, ok = r.promoteLocked(name)
		}
		if !ok {
			r.logger.Debugw("settings name an unknown server", "server", name, "language", lang)
			continue
		}
		out = append(out, a)
	}
	return out
}

func (r *registry) LoadIfAvailable(name entity.ServerName) (entity.Adapter, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.adapters[name]; ok {
		return a, true
	}
	return r.promoteLocked(name)
}

func (r *registry) Reorder(lang entity.LanguageName, ordered []entity.Adapter) {
	if len(ordered) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	resolved := make([]entity.ServerName, 0, len(ordered))
	seen := make(map[entity.ServerName]struct{}, len(ordered))
	for _, a := range ordered {
		if _, ok := seen[a.Name]; ok {
			continue
		}
		seen[a.Name] = struct{}{}
		resolved = append(resolved, a.Name)
	}
	for _, reg := range r.byLanguage[lang] {
		if _, ok := seen[reg]; !ok {
			resolved = append(resolved, reg)
		}
	}
	r.byLanguage[lang] = resolved
}

// expandServerOrder resolves a settings-level server list against the
// adapters registered for the language. The rest marker splices in every
// registered server not explicitly listed, keeping registration order.
func (r *registry) expandServerOrder(lang entity.LanguageName, desired []entity.ServerName) []entity.ServerName {
	registered := r.byLanguage[lang]

	listed := make(map[entity.ServerName]struct{}, len(desired))
	for _, name := range desired {
		listed[name] = struct{}{}
	}

	out := make([]entity.ServerName, 0, len(desired)+len(registered))
	seen := make(map[entity.ServerName]struct{}, len(desired)+len(registered))
	for _, name := range desired {
		if name == entity.RestServersMarker {
			for _, reg := range registered {
				if _, ok := listed[reg]; ok {
					continue
				}
				if _, ok := seen[reg]; ok {
					continue
				}
				seen[reg] = struct{}{}
				out = append(out, reg)
			}
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// promoteLocked moves an adapter from the available pool into the active
// set. Callers must hold r.mu.
func (r *registry) promoteLocked(name entity.ServerName) (entity.Adapter, bool) {
	a, ok := r.available[name]
	if !ok {
		return entity.Adapter{}, false
	}

	r.adapters[name] = a
	for _, lang := range a.Languages {
		r.attachLocked(lang, name)
	}
	r.stats.Counter("adapters_promoted").Inc(1)
	r.logger.Infow("adapter promoted from available pool", "server", name)
	return a, true
}

func (r *registry) attachLocked(lang entity.LanguageName, name entity.ServerName) {
	for _, existing := range r.byLanguage[lang] {
		if existing == name {
			return
		}
	}
	r.byLanguage[lang] = append(r.byLanguage[lang], name)
}

func (r *registry) ForName(name entity.ServerName) (entity.Adapter, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.adapters[name]; ok {
		return a, true
	}
	if a, ok := r.available[name]; ok {
		return a, true
	}
	return entity.Adapter{}, false
}

func (r *registry) Register(a entity.Adapter) error {
	if a.Name == "" {
		return fmt.Errorf("adapter with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.adapters[a.Name]; ok {
		r.logger.Warnf("adapter %q registered twice, replacing", a.Name)
	}
	r.adapters[a.Name] = a
	for _, lang := range a.Languages {
		r.attachLocked(lang, a.Name)
	}
	return nil
}

func (r *registry) RegisterAvailable(a entity.Adapter) {
	if a.Name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.available[a.Name] = a
}

func (r *registry) ManifestKinds() []entity.ManifestKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[entity.ManifestKind]struct{})
	for _, a := range r.adapters {
		if a.Manifest != "" {
			seen[a.Manifest] = struct{}{}
		}
	}
	for _, a := range r.available {
		if a.Manifest != "" {
			seen[a.Manifest] = struct{}{}
		}
	}

	out := make([]entity.ManifestKind, 0, len(seen))
	for kind := range seen {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *registry) ServerNames() []entity.ServerName {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.ServerName, 0, len(r.adapters))
	for name := range r.adapters {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
