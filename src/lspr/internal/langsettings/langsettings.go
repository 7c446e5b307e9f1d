// Package langsettings resolves language and server configuration for a
// given workspace location. The base layer comes from the daemon
// configuration; each workspace folder may carry an override file that
// replaces individual language or server sections.
package langsettings

import (
	"fmt"
	"sync"

	"github.com/uber/lsp-router/src/lspr/entity"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	_configKeyLanguages    = "languages"
	_configKeyServers      = "servers"
	_configKeyOverrideFile = "router.overrideFileName"

	_defaultOverrideFileName = ".lspr.yaml"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Resolver resolves the effective settings for a language or server at a
// workspace location. Settings are resolved at workspace folder granularity;
// the location's path is accepted for future narrowing.
type Resolver interface {
	// LanguageSettings returns the resolved settings for a language. A
	// language with no configuration anywhere is enabled with all servers.
	LanguageSettings(loc entity.SettingsLocation, lang entity.LanguageName) entity.LanguageSettings
	// ServerSettings returns the configuration snapshot for a server. A
	// server with no configuration yields a zero snapshot.
	ServerSettings(loc entity.SettingsLocation, name entity.ServerName) entity.ServerConfig
	// ApplyWorkspaceOverrides replaces the override block for a folder with
	// the parsed contents of raw. Empty input clears the block.
	ApplyWorkspaceOverrides(folder entity.WorkspaceFolderID, raw []byte) error
	// DropWorkspaceOverrides removes the override block for a folder.
	DropWorkspaceOverrides(folder entity.WorkspaceFolderID)
	// OverrideFileName returns the per-folder override file name.
	OverrideFileName() string
}

// LanguageConfig is the on-disk shape of one language's settings. Enabled is
// a pointer so an absent key is distinguishable from an explicit false.
type LanguageConfig struct {
	Enabled *bool               `yaml:"enabled"`
	Servers []entity.ServerName `yaml:"servers"`
}

type settingsBlock struct {
	Languages map[entity.LanguageName]LanguageConfig    `yaml:"languages"`
	Servers   map[entity.ServerName]entity.ServerConfig `yaml:"servers"`
}

type resolver struct {
	mu           sync.RWMutex
	base         settingsBlock
	overrides    map[entity.WorkspaceFolderID]settingsBlock
	overrideFile string
	logger       *zap.SugaredLogger
}

// Params define the dependencies of the settings resolver.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
}

// New creates a Resolver whose base layer is read from the daemon config.
func New(p Params) (Resolver, error) {
	r := &resolver{
		overrides:    make(map[entity.WorkspaceFolderID]settingsBlock),
		overrideFile: _defaultOverrideFileName,
		logger:       p.Logger,
	}

	if err := p.Config.Get(_configKeyLanguages).Populate(&r.base.Languages); err != nil {
		return nil, fmt.Errorf("reading %q config: %w", _configKeyLanguages, err)
	}
	if err := p.Config.Get(_configKeyServers).Populate(&r.base.Servers); err != nil {
		return nil, fmt.Errorf("reading %q config: %w", _configKeyServers, err)
	}

	var overrideFile string
	if err := p.Config.Get(_configKeyOverrideFile).Populate(&overrideFile); err == nil && overrideFile != "" {
		r.overrideFile = overrideFile
	}

	return r, nil
}

func (r *resolver) LanguageSettings(loc entity.SettingsLocation, lang entity.LanguageName) entity.LanguageSettings {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := entity.LanguageSettings{
		Enabled: true,
		Servers: []entity.ServerName{entity.RestServersMarker},
	}
	if c, ok := r.base.Languages[lang]; ok {
		applyLanguageConfig(c, &out)
	}
	if ov, ok := r.overrides[loc.Folder]; ok {
		if c, ok := ov.Languages[lang]; ok {
			applyLanguageConfig(c, &out)
		}
	}
	return out
}

func (r *resolver) ServerSettings(loc entity.SettingsLocation, name entity.ServerName) entity.ServerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ov, ok := r.overrides[loc.Folder]; ok {
		if cfg, ok := ov.Servers[name]; ok {
			return cfg
		}
	}
	if cfg, ok := r.base.Servers[name]; ok {
		return cfg
	}
	return entity.ServerConfig{}
}

func (r *resolver) ApplyWorkspaceOverrides(folder entity.WorkspaceFolderID, raw []byte) error {
	if len(raw) == 0 {
		r.DropWorkspaceOverrides(folder)
		return nil
	}

	var block settingsBlock
	if err := yaml.Unmarshal(raw, &block); err != nil {
		return fmt.Errorf("parsing workspace overrides for %q: %w", folder, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[folder] = block
	r.logger.Infow("workspace overrides applied",
		"folder", folder,
		"languages", len(block.Languages),
		"servers", len(block.Servers),
	)
	return nil
}

func (r *resolver) DropWorkspaceOverrides(folder entity.WorkspaceFolderID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overrides, folder)
}

func (r *resolver) OverrideFileName() string {
	return r.overrideFile
}

// applyLanguageConfig layers one config entry over the resolved view. Only
// keys the entry actually sets are applied.
func applyLanguageConfig(c LanguageConfig, out *entity.LanguageSettings) {
	if c.Enabled != nil {
		out.Enabled = *c.Enabled
	}
	if c.Servers != nil {
		out.Servers = append([]entity.ServerName(nil), c.Servers...)
	}
}
