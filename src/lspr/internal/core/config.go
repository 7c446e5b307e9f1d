// Package core provides the configuration and logging foundation shared by
// all lspr-daemon components.
package core

import (
	"fmt"
	"os"
	"path/filepath"

	uber_config "go.uber.org/config"
	"go.uber.org/fx"
)

// ConfigModule provides the configuration provider to the fx graph.
var ConfigModule = fx.Options(
	fx.Provide(NewConfig),
)

const (
	_configDirEnv     = "LSPR_CONFIG_DIR"
	_configDirDefault = "src/lspr/config"
	_metaFile         = "meta.yaml"
)

// Config wraps a config provider so additional sources can be layered later.
type Config struct {
	provider uber_config.Provider
}

// Get returns the value at the given path.
func (c Config) Get(path string) uber_config.Value {
	return c.provider.Get(path)
}

// Name identifies the provider.
func (c Config) Name() string {
	return "config"
}

// NewConfig loads the daemon configuration. meta.yaml lists the YAML files to
// merge, in order; files that do not exist on this host are skipped.
// Environment variables are expanded in all loaded files.
func NewConfig() (uber_config.Provider, error) {
	configDir := getConfigDir()

	metaProvider, err := uber_config.NewYAML(
		uber_config.File(filepath.Join(configDir, _metaFile)),
		uber_config.Expand(os.LookupEnv),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load meta configuration: %w", err)
	}

	var configFiles []string
	if err := metaProvider.Get("files").Populate(&configFiles); err != nil {
		return nil, fmt.Errorf("failed to read files list from %s: %w", _metaFile, err)
	}

	options := make([]uber_config.YAMLOption, 0, len(configFiles)+1)
	for _, file := range configFiles {
		fullPath := filepath.Join(configDir, file)
		if _, err := os.Stat(fullPath); err == nil {
			options = append(options, uber_config.File(fullPath))
		}
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no configuration files found in %s", configDir)
	}
	options = append(options, uber_config.Expand(os.LookupEnv))

	provider, err := uber_config.NewYAML(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return Config{provider: provider}, nil
}

// getConfigDir returns the configuration directory, preferring the
// environment override. The default assumes the daemon is run from the
// workspace root.
func getConfigDir() string {
	if configDir := os.Getenv(_configDirEnv); configDir != "" {
		return configDir
	}
	return _configDirDefault
}
