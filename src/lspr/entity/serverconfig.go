package entity

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ServerConfig is the configuration snapshot a server node is created with.
// Snapshot equality is the sole criterion for carrying a server identity
// across a rebase.
type ServerConfig struct {
	// Binary overrides the adapter's default launch command when set.
	Binary *BinaryConfig `yaml:"binary,omitempty" json:"binary,omitempty"`
	// InitializationOptions are passed in the initialize request.
	InitializationOptions map[string]any `yaml:"initializationOptions,omitempty" json:"initializationOptions,omitempty"`
	// Settings are pushed via workspace/didChangeConfiguration.
	Settings map[string]any `yaml:"settings,omitempty" json:"settings,omitempty"`
}

// BinaryConfig overrides how a server binary is launched.
type BinaryConfig struct {
	Path string            `yaml:"path" json:"path"`
	Args []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Env  map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// Fingerprint returns a canonical JSON rendering of the config. Two configs
// with the same fingerprint are equal regardless of map iteration order or
// the YAML decoder that produced them.
func (c ServerConfig) Fingerprint() string {
	v := map[string]any{}
	if c.Binary != nil {
		v["binary"] = map[string]any{
			"path": c.Binary.Path,
			"args": c.Binary.Args,
			"env":  c.Binary.Env,
		}
	}
	if len(c.InitializationOptions) > 0 {
		v["initializationOptions"] = canonicalize(c.InitializationOptions)
	}
	if len(c.Settings) > 0 {
		v["settings"] = canonicalize(c.Settings)
	}
	b, err := json.Marshal(v)
	if err != nil {
		// Maps holding non-serializable values cannot come from YAML or
		// JSON-RPC payloads, but render them distinctly rather than panic.
		return fmt.Sprintf("unserializable: %v", err)
	}
	return string(b)
}

// Equal reports whether two config snapshots are equivalent.
func (c ServerConfig) Equal(other ServerConfig) bool {
	return c.Fingerprint() == other.Fingerprint()
}

// canonicalize rewrites YAML-decoded value trees into json.Marshal-friendly
// form. yaml.v2 (used by the config provider) decodes nested mappings as
// map[interface{}]interface{}, which encoding/json rejects.
func canonicalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = canonicalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = canonicalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = canonicalize(val)
		}
		return out
	default:
		return v
	}
}

// LanguageSettings is the resolved per-location view of a language's
// configuration.
type LanguageSettings struct {
	// Enabled gates resolution entirely: a disabled language yields no
	// servers.
	Enabled bool
	// Servers is the desired server ordering. It may contain
	// RestServersMarker to splice in all remaining registered servers.
	Servers []ServerName
}

// SortServerRefs orders refs by ID ascending, in place, and returns the
// slice.
func SortServerRefs(refs []ServerRef) []ServerRef {
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}
