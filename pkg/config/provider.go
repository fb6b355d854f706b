package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// cliFlagPaths maps persistent CLI flag names to configuration paths.
var cliFlagPaths = map[string]string{
	"input-path":       "ingest.input_path",
	"output-path":      "ingest.output_path",
	"mode":             "ingest.mode",
	"list-variable":    "ingest.list_variable",
	"storage-driver":   "storage.driver",
	"storage-root":     "storage.root_dir",
	"region":           "storage.region",
	"endpoint":         "storage.endpoint",
	"use-path-style":   "storage.use_path_style",
	"log-level":        "runtime.log_level",
	"log-json":         "runtime.log_json",
	"log-source":       "runtime.log_source",
	"metrics-textfile": "metrics.textfile",
}

// CLIFlagNames returns the flag names understood by the CLI provider.
func CLIFlagNames() []string {
	names := make([]string, 0, len(cliFlagPaths))
	for name := range cliFlagPaths {
		names = append(names, name)
	}
	return names
}

// cliProvider implements Source interface for CLI flags.
type cliProvider struct {
	flags map[string]any
}

// NewCLIProvider creates a new CLI flags configuration source.
// Only flags the user actually set should be passed in.
func NewCLIProvider(flags map[string]any) Source {
	return &cliProvider{
		flags: flags,
	}
}

// Load returns the CLI flags as configuration data.
func (c *cliProvider) Load() (map[string]any, error) {
	config := make(map[string]any)
	for key, value := range c.flags {
		path, ok := cliFlagPaths[key]
		if !ok {
			continue
		}
		if err := setNested(config, path, value); err != nil {
			return nil, fmt.Errorf("failed to set CLI flag %s: %w", key, err)
		}
	}
	return config, nil
}

// Type returns the source type identifier.
func (c *cliProvider) Type() SourceType {
	return SourceCLI
}

// setNested sets a value in a nested map structure using dot notation.
// It returns an error if a path conflict is encountered.
func setNested(m map[string]any, path string, value any) error {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if _, exists := current[part]; !exists {
			current[part] = make(map[string]any)
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return fmt.Errorf("configuration conflict: key %q is not a map", strings.Join(parts[:i+1], "."))
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// yamlProvider implements Source interface for YAML files.
type yamlProvider struct {
	path string
}

// NewYAMLProvider creates a new YAML file configuration source.
// A missing file yields an empty configuration.
func NewYAMLProvider(path string) Source {
	return &yamlProvider{
		path: path,
	}
}

// Load reads configuration from a YAML file.
func (y *yamlProvider) Load() (map[string]any, error) {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file: %w", err)
	}
	return filterNilValues(config), nil
}

// Type returns the source type identifier.
func (y *yamlProvider) Type() SourceType {
	return SourceYAML
}

// filterNilValues recursively removes nil values from a map
// This prevents koanf from overriding existing values with nil
func filterNilValues(m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		if v == nil {
			continue
		}
		if nestedMap, ok := v.(map[string]any); ok {
			filtered := filterNilValues(nestedMap)
			if len(filtered) > 0 {
				result[k] = filtered
			}
			continue
		}
		result[k] = v
	}
	return result
}

// defaultProvider implements Source interface for default values.
type defaultProvider struct{}

// NewDefaultProvider creates a new default configuration source.
func NewDefaultProvider() Source {
	return &defaultProvider{}
}

// Load returns the default configuration values.
func (d *defaultProvider) Load() (map[string]any, error) {
	cfg := Default()
	return map[string]any{
		"ingest": map[string]any{
			"input_path":    cfg.Ingest.InputPath,
			"output_path":   cfg.Ingest.OutputPath,
			"mode":          cfg.Ingest.Mode,
			"list_variable": cfg.Ingest.ListVariable,
		},
		"storage": map[string]any{
			"driver":         cfg.Storage.Driver,
			"root_dir":       cfg.Storage.RootDir,
			"region":         cfg.Storage.Region,
			"endpoint":       cfg.Storage.Endpoint,
			"use_path_style": cfg.Storage.UsePathStyle,
		},
		"runtime": map[string]any{
			"log_level":  cfg.Runtime.LogLevel,
			"log_json":   cfg.Runtime.LogJSON,
			"log_source": cfg.Runtime.LogSource,
		},
		"metrics": map[string]any{
			"textfile": cfg.Metrics.Textfile,
		},
	}, nil
}

// Type returns the source type identifier.
func (d *defaultProvider) Type() SourceType {
	return SourceDefault
}
