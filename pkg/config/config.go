package config

import (
	"context"
	"time"
)

// Ingest modes
const (
	// ModeFirst processes only the first qualifying record of an event.
	ModeFirst = "first"
	// ModeAll processes every qualifying record of an event in order.
	ModeAll = "all"
)

// Storage drivers
const (
	StorageDriverFS = "fs"
	StorageDriverS3 = "s3"
)

// Config represents the complete configuration for the converter.
// It is loaded once at startup and passed to the components that need it.
type Config struct {
	Ingest  IngestConfig  `koanf:"ingest"`
	Storage StorageConfig `koanf:"storage"`
	Runtime RuntimeConfig `koanf:"runtime"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// IngestConfig controls which keys are processed and where artifacts go.
type IngestConfig struct {
	InputPath    string `koanf:"input_path"    validate:"key_prefix"          env:"INPUT_PATH"`
	OutputPath   string `koanf:"output_path"   validate:"required,key_prefix" env:"OUTPUT_PATH"`
	Mode         string `koanf:"mode"          validate:"oneof=first all"     env:"INGEST_MODE"`
	ListVariable string `koanf:"list_variable" validate:"omitempty,alphanum"  env:"SCRIPT_LIST_VARIABLE"`
}

// StorageConfig selects and configures the blob store.
type StorageConfig struct {
	Driver       string `koanf:"driver"         validate:"oneof=fs s3"  env:"STORAGE_DRIVER"`
	RootDir      string `koanf:"root_dir"                               env:"STORAGE_ROOT_DIR"`
	Region       string `koanf:"region"                                 env:"AWS_REGION"`
	Endpoint     string `koanf:"endpoint"       validate:"omitempty,url" env:"STORAGE_ENDPOINT"`
	UsePathStyle bool   `koanf:"use_path_style"                         env:"STORAGE_USE_PATH_STYLE"`
}

// RuntimeConfig contains process-level behavior.
type RuntimeConfig struct {
	LogLevel  string `koanf:"log_level"  validate:"oneof=debug info warn error" env:"LOG_LEVEL"`
	LogJSON   bool   `koanf:"log_json"                                         env:"LOG_JSON"`
	LogSource bool   `koanf:"log_source"                                       env:"LOG_SOURCE"`
}

// MetricsConfig controls the optional Prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `koanf:"textfile" env:"METRICS_TEXTFILE"`
}

// Service defines the configuration loading interface.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type that provided a configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Ingest: IngestConfig{
			InputPath:  "input/",
			OutputPath: "output/",
			Mode:       ModeFirst,
		},
		Storage: StorageConfig{
			Driver:  StorageDriverS3,
			RootDir: ".",
		},
		Runtime: RuntimeConfig{
			LogLevel: "info",
		},
	}
}
