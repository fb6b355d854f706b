package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	data       map[string]any
	sourceType SourceType
	err        error
}

func (m *mockSource) Load() (map[string]any, error) {
	return m.data, m.err
}

func (m *mockSource) Type() SourceType {
	return m.sourceType
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should load default configuration when no sources provided", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		service := NewService()

		// Act
		cfg, err := service.Load(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "input/", cfg.Ingest.InputPath)
		assert.Equal(t, "output/", cfg.Ingest.OutputPath)
		assert.Equal(t, ModeFirst, cfg.Ingest.Mode)
		assert.Equal(t, StorageDriverS3, cfg.Storage.Driver)
		assert.Equal(t, "info", cfg.Runtime.LogLevel)
		assert.Equal(t, SourceDefault, service.GetSource("ingest.mode"))
	})

	t.Run("Should apply sources in precedence order", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		service := NewService()
		yamlSource := &mockSource{
			data: map[string]any{
				"ingest": map[string]any{
					"input_path":  "uploads/",
					"output_path": "generated/",
				},
			},
			sourceType: SourceYAML,
		}
		cliSource := &mockSource{
			data: map[string]any{
				"ingest": map[string]any{
					"output_path": "netwatch/",
				},
			},
			sourceType: SourceCLI,
		}

		// Act
		cfg, err := service.Load(ctx, cliSource, yamlSource)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "uploads/", cfg.Ingest.InputPath)
		assert.Equal(t, "netwatch/", cfg.Ingest.OutputPath)
		assert.Equal(t, SourceYAML, service.GetSource("ingest.input_path"))
		assert.Equal(t, SourceCLI, service.GetSource("ingest.output_path"))
	})

	t.Run("Should read mapped environment variables", func(t *testing.T) {
		// Arrange
		t.Setenv("INPUT_PATH", "drop/")
		t.Setenv("INGEST_MODE", "all")
		t.Setenv("STORAGE_USE_PATH_STYLE", "true")
		t.Setenv("LOG_JSON", "true")

		// Act
		service := NewService()
		cfg, err := service.Load(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "drop/", cfg.Ingest.InputPath)
		assert.Equal(t, ModeAll, cfg.Ingest.Mode)
		assert.True(t, cfg.Storage.UsePathStyle)
		assert.True(t, cfg.Runtime.LogJSON)
		assert.Equal(t, SourceEnv, service.GetSource("ingest.mode"))
	})

	t.Run("Should let CLI flags override environment variables", func(t *testing.T) {
		// Arrange
		t.Setenv("INGEST_MODE", "all")
		cli := NewCLIProvider(map[string]any{"mode": "first"})

		// Act
		cfg, err := NewService().Load(context.Background(), cli)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, ModeFirst, cfg.Ingest.Mode)
	})

	t.Run("Should ignore environment variables without a mapping", func(t *testing.T) {
		// Arrange
		t.Setenv("INGEST_UNKNOWN", "x")

		// Act
		_, err := NewService().Load(context.Background())

		// Assert
		require.NoError(t, err)
	})

	t.Run("Should surface source errors", func(t *testing.T) {
		// Arrange
		source := &mockSource{err: errors.New("unreadable"), sourceType: SourceYAML}

		// Act
		_, err := NewService().Load(context.Background(), source)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreadable")
	})

	t.Run("Should reject an unknown mode", func(t *testing.T) {
		// Arrange
		cli := NewCLIProvider(map[string]any{"mode": "some"})

		// Act
		_, err := NewService().Load(context.Background(), cli)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("Should reject a list variable that is not alphanumeric", func(t *testing.T) {
		// Arrange
		cli := NewCLIProvider(map[string]any{"list-variable": "my list"})

		// Act
		_, err := NewService().Load(context.Background(), cli)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("Should take the list variable from the environment", func(t *testing.T) {
		// Arrange
		t.Setenv("SCRIPT_LIST_VARIABLE", "hosts")

		// Act
		cfg, err := NewService().Load(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "hosts", cfg.Ingest.ListVariable)
	})

	t.Run("Should load values from a YAML file", func(t *testing.T) {
		// Arrange
		path := filepath.Join(t.TempDir(), "netwatchgen.yaml")
		content := "ingest:\n  mode: all\nstorage:\n  driver: fs\n  root_dir: /srv/data\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// Act
		cfg, err := NewService().Load(context.Background(), NewYAMLProvider(path))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, ModeAll, cfg.Ingest.Mode)
		assert.Equal(t, StorageDriverFS, cfg.Storage.Driver)
		assert.Equal(t, "/srv/data", cfg.Storage.RootDir)
		assert.Equal(t, "input/", cfg.Ingest.InputPath)
	})
}

func TestLoader_Validate(t *testing.T) {
	service := NewService()

	t.Run("Should accept the default configuration", func(t *testing.T) {
		assert.NoError(t, service.Validate(Default()))
	})

	t.Run("Should reject nil configuration", func(t *testing.T) {
		assert.Error(t, service.Validate(nil))
	})

	t.Run("Should reject an output path inside the input path", func(t *testing.T) {
		// Arrange
		cfg := Default()
		cfg.Ingest.OutputPath = "input/generated/"

		// Act
		err := service.Validate(cfg)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be inside input_path")
	})

	t.Run("Should reject traversal in key prefixes", func(t *testing.T) {
		cfg := Default()
		cfg.Ingest.InputPath = "../input/"
		assert.Error(t, service.Validate(cfg))
	})

	t.Run("Should reject absolute key prefixes", func(t *testing.T) {
		cfg := Default()
		cfg.Ingest.OutputPath = "/output/"
		assert.Error(t, service.Validate(cfg))
	})

	t.Run("Should reject an empty output path", func(t *testing.T) {
		cfg := Default()
		cfg.Ingest.OutputPath = ""
		assert.Error(t, service.Validate(cfg))
	})

	t.Run("Should reject an invalid storage endpoint", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Endpoint = "not a url"
		assert.Error(t, service.Validate(cfg))
	})

	t.Run("Should require a root directory for the fs driver", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Driver = StorageDriverFS
		cfg.Storage.RootDir = ""
		assert.Error(t, service.Validate(cfg))
	})
}
