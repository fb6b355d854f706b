package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/compozy/netwatchgen/engine/infra/blob"
	"github.com/compozy/netwatchgen/engine/ingest"
	"github.com/compozy/netwatchgen/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// extractCLIFlags extracts command line flags from a cobra command into a map.
// It processes only flags that have been explicitly changed by the user.
func extractCLIFlags(cmd *cobra.Command, flags map[string]any) {
	for _, name := range config.CLIFlagNames() {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		flags[name] = flag.Value.String()
	}
}

// loadConfigWithSources loads configuration and reports which source set
// each non-default key.
func loadConfigWithSources(
	ctx context.Context,
	cmd *cobra.Command,
	configFile string,
) (*config.Config, map[string]config.SourceType, error) {
	service := config.NewService()
	var sources []config.Source
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	cliFlags := make(map[string]any)
	extractCLIFlags(cmd, cliFlags)
	if len(cliFlags) > 0 {
		sources = append(sources, config.NewCLIProvider(cliFlags))
	}
	cfg, err := service.Load(ctx, sources...)
	if err != nil {
		return nil, nil, err
	}
	sourceMap := make(map[string]config.SourceType)
	for key := range flattenConfig(cfg) {
		if source := service.GetSource(key); source != config.SourceDefault {
			sourceMap[key] = source
		}
	}
	return cfg, sourceMap, nil
}

// newHandler builds the blob store named by the configuration and an
// ingest handler on top of it.
func newHandler(ctx context.Context, cfg *config.Config) (*ingest.Handler, error) {
	store, err := blob.New(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}
	return ingest.NewHandler(store, cfg.Ingest, nil), nil
}

// loadEnvFile loads environment variables from a file with security validation
func loadEnvFile(cmd *cobra.Command) (string, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return "", fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return envFile, nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return "", fmt.Errorf("env file path '%s' is outside the project directory", envFile)
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return absPath, nil
		}
		return "", fmt.Errorf("failed to stat env file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return "", fmt.Errorf("env file path '%s' is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return "", fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return absPath, nil
}

// isPathWithinDirectory checks if a given path is within the specified directory
func isPathWithinDirectory(path, dir string) bool {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return false
	}
	if !strings.HasSuffix(absDir, string(filepath.Separator)) {
		absDir += string(filepath.Separator)
	}
	return strings.HasPrefix(absPath, absDir) || absPath == strings.TrimSuffix(absDir, string(filepath.Separator))
}
