package cli

import (
	"context"
	"fmt"

	"github.com/compozy/netwatchgen/pkg/config"
	"github.com/compozy/netwatchgen/pkg/logger"
	"github.com/compozy/netwatchgen/pkg/version"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "netwatchgen.yaml"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "netwatchgen",
		Short:         "Convert host inventories into RouterOS netwatch scripts",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", defaultConfigFile, "Path to configuration file")
	flags.String("env-file", ".env", "Path to environment file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.Bool("log-source", false, "Report the caller of each log line")
	flags.String("input-path", "", "Key prefix of input files")
	flags.String("output-path", "", "Key prefix of generated files")
	flags.String("mode", "", "Records handled per event (first, all)")
	flags.String("list-variable", "", "Name of the global array in generated scripts")
	flags.String("storage-driver", "", "Blob store driver (fs, s3)")
	flags.String("storage-root", "", "Root directory of the fs driver")
	flags.String("region", "", "AWS region of the s3 driver")
	flags.String("endpoint", "", "Custom S3 endpoint, e.g. MinIO or LocalStack")
	flags.Bool("use-path-style", false, "Use path-style S3 addressing")

	root.AddCommand(
		LambdaCmd(),
		ProcessCmd(),
		WatchCmd(),
		ConfigCmd(),
	)

	return root
}

// SetupGlobalConfig loads the environment file and the configuration, sets
// up the logger and injects both into the command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, _, err := loadConfigWithSources(ctx, cmd, configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.SetupLogger(cfg.Runtime.LogLevel, cfg.Runtime.LogJSON, cfg.Runtime.LogSource)
	ctx = config.ContextWithConfig(ctx, cfg)
	ctx = logger.ContextWithLogger(ctx, log)
	cmd.SetContext(ctx)
	return nil
}
