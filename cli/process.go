package cli

import (
	"fmt"

	"github.com/compozy/netwatchgen/engine/ingest"
	"github.com/compozy/netwatchgen/pkg/config"
	"github.com/compozy/netwatchgen/pkg/logger"
	"github.com/spf13/cobra"
)

// ProcessCmd runs the handler once for keys given on the command line.
func ProcessCmd() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "process --bucket BUCKET KEY...",
		Short: "Convert the given objects as if a notification had arrived",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			log := logger.FromContext(ctx)
			handler, err := newHandler(ctx, cfg)
			if err != nil {
				return err
			}
			result, err := handler.Handle(ctx, ingest.FromPath(bucket, args...))
			if cfg.Metrics.Textfile != "" {
				if werr := handler.Metrics().WriteTextfile(cfg.Metrics.Textfile); werr != nil {
					log.Warn("Failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", werr)
				}
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result == nil {
				fmt.Fprintf(out, "No key under %q to process\n", cfg.Ingest.InputPath)
				return nil
			}
			fmt.Fprintln(out, result.Body)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket holding the objects")
	cmd.Flags().String("metrics-textfile", "", "Write Prometheus metrics to this file after the run")
	_ = cmd.MarkFlagRequired("bucket")
	return cmd
}
