package cli

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/compozy/netwatchgen/engine/ingest"
	"github.com/compozy/netwatchgen/pkg/config"
	"github.com/compozy/netwatchgen/pkg/logger"
	"github.com/spf13/cobra"
)

// LambdaCmd starts the AWS Lambda runtime loop for S3 notifications.
func LambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda function triggered by S3 notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			handler, err := newHandler(ctx, config.FromContext(ctx))
			if err != nil {
				return err
			}
			lambda.StartWithOptions(newLambdaHandler(handler, logger.FromContext(ctx)), lambda.WithContext(ctx))
			return nil
		},
	}
}

func newLambdaHandler(
	handler *ingest.Handler,
	log logger.Logger,
) func(context.Context, events.S3Event) (*ingest.Result, error) {
	return func(ctx context.Context, e events.S3Event) (*ingest.Result, error) {
		ctx = logger.ContextWithLogger(ctx, log)
		return handler.Handle(ctx, ingest.FromS3Event(e))
	}
}
