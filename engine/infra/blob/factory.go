package blob

import (
	"context"
	"fmt"

	"github.com/compozy/netwatchgen/pkg/config"
)

// New builds the store selected by the storage configuration.
func New(ctx context.Context, cfg *config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverFS:
		return NewOSStore(cfg.RootDir), nil
	case config.StorageDriverS3:
		client, err := NewS3Client(ctx, S3Options{
			Region:       cfg.Region,
			Endpoint:     cfg.Endpoint,
			UsePathStyle: cfg.UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return NewS3Store(client), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
