// Package blob provides the object storage the converter reads inputs
// from and writes artifacts to.
package blob

import (
	"context"
	"path"
	"strings"
)

// Store is a bucket/key blob store.
type Store interface {
	// Get returns the object bytes or a NOT_FOUND error.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// Put writes the object, replacing any existing one. Failures are
	// reported as STORAGE_ERROR.
	Put(ctx context.Context, bucket, key string, data []byte) error
}

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// contentType picks the artifact content type from the key extension.
func contentType(key string) string {
	if strings.EqualFold(path.Ext(key), ".csv") {
		return contentTypeCSV
	}
	return contentTypeText
}
