package blob

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/compozy/netwatchgen/engine/core"
	"github.com/spf13/afero"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// FSStore keeps objects as files under <root>/<bucket>/<key>.
type FSStore struct {
	fs afero.Fs
}

// NewFSStore creates a store over fs. Use afero.NewBasePathFs to pin a root.
func NewFSStore(fs afero.Fs) *FSStore {
	return &FSStore{fs: fs}
}

// NewOSStore creates a store rooted at dir on the local filesystem.
func NewOSStore(dir string) *FSStore {
	return NewFSStore(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

func (s *FSStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.WrapError(core.ErrStorageCode, "read canceled", err)
	}
	p, err := objectPath(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewErrorf(core.ErrNotFoundCode, "object %s/%s does not exist", bucket, key).
				WithDetail("bucket", bucket).
				WithDetail("key", key)
		}
		return nil, core.WrapError(core.ErrStorageCode, "failed to read "+p, err)
	}
	return data, nil
}

func (s *FSStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return core.WrapError(core.ErrStorageCode, "write canceled", err)
	}
	p, err := objectPath(bucket, key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), dirPermissions); err != nil {
		return core.WrapError(core.ErrStorageCode, "failed to create directory for "+p, err)
	}
	if err := afero.WriteFile(s.fs, p, data, filePermissions); err != nil {
		return core.WrapError(core.ErrStorageCode, "failed to write "+p, err)
	}
	return nil
}

// objectPath maps bucket/key to a relative file path, refusing keys that
// would escape the bucket directory.
func objectPath(bucket, key string) (string, error) {
	if bucket == "" || key == "" {
		return "", core.NewErrorf(core.ErrStorageCode, "bucket and key are required (bucket=%q key=%q)", bucket, key)
	}
	if strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", core.NewErrorf(core.ErrStorageCode, "invalid bucket name %q", bucket)
	}
	clean := path.Clean("/" + key)
	if clean == "/" || clean != "/"+strings.TrimPrefix(key, "/") {
		return "", core.NewErrorf(core.ErrStorageCode, "invalid object key %q", key)
	}
	return filepath.Join(bucket, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
