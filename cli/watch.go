package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/compozy/netwatchgen/engine/ingest"
	"github.com/compozy/netwatchgen/pkg/config"
	"github.com/compozy/netwatchgen/pkg/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"
	"github.com/spf13/cobra"
)

const (
	// Quiet period after the last write before a file is handled
	fileSettleDelay = 500 * time.Millisecond
	// A file being written continuously is still handled this often
	fileSettleMaxWait = 5 * time.Second
)

// WatchCmd handles files as they appear under the input path of the fs driver.
func WatchCmd() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "watch --bucket BUCKET",
		Short: "Watch the local input directory and convert new files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			if cfg.Storage.Driver != config.StorageDriverFS {
				return fmt.Errorf("watch requires the %q storage driver, got %q", config.StorageDriverFS, cfg.Storage.Driver)
			}
			handler, err := newHandler(ctx, cfg)
			if err != nil {
				return err
			}
			return runWatch(ctx, cfg, bucket, handler, fileSettleDelay)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket directory under the storage root")
	_ = cmd.MarkFlagRequired("bucket")
	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config, bucket string, handler *ingest.Handler, wait time.Duration) error {
	log := logger.FromContext(ctx)
	bucketDir := filepath.Join(cfg.Storage.RootDir, bucket)
	inputDir := filepath.Join(bucketDir, filepath.FromSlash(cfg.Ingest.InputPath))
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create input directory: %w", err)
	}
	w, err := newFileWatcher(bucketDir, wait)
	if err != nil {
		return err
	}
	defer w.close()
	if err := w.addRecursive(inputDir, false); err != nil {
		return err
	}
	log.Info("Watching for input files", "dir", inputDir, "bucket", bucket)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.drain(ctx, func(key string) {
			if _, err := handler.Handle(ctx, ingest.FromPath(bucket, key)); err != nil {
				log.Warn("Input file was not converted", "key", key, "error", err)
			}
		})
	}()
	err = w.watch(ctx)
	wg.Wait()
	return err
}

// fileWatcher turns fsnotify events into debounced, serialized keys.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	root     string
	wait     time.Duration
	pending  chan string
	done     chan struct{}
	mu       sync.Mutex
	debounce map[string]func()
	cancels  []func()
}

func newFileWatcher(root string, wait time.Duration) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &fileWatcher{
		watcher:  watcher,
		root:     root,
		wait:     wait,
		pending:  make(chan string, 64),
		done:     make(chan struct{}),
		debounce: make(map[string]func()),
	}, nil
}

// addRecursive watches dir and its subdirectories. With scheduleFiles set,
// files already present are scheduled as well.
func (w *fileWatcher) addRecursive(dir string, scheduleFiles bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			return nil
		}
		if scheduleFiles && d.Type().IsRegular() {
			w.schedule(path)
		}
		return nil
	})
}

func (w *fileWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn, ok := w.debounce[path]
	if !ok {
		var cancel func()
		fn, cancel = debounce.NewWithMaxWait(w.wait, fileSettleMaxWait, func() {
			select {
			case w.pending <- path:
			case <-w.done:
			}
		})
		w.debounce[path] = fn
		w.cancels = append(w.cancels, cancel)
	}
	fn()
}

// watch consumes watcher events until ctx is canceled.
func (w *fileWatcher) watch(ctx context.Context) error {
	log := logger.FromContext(ctx)
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if err := w.addRecursive(event.Name, true); err != nil {
					log.Warn("Failed to watch new directory", "path", event.Name, "error", err)
				}
				continue
			}
			if info.Mode().IsRegular() {
				log.Debug("Detected file change, debouncing...", "file", event.Name)
				w.schedule(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("Watcher error", "error", err)
		}
	}
}

// drain hands settled files to handle one at a time.
func (w *fileWatcher) drain(ctx context.Context, handle func(key string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case path := <-w.pending:
			rel, err := filepath.Rel(w.root, path)
			if err != nil {
				continue
			}
			handle(filepath.ToSlash(rel))
		}
	}
}

func (w *fileWatcher) close() {
	w.mu.Lock()
	for _, cancel := range w.cancels {
		cancel()
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}
