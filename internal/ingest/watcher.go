package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type WatchConfig struct {
	Roots       []string
	SkipHidden  bool
	InitialScan bool          // emit files already present under the roots
	Debounce    time.Duration // coalesce rapid create/write bursts per path
}

// Watch emits paths of accepted documents as they appear under the roots.
// Both channels are closed when ctx is done.
func Watch(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan string, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Roots) == 0 {
		return nil, nil, errors.New("no roots provided")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("ingest.watch.create_failed", "error", err)
		return nil, nil, err
	}

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	accept := func(path string) bool {
		return AllowedExt(filepath.Ext(path)) && !(cfg.SkipHidden && IsHidden(path))
	}
	var initial []string
	for _, root := range cfg.Roots {
		werr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if cfg.SkipHidden && path != root && IsHidden(path) {
					return filepath.SkipDir
				}
				return w.Add(path)
			}
			if cfg.InitialScan && accept(path) {
				initial = append(initial, path)
			}
			return nil
		})
		if werr != nil {
			logger.Error("ingest.watch.add_failed", "root", root, "error", werr)
			_ = w.Close()
			return nil, nil, werr
		}
	}

	go func() {
		var (
			mu      sync.Mutex
			pending = map[string]*time.Timer{}
			wg      sync.WaitGroup
		)
		defer func() {
			mu.Lock()
			for p, t := range pending {
				if t.Stop() {
					wg.Done()
				}
				delete(pending, p)
			}
			mu.Unlock()
			wg.Wait()
			if err := w.Close(); err != nil {
				logger.Warn("ingest.watch.close_failed", "error", err)
			}
			close(evCh)
			close(errCh)
		}()

		emit := func(path string) {
			select {
			case evCh <- path:
			case <-ctx.Done():
			}
		}
		for _, p := range initial {
			emit(p)
		}
		schedule := func(path string) {
			if cfg.Debounce <= 0 {
				emit(path)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if t, ok := pending[path]; ok && t.Stop() {
				t.Reset(cfg.Debounce)
				return
			}
			wg.Add(1)
			pending[path] = time.AfterFunc(cfg.Debounce, func() {
				defer wg.Done()
				mu.Lock()
				delete(pending, path)
				mu.Unlock()
				emit(path)
			})
		}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Has(fsnotify.Create) {
					if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
						if err := w.Add(e.Name); err != nil {
							logger.Warn("ingest.watch.add_failed", "path", e.Name, "error", err)
						}
						continue
					}
				}
				if accept(e.Name) && (e.Has(fsnotify.Create) || e.Has(fsnotify.Write) || e.Has(fsnotify.Rename)) {
					schedule(e.Name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("ingest.watch.error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	logger.Info("ingest.watch.started", "roots", cfg.Roots, "debounce", cfg.Debounce)
	return evCh, errCh, nil
}
