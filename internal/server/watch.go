package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch monitors the configured source directories and triggers debounced
// rebuilds. It returns when ctx is cancelled.
func (s *Server) watch(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Error("watcher setup failed", "error", err)
		return
	}
	defer watcher.Close()

	for _, dir := range s.cfg.WatchDirs {
		if err := addRecursive(watcher, dir); err != nil {
			s.log.Warn("watch directory skipped", "dir", dir, "error", err)
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Chmod-only events carry no content change.
			if evt.Op == fsnotify.Chmod {
				continue
			}
			s.log.Debug("source changed", "path", evt.Name, "op", evt.Op.String())

			// New directories are not watched automatically.
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, evt.Name); err != nil {
						s.log.Warn("watch directory skipped", "dir", evt.Name, "error", err)
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.cfg.Debounce, func() {
				s.runRebuild(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Error("watcher error", "error", err)
		}
	}
}

func (s *Server) runRebuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.log.Info("rebuilding after source change")
	if err := s.rebuild(ctx); err != nil {
		s.log.Error("rebuild failed", "error", err)
		return
	}
	s.log.Info("rebuild complete")
}

func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		return watcher.Add(p)
	})
}
