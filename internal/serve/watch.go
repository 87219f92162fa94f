package serve

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay batches the event bursts editors produce into one rebuild.
const debounceDelay = 500 * time.Millisecond

// startWatcher watches the docs tree, the configuration file and any custom
// theme directory, and spawns the rebuild loop.
func (s *Server) startWatcher(ctx context.Context) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	docsDir := s.cfg.AbsDocsDir()
	if err := watchTree(watcher, docsDir); err != nil {
		watcher.Close()
		return nil, err
	}
	if s.ConfigPath != "" {
		// Editors replace files on save, so watch the directory rather
		// than the file itself.
		if err := watcher.Add(filepath.Dir(s.ConfigPath)); err != nil {
			s.log.Warn("cannot watch config file", "path", s.ConfigPath, "error", err)
		}
	}
	themeDir := s.cfg.AbsThemeDir()
	if themeDir != "" {
		if err := watchTree(watcher, themeDir); err != nil {
			s.log.Warn("cannot watch theme directory", "path", themeDir, "error", err)
			themeDir = ""
		}
	}

	go s.watchLoop(ctx, watcher, docsDir, themeDir)
	return watcher, nil
}

// watchTree adds dir and every subdirectory to the watcher. fsnotify watches
// are not recursive.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// watchLoop debounces filesystem events into rebuilds. Timer callbacks only
// signal rebuildCh; the builds themselves run on this goroutine so state and
// configuration are never touched concurrently.
func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, docsDir, themeDir string) {
	var timer *time.Timer
	rebuildCh := make(chan struct{}, 1)
	pendingReload := false

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			configChanged := s.ConfigPath != "" && event.Name == s.ConfigPath
			if !configChanged && !underDir(event.Name, docsDir) && !underDir(event.Name, themeDir) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New subdirectories are not watched automatically.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						s.log.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			s.log.Debug("change detected", "path", event.Name, "op", event.Op.String())
			pendingReload = pendingReload || configChanged
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case rebuildCh <- struct{}{}:
				default:
				}
			})
		case <-rebuildCh:
			reload := pendingReload
			pendingReload = false
			if err := s.rebuild(ctx, reload); err != nil {
				s.log.Error("rebuild failed", "error", err)
			} else {
				s.log.Info("site rebuilt")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", "error", err)
		}
	}
}

func underDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
