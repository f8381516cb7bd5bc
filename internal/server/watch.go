package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces bursts of events (editors often write, chmod and
// rename in quick succession) into one reload.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a site's syntax set when its syntaxes directory changes.
type Watcher struct {
	site    Site
	log     *slog.Logger
	watcher *fsnotify.Watcher
	delay   time.Duration
}

// NewWatcher starts watching site.SyntaxesDir(). Events are handled by Run.
func NewWatcher(site Site, log *slog.Logger) (*Watcher, error) {
	dir := site.SyntaxesDir()
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	log.Debug("watching syntaxes", "dir", dir)
	return &Watcher{site: site, log: log, watcher: fw, delay: reloadDelay}, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run handles events until ctx is done or the watcher is closed. A failed
// reload is logged and the previous syntax set stays in use.
func (w *Watcher) Run(ctx context.Context) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isSyntaxFile(ev.Name) {
				continue
			}
			w.log.Debug("syntax file changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			if err := w.site.ReloadSyntaxes(); err != nil {
				w.log.Error("couldn't reload syntaxes, keeping previous set", "error", err)
				continue
			}
			w.log.Info("syntaxes reloaded")
		}
	}
}

func isSyntaxFile(name string) bool {
	base := filepath.Base(name)
	return strings.EqualFold(filepath.Ext(base), ".xml") && !strings.HasPrefix(base, ".")
}
