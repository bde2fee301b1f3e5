// Package watch re-runs the checks when storefront files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"creator-store-check/internal/config"
)

// Targets lists the files whose changes trigger a new run: the storefront
// files and the catalog.
func Targets(cfg *config.Config) []string {
	names := append([]string{}, cfg.Files.Required...)
	names = append(names, cfg.Files.StoreHTML, cfg.Files.PaymentSystem, cfg.Files.DomainConfig, cfg.Files.DeployGuide)

	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if p == "" {
			return
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, n := range names {
		if n != "" {
			add(cfg.StorePath(n))
		}
	}
	add(cfg.ResolvedCatalogPath())
	return out
}

// Watcher watches the directories of a fixed set of files and calls
// onChange once per burst of events, after the debounce window is quiet.
// Events for other files in those directories (reports, history) are ignored.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	targets  map[string]bool
	debounce time.Duration
	onChange func(ctx context.Context, changed []string)
	log      *zap.Logger

	pending   map[string]struct{}
	lastEvent time.Time

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

func New(files []string, debounce time.Duration, onChange func(ctx context.Context, changed []string), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	targets := make(map[string]bool, len(files))
	for _, f := range files {
		targets[filepath.Clean(f)] = true
	}
	return &Watcher{
		fsw:      fsw,
		targets:  targets,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		pending:  map[string]struct{}{},
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start adds the watched directories and starts the event loop. It does not
// block. A directory that does not exist yet is logged and skipped.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs := map[string]bool{}
	for f := range w.targets {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.fsw.Add(d); err != nil {
			w.log.Warn("watch: cannot watch directory", zap.String("dir", d), zap.Error(err))
			continue
		}
		w.log.Debug("watch: watching", zap.String("dir", d))
	}

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and waits for it. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.fsw.Close(); err != nil {
		w.log.Warn("watch: close", zap.Error(err))
	}
}

func (w *Watcher) tickInterval() time.Duration {
	tick := 100 * time.Millisecond
	if half := w.debounce / 2; half > 0 && half < tick {
		tick = half
	}
	if tick < 5*time.Millisecond {
		tick = 5 * time.Millisecond
	}
	return tick
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch: fsnotify error", zap.Error(err))

		case <-ticker.C:
			if changed := w.settled(); len(changed) > 0 {
				w.onChange(ctx, changed)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Clean(ev.Name)
	if !w.targets[name] {
		return
	}
	w.log.Debug("watch: change", zap.String("file", name), zap.String("op", ev.Op.String()))

	w.mu.Lock()
	w.pending[name] = struct{}{}
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// settled drains the pending set once no event arrived for the debounce window.
func (w *Watcher) settled() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 || time.Since(w.lastEvent) < w.debounce {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	sort.Strings(out)
	w.pending = map[string]struct{}{}
	return out
}
