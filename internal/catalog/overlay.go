package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	"github.com/mangaportal/mangaportal-server/internal/sse"
)

// debounceDelay is how long after the last write event the overlay is
// reloaded. Editors often emit several writes per save.
const debounceDelay = 500 * time.Millisecond

// Emitter is the subset of the SSE manager the overlay needs.
type Emitter interface {
	Emit(event any)
}

// Overlay watches a JSON file of catalog entries and merges it into the
// store whenever it changes. Operators use it to add or replace titles
// without restarting the server.
type Overlay struct {
	path    string
	saver   MangaSaver
	emitter Emitter
	logger  *slog.Logger

	watcher *fsnotify.Watcher
	timer   *time.Timer
	mu      sync.Mutex
	wg      sync.WaitGroup
}

// NewOverlay creates an overlay bound to path. The file does not need
// to exist yet; it is picked up once created.
func NewOverlay(path string, saver MangaSaver, emitter Emitter, logger *slog.Logger) (*Overlay, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Overlay{
		path:    filepath.Clean(path),
		saver:   saver,
		emitter: emitter,
		logger:  logger,
		watcher: watcher,
	}, nil
}

// Start loads the overlay once, then watches its directory for changes
// until ctx is canceled. Watching the directory rather than the file
// survives the rename-and-replace pattern editors use on save.
func (o *Overlay) Start(ctx context.Context) error {
	if err := o.watcher.Add(filepath.Dir(o.path)); err != nil {
		return fmt.Errorf("watch overlay dir: %w", err)
	}

	if count, err := o.Reload(ctx); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			o.logger.Warn("initial overlay load failed", "path", o.path, "error", err)
		}
	} else {
		o.logger.Info("catalog overlay loaded", "path", o.path, "entries", count)
	}

	o.wg.Add(1)
	go o.loop(ctx)
	return nil
}

// Close stops the watcher and waits for the event loop to exit.
func (o *Overlay) Close() error {
	err := o.watcher.Close()
	o.wg.Wait()
	return err
}

func (o *Overlay) loop(ctx context.Context) {
	defer o.wg.Done()

	for {
		select {
		case event, ok := <-o.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != o.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			o.scheduleReload(ctx)

		case err, ok := <-o.watcher.Errors:
			if !ok {
				return
			}
			o.logger.Warn("overlay watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// scheduleReload debounces bursts of write events into one reload.
func (o *Overlay) scheduleReload(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		count, err := o.Reload(ctx)
		if err != nil {
			o.logger.Warn("overlay reload failed", "path", o.path, "error", err)
			return
		}
		o.logger.Info("catalog overlay reloaded", "path", o.path, "entries", count)
	})
}

// Reload parses the overlay file and merges its entries into the store.
// On success a catalog.updated event is emitted with the entry count.
// A malformed file leaves the catalog untouched.
func (o *Overlay) Reload(ctx context.Context) (int, error) {
	data, err := os.ReadFile(o.path)
	if err != nil {
		return 0, err
	}

	var entries []*domain.Manga
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("parse overlay: %w", err)
	}

	saved := 0
	for _, manga := range entries {
		if manga.ID == "" {
			o.logger.Warn("skipping overlay entry without id", "title_en", manga.TitleEn)
			continue
		}
		if err := o.saver.SaveManga(ctx, manga); err != nil {
			return saved, fmt.Errorf("save overlay entry %s: %w", manga.ID, err)
		}
		saved++
	}

	if saved > 0 && o.emitter != nil {
		o.emitter.Emit(sse.NewCatalogUpdatedEvent(saved))
	}
	return saved, nil
}
