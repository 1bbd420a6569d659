// Package watch runs the archive intake daemon: finalized conversations
// land as JSON documents in a drop directory, get archived through the
// entity store, and are then moved to an archived/ subdirectory.
//
// Two triggers feed the same processing path: an fsnotify watcher for
// immediate pickup, and a periodic sweep that rescans the directory to
// catch files dropped while the daemon was down or events the watcher
// missed. Processing the same file twice is harmless for this daemon (the
// second attempt finds it already moved) but double-archival across
// restarts is possible; that matches the engine's at-most-once-per-call
// guarantee.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/majordome-ai/majordome/internal/archive"
	"github.com/majordome-ai/majordome/internal/entity"
)

// archivedDir is where processed drop files end up, relative to the drop
// directory.
const archivedDir = "archived"

// Daemon watches a drop directory and archives conversations.
type Daemon struct {
	dir      string
	store    entity.Store
	archiver *archive.Archiver
	sweep    string // cron expression for the rescan sweep
	log      *zap.Logger

	mu      sync.Mutex // serializes processing; fsnotify and cron both trigger it
	watcher *fsnotify.Watcher
	cron    *cron.Cron
}

// Config holds daemon construction parameters.
type Config struct {
	Dir       string
	Store     entity.Store
	Archiver  *archive.Archiver
	SweepCron string // default: @every 10m
	Logger    *zap.Logger
}

// NewDaemon builds a Daemon. The drop directory is created if missing.
func NewDaemon(cfg Config) (*Daemon, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}
	if cfg.Store == nil || cfg.Archiver == nil {
		return nil, fmt.Errorf("watch daemon requires a store and an archiver")
	}
	if cfg.SweepCron == "" {
		cfg.SweepCron = "@every 10m"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Join(cfg.Dir, archivedDir), 0755); err != nil {
		return nil, fmt.Errorf("creating drop directory: %w", err)
	}
	return &Daemon{
		dir:      cfg.Dir,
		store:    cfg.Store,
		archiver: cfg.Archiver,
		sweep:    cfg.SweepCron,
		log:      cfg.Logger,
	}, nil
}

// Run starts the watcher and the sweep and blocks until ctx is cancelled.
// An initial sweep picks up files already waiting in the directory.
func (d *Daemon) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	d.watcher = watcher
	defer watcher.Close()

	if err := watcher.Add(d.dir); err != nil {
		return fmt.Errorf("watching %s: %w", d.dir, err)
	}

	d.cron = cron.New()
	if _, err := d.cron.AddFunc(d.sweep, func() { d.Sweep(ctx) }); err != nil {
		return fmt.Errorf("registering sweep %q: %w", d.sweep, err)
	}
	d.cron.Start()
	defer d.cron.Stop()

	d.log.Info("watch daemon started",
		zap.String("dir", d.dir),
		zap.String("sweep", d.sweep))

	d.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".json") {
				continue
			}
			if err := d.Process(ctx, ev.Name); err != nil {
				d.log.Warn("processing drop file failed",
					zap.String("file", ev.Name), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Sweep archives every *.json still sitting in the drop directory.
func (d *Daemon) Sweep(ctx context.Context) {
	matches, err := filepath.Glob(filepath.Join(d.dir, "*.json"))
	if err != nil {
		d.log.Warn("sweep glob failed", zap.Error(err))
		return
	}
	for _, path := range matches {
		if err := d.Process(ctx, path); err != nil {
			d.log.Warn("sweep: processing failed", zap.String("file", path), zap.Error(err))
		}
	}
}

// Process archives one drop file and moves it to archived/ on success.
func (d *Daemon) Process(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	conv, err := ReadConversation(path)
	if err != nil {
		return err
	}

	snap, err := d.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	result := d.archiver.Archive(ctx, *conv, snap)
	if !result.Success {
		return fmt.Errorf("archiving %s: %s", filepath.Base(path), result.Err)
	}

	dest := filepath.Join(d.dir, archivedDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("moving processed file: %w", err)
	}

	d.log.Info("conversation archived from drop",
		zap.String("file", filepath.Base(path)),
		zap.String("folder", result.Folder.Name),
		zap.Strings("themes", result.Themes))
	return nil
}

// ReadConversation parses a drop file. The format is the JSON shape of
// entity.Conversation: {"title": ..., "messages": [{"role", "content",
// "timestamp"}]}.
func ReadConversation(path string) (*entity.Conversation, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var conv entity.Conversation
	if err := json.Unmarshal(b, &conv); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(conv.Messages) == 0 {
		return nil, fmt.Errorf("%s: conversation has no messages", path)
	}
	return &conv, nil
}
