// Package watcher ingests files dropped into a watched directory.
//
// Create and rename events trigger ingestion; the kind is inferred from
// the file extension and unrecognised extensions are skipped. A rate
// limiter keeps a bulk copy into the directory from saturating the
// extraction pipeline.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/mediadex/mediadex/internal/core/domain"
	"github.com/mediadex/mediadex/internal/core/ports/driving"
	"github.com/mediadex/mediadex/internal/logger"
)

// settleDelay gives writers a moment to finish before the file is read.
const settleDelay = 200 * time.Millisecond

// Watcher ingests files as they appear in a directory.
type Watcher struct {
	ingest  driving.IngestService
	dir     string
	limiter *rate.Limiter
}

// New creates a watcher over dir. ingestPerSecond bounds how many
// files per second are ingested; zero or negative disables the limit.
func New(ingest driving.IngestService, dir string, ingestPerSecond float64) *Watcher {
	limit := rate.Inf
	if ingestPerSecond > 0 {
		limit = rate.Limit(ingestPerSecond)
	}
	return &Watcher{
		ingest:  ingest,
		dir:     dir,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Run watches the directory until the context is cancelled.
// Files already present at startup are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("Watching %s", w.dir)

	if err := w.ingestExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.ingestPath(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// ingestExisting sweeps files already in the directory.
func (w *Watcher) ingestExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			continue
		}
		w.ingestPath(ctx, filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

// ingestPath ingests one file, inferring the kind from its extension.
func (w *Watcher) ingestPath(ctx context.Context, path string) {
	name := filepath.Base(path)
	kind, ok := domain.KindForExtension(name)
	if !ok {
		logger.Debug("Skipping %s: unrecognised extension", name)
		return
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return
	}
	time.Sleep(settleDelay)

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Reading %s: %v", path, err)
		return
	}
	if len(content) == 0 {
		logger.Debug("Skipping %s: empty file", name)
		return
	}

	summary, err := w.ingest.Ingest(ctx, kind, name, content)
	if err != nil {
		logger.Warn("Ingesting %s: %v", name, err)
		return
	}
	logger.Info("Auto-ingested %s as %s", name, summary.Hash[:12])
}
