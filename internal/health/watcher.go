// Package health probes the model backend on a schedule and notifies the
// owner chat when it goes down or comes back.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/bowerhall/ollamagram/internal/logger"
	"github.com/bowerhall/ollamagram/internal/ollama"
	"github.com/robfig/cron/v3"
)

type Catalog interface {
	List(ctx context.Context) ([]ollama.ModelInfo, error)
}

type NotifyFunc func(message string)

type Watcher struct {
	catalog Catalog
	notify  NotifyFunc
	cron    *cron.Cron

	mu        sync.Mutex
	known     bool
	reachable bool
}

const probeTimeout = 30 * time.Second

func NewWatcher(catalog Catalog, notify NotifyFunc) *Watcher {
	return &Watcher{catalog: catalog, notify: notify}
}

func (w *Watcher) Start(schedule string) error {
	w.cron = cron.New()

	if _, err := w.cron.AddFunc(schedule, w.check); err != nil {
		return err
	}

	w.cron.Start()
	logger.Info("health watcher started", "schedule", schedule)

	return nil
}

func (w *Watcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

func (w *Watcher) check() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	_, err := w.catalog.List(ctx)
	up := err == nil

	w.mu.Lock()
	changed := w.known && up != w.reachable
	w.known = true
	w.reachable = up
	w.mu.Unlock()

	if !changed {
		logger.Debug("health probe", "reachable", up)
		return
	}

	if up {
		logger.Info("backend recovered")
		w.notify("✅ Model backend is reachable again.")
	} else {
		logger.Warn("backend unreachable", "error", err)
		w.notify("⚠️ Model backend is unreachable.")
	}
}
