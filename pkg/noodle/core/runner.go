package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const DefaultSaveInterval = 3 * time.Second

var ErrRunning = errors.New("core is running")

// Runner drives a core on its own goroutine and flushes saves periodically
// while it runs. Start, Stop and SetCore are meant to be called from one
// goroutine; Core and Running may be called from any.
type Runner struct {
	logger       *slog.Logger
	saveInterval time.Duration

	running atomic.Bool
	mu      sync.Mutex
	core    Core
	cancel  context.CancelFunc
	group   *errgroup.Group
}

func NewRunner(c Core, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		core:         c,
		logger:       logger,
		saveInterval: DefaultSaveInterval,
	}
}

// SetSaveInterval changes how often saves are flushed. It takes effect on the next Start.
func (r *Runner) SetSaveInterval(d time.Duration) {
	if d > 0 {
		r.saveInterval = d
	}
}

func (r *Runner) Core() Core {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.core
}

// SetCore swaps the driven core. A nil core makes Start a no-op.
func (r *Runner) SetCore(c Core) error {
	if r.running.Load() {
		return ErrRunning
	}
	r.mu.Lock()
	r.core = c
	r.mu.Unlock()
	return nil
}

// runningCore returns the core while running and nil otherwise.
func (r *Runner) runningCore() Core {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running.Load() {
		return nil
	}
	return r.core
}

func (r *Runner) Running() bool {
	return r.running.Load()
}

// Start launches emulation. It is a no-op when already running or when no
// core is set.
func (r *Runner) Start(parent context.Context) {
	c := r.Core()
	if c == nil || !r.running.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		for gctx.Err() == nil {
			c.RunFrame()
		}
		return nil
	})

	// Save errors are held until Stop so they never cancel the frame loop.
	group.Go(func() error {
		ticker := time.NewTicker(r.saveInterval)
		defer ticker.Stop()
		var firstErr error
		for {
			select {
			case <-gctx.Done():
				if err := r.flush(c); err != nil && firstErr == nil {
					firstErr = err
				}
				return firstErr
			case <-ticker.C:
				if err := r.flush(c); err != nil && firstErr == nil {
					firstErr = err
				}
			}
		}
	})

	r.mu.Lock()
	r.cancel = cancel
	r.group = group
	r.mu.Unlock()

	r.logger.Debug("Core started")
}

// Stop halts emulation, waits for both goroutines and returns the first
// save error. It is a no-op when not running.
func (r *Runner) Stop() error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}

	r.mu.Lock()
	cancel, group := r.cancel, r.group
	r.cancel, r.group = nil, nil
	r.mu.Unlock()

	cancel()
	err := group.Wait()
	if err != nil {
		r.logger.Error("Core stopped with error", "error", err)
	} else {
		r.logger.Debug("Core stopped")
	}
	return err
}

func (r *Runner) flush(c Core) error {
	if err := c.WriteSaves(); err != nil {
		r.logger.Error("Failed to write saves", "error", err)
		return err
	}
	return nil
}
