// Package monitor runs the periodic integrity scan: every pass re-hashes
// each tracked file, alerts on a mismatch, re-checks after a cooldown and
// commits the new digest only if the change persisted.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/keshon/hashwatch/internal/config"
	"github.com/keshon/hashwatch/internal/detect"
	"github.com/keshon/hashwatch/internal/fingerprint"
	"github.com/keshon/hashwatch/internal/history"
	"github.com/keshon/hashwatch/internal/notify"
)

// Digester computes the content digest of a file.
type Digester interface {
	Digest(path string) (string, error)
}

// Persister writes the whole store to durable storage.
type Persister interface {
	Save(st *history.Store) error
}

// Deps are the collaborators the loop drives.
type Deps struct {
	Store    *history.Store
	Storage  Persister
	Digester Digester
	Notifier notify.Notifier
}

// PassStats summarises one pass over the store.
type PassStats struct {
	Checked    int
	Missing    int
	Candidates int
	Committed  int
	Transient  int
}

// Monitor owns the store for its whole lifetime; it is not safe for
// concurrent use.
type Monitor struct {
	store    *history.Store
	storage  Persister
	digester Digester
	notifier notify.Notifier

	interval time.Duration
	cooldown time.Duration

	out    io.Writer
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
	now    func() time.Time
}

type Option func(*Monitor)

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(m *Monitor) { m.out = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.logger = l }
}

// WithSleep replaces the pause used for both the cooldown and the
// inter-pass interval. fn must return ctx.Err() once ctx is done.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(m *Monitor) { m.sleep = fn }
}

func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

func New(cfg config.Config, deps Deps, opts ...Option) (*Monitor, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("monitor: nil store")
	case deps.Storage == nil:
		return nil, errors.New("monitor: nil storage")
	case deps.Digester == nil:
		return nil, errors.New("monitor: nil digester")
	case deps.Notifier == nil:
		return nil, errors.New("monitor: nil notifier")
	}

	m := &Monitor{
		store:    deps.Store,
		storage:  deps.Storage,
		digester: deps.Digester,
		notifier: deps.Notifier,
		interval: cfg.Interval,
		cooldown: cfg.Cooldown,
		out:      io.Discard,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep:    sleepContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Run alternates passes and idle pauses until ctx is cancelled. It returns
// nil on cancellation and an error only when the store cannot be saved.
func (m *Monitor) Run(ctx context.Context) error {
	for pass := 1; ; pass++ {
		if ctx.Err() != nil {
			return nil
		}

		stats, err := m.RunOnce(ctx)
		if err != nil {
			return err
		}
		m.logger.Debug("pass complete",
			"pass", pass,
			"checked", stats.Checked,
			"missing", stats.Missing,
			"candidates", stats.Candidates,
			"committed", stats.Committed,
			"transient", stats.Transient,
		)

		if err := m.sleep(ctx, m.interval); err != nil {
			return nil
		}
	}
}

// RunOnce performs a single pass over every tracked path in store order and
// then saves the store, also when the pass was cut short by cancellation.
func (m *Monitor) RunOnce(ctx context.Context) (PassStats, error) {
	var stats PassStats
	fmt.Fprintln(m.out, "Monitoring files...")

	for _, path := range m.store.Paths() {
		if ctx.Err() != nil {
			break
		}
		m.check(ctx, path, &stats)
	}

	if err := m.storage.Save(m.store); err != nil {
		return stats, fmt.Errorf("persist store: %w", err)
	}
	return stats, nil
}

func (m *Monitor) check(ctx context.Context, path string, stats *PassStats) {
	h, _ := m.store.History(path)

	current, ok := m.digest(path)
	if !ok {
		stats.Missing++
		return
	}
	stats.Checked++

	res := detect.Evaluate(h, current)
	if res.Verdict == detect.Unchanged {
		return
	}
	stats.Candidates++

	fmt.Fprintf(m.out, "Change detected in %s. Showing notification.\n", path)
	if err := m.notifier.Notify(ctx, path); err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Error("alert failed", "path", path, "err", err)
	}

	if err := m.sleep(ctx, m.cooldown); err != nil {
		m.logger.Debug("recheck abandoned", "path", path, "candidate", res.Digest)
		return
	}

	recomputed, ok := m.digest(path)
	if !ok {
		return
	}
	if !detect.Confirm(h, recomputed) {
		stats.Transient++
		m.logger.Info("change reverted before recheck", "path", path, "candidate", res.Digest)
		return
	}

	m.store.Append(path, history.NewObservation(recomputed, m.now()))
	stats.Committed++
	fmt.Fprintf(m.out, "Updated hash for %s in database.\n", path)
}

// digest reports false when the file cannot be read this pass.
func (m *Monitor) digest(path string) (string, bool) {
	d, err := m.digester.Digest(path)
	if err == nil {
		return d, true
	}

	if errors.Is(err, fingerprint.ErrNotFound) {
		fmt.Fprintf(m.out, "File not found: %s\n", path)
		m.logger.Debug("skipping unreadable file", "path", path, "err", err)
	} else {
		m.logger.Warn("digest failed", "path", path, "err", err)
	}
	return "", false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
