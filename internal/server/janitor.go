package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"

	"github.com/zerocode/landing/internal/builder"
	"github.com/zerocode/landing/internal/config"
	"github.com/zerocode/landing/internal/logger"
	"github.com/zerocode/landing/internal/ratelimit"
)

// Janitor periodically closes builder sessions that have been idle longer
// than the session TTL and forgets their rate limit buckets.
type Janitor struct {
	cron    *cron.Cron
	store   *builder.Store
	limiter *ratelimit.Limiter
	log     *slog.Logger
	enabled bool

	mu      sync.Mutex
	running bool
}

// NewJanitor creates a janitor sweeping every SweepInterval. It is disabled
// when either the interval or the TTL is zero.
func NewJanitor(store *builder.Store, limiter *ratelimit.Limiter, cfg *config.Config, log *slog.Logger) *Janitor {
	j := &Janitor{
		cron:    cron.New(),
		store:   store,
		limiter: limiter,
		log:     log.With(logger.Scope("janitor")),
		enabled: cfg.Sessions.SweepInterval > 0 && cfg.Sessions.TTL > 0,
	}
	if j.enabled {
		j.cron.Schedule(cron.Every(cfg.Sessions.SweepInterval), cron.FuncJob(func() { j.Sweep() }))
	}
	return j
}

// Sweep closes idle sessions once and returns how many it closed.
func (j *Janitor) Sweep() int {
	ids := j.store.Sweep()
	for _, id := range ids {
		j.limiter.Remove(id)
	}
	if len(ids) > 0 {
		j.log.Info("swept idle sessions",
			slog.Int("closed", len(ids)),
			slog.Int("remaining", j.store.Len()),
		)
	}
	return len(ids)
}

// Start begins the sweep schedule
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.enabled || j.running {
		return nil
	}

	j.cron.Start()
	j.running = true
	j.log.Info("janitor started")
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire
func (j *Janitor) Stop(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return nil
	}

	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
		j.log.Info("janitor stopped")
	case <-ctx.Done():
		j.log.Warn("janitor stop timeout")
	}

	j.running = false
	return nil
}

// RegisterJanitorLifecycle registers the janitor with fx lifecycle
func RegisterJanitorLifecycle(lc fx.Lifecycle, j *Janitor) {
	lc.Append(fx.Hook{
		OnStart: j.Start,
		OnStop:  j.Stop,
	})
}
