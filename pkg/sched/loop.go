package sched

import (
	"context"
	"log/slog"
	"time"
)

// Job is one cycle of a periodic task. Errors are logged, never fatal; the
// next tick retries naturally.
type Job func(ctx context.Context) error

// Loop runs a Job on a fixed interval until the context is cancelled.
// The job runs on the loop goroutine, so a cycle that overruns its interval
// defers the next tick rather than running concurrently with itself.
type Loop struct {
	log      *slog.Logger
	name     string
	interval time.Duration
	job      Job
}

func NewLoop(log *slog.Logger, name string, interval time.Duration, job Job) *Loop {
	return &Loop{
		log:      log,
		name:     name,
		interval: interval,
		job:      job,
	}
}

func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopping", "loop", l.name)
			return nil
		case <-t.C:
			if err := l.job(ctx); err != nil {
				l.log.Error("loop cycle error", "loop", l.name, "err", err)
			}
		}
	}
}
