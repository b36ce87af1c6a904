// Package scheduler runs a task once per local calendar day at midnight.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

// Midnight re-arms against the wall clock after every run, so the schedule
// does not drift with run duration. A failing run is logged and the next
// midnight is armed regardless.
type Midnight struct {
	loc  *time.Location
	task Task
	log  *zap.Logger
	now  func() time.Time
}

func NewMidnight(loc *time.Location, task Task, log *zap.Logger) *Midnight {
	return &Midnight{
		loc:  loc,
		task: task,
		log:  log,
		now:  time.Now,
	}
}

// Run blocks until ctx is cancelled. The task is never run concurrently with
// itself: the next timer is armed only after the current run returns.
func (s *Midnight) Run(ctx context.Context) error {
	for {
		next := nextMidnight(s.now(), s.loc)
		s.log.Info("armed daily task", zap.Time("next_run", next))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.task(ctx); err != nil {
			s.log.Error("daily task failed", zap.Error(err))
		}
	}
}

// nextMidnight is the first instant strictly after now where the local clock
// in loc reads 00:00:00.
func nextMidnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
}
