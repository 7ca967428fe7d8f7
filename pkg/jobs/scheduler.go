// Package jobs runs the periodic forced reconciliation of cached balances.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/balance"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Actor is the audit identity recorded for scheduled sweeps.
const Actor = "reconciliation-cron"

// Sweeper force-syncs every known subject.
type Sweeper interface {
	SweepAll(ctx context.Context, c access.Capability) (balance.SweepReport, error)
}

// Scheduler runs the reconciliation sweep on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
}

// NewScheduler creates a scheduler in UTC. Overlapping runs are skipped.
func NewScheduler(sweeper Sweeper, schedule string) *Scheduler {
	logger := cron.PrintfLogger(log.StandardLogger())
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return &Scheduler{cron: c, sweeper: sweeper, schedule: schedule}
}

// RunOnce performs one sweep with a system capability.
func (s *Scheduler) RunOnce(ctx context.Context) (balance.SweepReport, error) {
	start := time.Now()
	report, err := s.sweeper.SweepAll(ctx, access.ForSystem(Actor))
	if err != nil {
		log.WithError(err).Error("[CRON] reconciliation sweep failed")
		return report, err
	}
	log.WithField("duration", time.Since(start).String()).Debug("[CRON] reconciliation sweep done")
	return report, nil
}

// Start registers the sweep and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.WithField("schedule", s.schedule).Info("reconciliation scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("reconciliation scheduler stopped")
}
