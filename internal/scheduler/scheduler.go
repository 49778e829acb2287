package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"ScannerLedger/internal/archive"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the day-boundary rollover on a cron spec.
type Scheduler struct {
	Cron     *cron.Cron
	Archiver *archive.Manager
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, am *archive.Manager) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Archiver: am,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily rollover task.
func (s *Scheduler) RegisterAll(rolloverCron string) error {
	if _, err := s.Cron.AddFunc(rolloverCron, s.rolloverTask); err != nil {
		return fmt.Errorf("register rollover task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRolloverNow executes the rollover immediately (for manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunRolloverNow() {
	s.rolloverTask()
}

func (s *Scheduler) rolloverTask() {
	if s.Ctx != nil && s.Ctx.Err() != nil {
		log.Println("[INFO] skipping rollover: shutting down")
		return
	}
	log.Println("[INFO] running daily rollover")
	if err := s.Archiver.Rollover(time.Now()); err != nil {
		log.Printf("[ERROR] daily rollover: %v", err)
		return
	}
	log.Println("[INFO] daily rollover complete")
}
