package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// CleanupJob runs one pass of audit retention, either inline or by
// enqueueing a background task.
type CleanupJob func(ctx context.Context) error

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule validates a five-field cron schedule string.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// Describe returns a human-readable description of a cron schedule.
func Describe(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// AuditCleanupScheduler triggers audit retention on a cron schedule.
type AuditCleanupScheduler struct {
	schedule string
	job      CleanupJob

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a scheduler. An empty schedule disables it.
func NewAuditCleanupScheduler(schedule string, job CleanupJob) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		schedule: schedule,
		job:      job,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the job and starts the cron loop. It stops on its own when
// ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("Audit cleanup scheduler: disabled")
		return nil
	}

	if s.job == nil {
		return fmt.Errorf("audit cleanup scheduler: no job configured")
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	entryID, err := s.cron.AddFunc(s.schedule, func() { s.run(jobCtx) })
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID
	s.cancelFunc = cancel

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s' (%s)", s.schedule, Describe(s.schedule))

	go func() {
		<-jobCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow triggers the job immediately and returns its error.
func (s *AuditCleanupScheduler) RunNow(ctx context.Context) error {
	if s.job == nil {
		return fmt.Errorf("audit cleanup scheduler: no job configured")
	}
	return s.job(ctx)
}

// IsRunning returns whether the scheduler is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the job fires next, or nil when stopped.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *AuditCleanupScheduler) run(ctx context.Context) {
	if err := s.job(ctx); err != nil {
		log.Printf("Audit cleanup scheduler: run failed: %v", err)
	}
}
