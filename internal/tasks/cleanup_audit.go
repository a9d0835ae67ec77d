package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// DefaultAuditRetentionDays applies when a task carries no retention.
const DefaultAuditRetentionDays = 30

// CleanupAuditEventsTask removes submission and export audit events older
// than the configured retention period.
type CleanupAuditEventsTask struct {
	RetentionDays int    `json:"retention_days"`
	Trigger       string `json:"trigger,omitempty"`
}

// Config returns the queue configuration for audit cleanup tasks.
func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_audit_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsProcessor creates a processor function for CleanupAuditEventsTask.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = DefaultAuditRetentionDays
		}

		deleted, err := cleaner.DeleteOldEvents(time.Duration(retentionDays) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("cleanup audit events: %w", err)
		}

		trigger := task.Trigger
		if trigger == "" {
			trigger = "manual"
		}
		log.Printf("[TASK] Removed %d catalog audit events older than %d days (trigger: %s)", deleted, retentionDays, trigger)
		return nil
	}
}

// NewCleanupAuditEventsQueue creates a backlite queue for audit cleanup tasks.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner))
}

// EnqueueAuditCleanup adds a single cleanup task and returns its ID.
func (c *Client) EnqueueAuditCleanup(retentionDays int, trigger string) (string, error) {
	ids, err := c.Add(CleanupAuditEventsTask{RetentionDays: retentionDays, Trigger: trigger}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue audit cleanup: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue audit cleanup: no task id returned")
	}
	return ids[0], nil
}
