package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogSubmission records an add-book attempt, accepted or rejected.
func (s *Service) LogSubmission(origin services.Origin, book entities.Book, err error) {
	event := &entities.AuditEvent{
		RequestID:   requestID(origin),
		EventType:   entities.AuditEventSubmission,
		Action:      "book_add",
		Description: truncate(fmt.Sprintf("Added %q by %s to %s", book.Title, book.Author, book.Genre), 500),
		Title:       truncate(book.Title, 512),
		Author:      truncate(book.Author, 256),
		Genre:       truncate(book.Genre, 128),
		IPAddress:   origin.IPAddress,
		UserAgent:   truncate(origin.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Action = "book_reject"
		event.Description = "Rejected book submission"
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)

		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			if mdBytes, e := json.Marshal(map[string]any{"fields": validationErr.Fields}); e == nil {
				event.Metadata = string(mdBytes)
			}
		}
	}

	s.LogAsync(event)
}

// LogExport records a catalog export.
func (s *Service) LogExport(origin services.Origin, format string, booksCount int, err error) {
	event := &entities.AuditEvent{
		RequestID:   requestID(origin),
		EventType:   entities.AuditEventExport,
		Action:      format + "_export",
		Description: fmt.Sprintf("Exported %d books as %s", booksCount, format),
		IPAddress:   origin.IPAddress,
		UserAgent:   truncate(origin.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	if mdBytes, e := json.Marshal(map[string]any{"books_count": booksCount}); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// SubmissionCounts returns how many submissions were accepted and rejected.
func (s *Service) SubmissionCounts() (accepted, rejected int64, err error) {
	accepted, err = s.repo.CountByStatus(entities.AuditEventSubmission, entities.AuditStatusSuccess)
	if err != nil {
		return 0, 0, err
	}
	rejected, err = s.repo.CountByStatus(entities.AuditEventSubmission, entities.AuditStatusFailed)
	if err != nil {
		return 0, 0, err
	}
	return accepted, rejected, nil
}

// DeleteOldEvents removes events older than the specified duration and
// records the cleanup itself.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	deleted, err := s.repo.DeleteOldEvents(cutoff)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCleanup,
		Action:      "audit_cleanup",
		Description: fmt.Sprintf("Deleted %d audit events older than %s", deleted, cutoff.Format(time.RFC3339)),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	if logErr := s.repo.LogEvent(event); logErr != nil {
		log.Printf("Failed to log audit cleanup: %v", logErr)
	}

	return deleted, err
}

// requestID falls back to a fresh UUID when the caller has none, so every
// event can still be correlated.
func requestID(origin services.Origin) string {
	if origin.RequestID != "" {
		return origin.RequestID
	}
	return uuid.NewString()
}

// truncate shortens a string to max length.
// truncate caps s at maxLen bytes, cutting on a rune boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
