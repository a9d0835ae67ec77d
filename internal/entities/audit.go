package entities

import "time"

type AuditEventType string

const (
	AuditEventSubmission AuditEventType = "submission"
	AuditEventExport     AuditEventType = "export"
	AuditEventCleanup    AuditEventType = "cleanup"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RequestID   string         `gorm:"index;size:36" json:"request_id,omitempty"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "book_add", "markdown_export"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	Title       string         `gorm:"size:512" json:"title,omitempty"`
	Author      string         `gorm:"size:256" json:"author,omitempty"`
	Genre       string         `gorm:"size:128" json:"genre,omitempty"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	IPAddress   string         `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent   string         `gorm:"size:500" json:"user_agent,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
