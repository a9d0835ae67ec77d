package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type AuditController struct {
	audits AuditReader
}

func NewAuditController(audits AuditReader) *AuditController {
	return &AuditController{
		audits: audits,
	}
}

var knownEventTypes = map[entities.AuditEventType]bool{
	entities.AuditEventSubmission: true,
	entities.AuditEventExport:     true,
	entities.AuditEventCleanup:    true,
}

// GetAuditEvents returns paginated audit events as JSON, newest first.
// GET /api/audit?type=submission&page=1&limit=25
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	_, limit, offset := parsePagination(c, 25, 100)
	eventType := entities.AuditEventType(c.Query("type"))

	var events []entities.AuditEvent
	var total int64
	var err error

	switch {
	case eventType == "":
		events, total, err = ac.audits.GetEvents(limit, offset)
	case knownEventTypes[eventType]:
		events, total, err = ac.audits.GetEventsByType(eventType, limit, offset)
	default:
		respondBadRequest(c, "unknown event type: "+string(eventType))
		return
	}

	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+len(events)) < total,
		TotalPages: totalPages(total, limit),
	})
}
