package events

import "time"

const DocumentLifecycleTopic = "tex.document.lifecycle.v1"

const (
	DocumentCreatedType = "document.created"
	DocumentDeletedType = "document.deleted"
)

// DocumentCreatedEvent is emitted through the outbox whenever a header
// commits, so downstream reporting stays in step with the back office.
type DocumentCreatedEvent struct {
	EventType  string    `json:"event_type"`
	DocumentID string    `json:"document_id"`
	TenantID   string    `json:"tenant_id"`
	Series     string    `json:"series"`
	DocNumber  string    `json:"doc_number"`
	TotalQty   float64   `json:"total_qty"`
	TotalRolls int       `json:"total_rolls"`
	CreatedBy  string    `json:"created_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

type DocumentDeletedEvent struct {
	EventType  string    `json:"event_type"`
	DocumentID string    `json:"document_id"`
	TenantID   string    `json:"tenant_id"`
	Series     string    `json:"series"`
	DocNumber  string    `json:"doc_number"`
	DeletedBy  string    `json:"deleted_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
