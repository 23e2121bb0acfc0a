package model

import "time"

// EventSource identifies which inbound endpoint an event arrived on.
type EventSource string

const (
	EventSourceStripe    EventSource = "stripe"
	EventSourceStripePAD EventSource = "stripe_pad"
	EventSourceKYC       EventSource = "kyc"
)

// ProcessedWebhookEvent is the idempotency ledger. One row is written per
// successfully dispatched event; the unique index on event_id is the only
// guard against double-processing under concurrent delivery.
type ProcessedWebhookEvent struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    string      `gorm:"unique;not null;size:255" json:"event_id"`
	EventType  string      `gorm:"not null;size:100;index" json:"event_type"`
	Source     EventSource `gorm:"not null;size:20" json:"source"`
	ReceivedAt time.Time   `gorm:"default:now()" json:"received_at"`
}

// TableName specifies the table name for GORM
func (ProcessedWebhookEvent) TableName() string {
	return "processed_webhook_events"
}
