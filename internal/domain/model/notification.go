package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes user-facing notifications
type NotificationType string

const (
	NotificationTypePayment      NotificationType = "payment"
	NotificationTypePayout       NotificationType = "payout"
	NotificationTypeVerification NotificationType = "verification"
)

// Notification is a user-facing in-app notification. Created best-effort by
// webhook handlers, never mutated by this service.
type Notification struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType `gorm:"not null;size:50" json:"type"`
	Title     string           `gorm:"not null;size:200" json:"title"`
	Message   string           `gorm:"not null" json:"message"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	Metadata  JSONB            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time        `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
