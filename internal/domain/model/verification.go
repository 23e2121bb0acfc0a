package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// VerificationStatus represents the outcome of a KYC check
type VerificationStatus string

const (
	VerificationStatusPending   VerificationStatus = "pending"
	VerificationStatusVerified  VerificationStatus = "verified"
	VerificationStatusRejected  VerificationStatus = "rejected"
	VerificationStatusCancelled VerificationStatus = "cancelled"
	VerificationStatusExpired   VerificationStatus = "expired"
)

// Scan implements sql.Scanner interface
func (s *VerificationStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = VerificationStatus(v)
	case []byte:
		*s = VerificationStatus(v)
	default:
		*s = VerificationStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s VerificationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// VerificationRecord is one identity-verification attempt. Rows are created
// when the user starts a KYC flow; the webhook only resolves them, keyed on
// the provider-assigned reference id.
type VerificationRecord struct {
	ID               int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferenceID      string             `gorm:"unique;not null;size:100" json:"reference_id"`
	UserID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Status           VerificationStatus `gorm:"type:verification_status;not null;default:'pending';index" json:"status"`
	VerificationData JSONB              `gorm:"type:jsonb" json:"verification_data,omitempty"`
	RejectionReason  *string            `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (VerificationRecord) TableName() string {
	return "verification_records"
}
