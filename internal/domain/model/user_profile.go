package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile carries the per-user flags this service reads or propagates:
// credit-reporting consent (batch eligibility) and the identity-verified
// flag written when a KYC check passes.
type UserProfile struct {
	ID                     int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                 uuid.UUID  `gorm:"type:uuid;unique;not null" json:"user_id"`
	CreditReportingConsent bool       `gorm:"not null;default:false;index" json:"credit_reporting_consent"`
	IdentityVerified       bool       `gorm:"not null;default:false" json:"identity_verified"`
	IdentityVerifiedAt     *time.Time `json:"identity_verified_at,omitempty"`
	CreatedAt              time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (UserProfile) TableName() string {
	return "user_profiles"
}
