package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a rent payment
type PaymentStatus string

const (
	PaymentStatusInitiated  PaymentStatus = "initiated"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Scan implements sql.Scanner interface
func (s *PaymentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		*s = PaymentStatusInitiated
	}
	return nil
}

// Value implements driver.Valuer interface
func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Payment represents a rent payment record. Rows are created by the
// payment-initiation flow; webhook handlers only mutate them, keyed on the
// provider's payment intent id.
type Payment struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentIntentID string          `gorm:"unique;not null;size:100" json:"payment_intent_id"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	LandlordID      *uuid.UUID      `gorm:"type:uuid;index" json:"landlord_id,omitempty"`
	RentLedgerID    *string         `gorm:"size:64;index" json:"rent_ledger_id,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency        string          `gorm:"size:3;default:'CAD'" json:"currency"`
	Status          PaymentStatus   `gorm:"type:payment_status;not null;default:'initiated';index" json:"status"`
	FailureReason   *string         `json:"failure_reason,omitempty"`
	FailureCode     *string         `gorm:"size:100" json:"failure_code,omitempty"`
	RetryCount      int             `gorm:"default:0" json:"retry_count"`
	LastRetryAt     *time.Time      `json:"last_retry_at,omitempty"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
	PaymentMetadata JSONB           `gorm:"type:jsonb" json:"payment_metadata,omitempty"`
	CreatedAt       time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
