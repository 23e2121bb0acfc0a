package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentLedgerStatus represents whether a ledger row has been settled
type RentLedgerStatus string

const (
	RentLedgerStatusUnpaid RentLedgerStatus = "unpaid"
	RentLedgerStatusPaid   RentLedgerStatus = "paid"
)

// Scan implements sql.Scanner interface
func (s *RentLedgerStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = RentLedgerStatus(v)
	case []byte:
		*s = RentLedgerStatus(v)
	default:
		*s = RentLedgerStatusUnpaid
	}
	return nil
}

// Value implements driver.Valuer interface
func (s RentLedgerStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// RentLedgerEntry is one month of rent owed on a lease. The succeeded handler
// moves it to paid; a later payment_failed for the same intent reverts it,
// since providers may reverse a settlement after the fact.
type RentLedgerEntry struct {
	ID        string           `gorm:"primaryKey;size:64" json:"id"`
	TenantID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	LeaseID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"lease_id"`
	Amount    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status    RentLedgerStatus `gorm:"type:rent_ledger_status;not null;default:'unpaid';index" json:"status"`
	DueDate   time.Time        `gorm:"not null;index" json:"due_date"`
	PaidAt    *time.Time       `json:"paid_at,omitempty"`
	CreatedAt time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (RentLedgerEntry) TableName() string {
	return "rent_ledger_entries"
}
