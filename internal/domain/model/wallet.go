package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OnboardingStatus reflects the landlord's Connect account state, derived
// from account.updated events.
type OnboardingStatus string

const (
	OnboardingStatusOnboarding OnboardingStatus = "onboarding"
	OnboardingStatusCompleted  OnboardingStatus = "completed"
	OnboardingStatusRestricted OnboardingStatus = "restricted"
)

// Scan implements sql.Scanner interface
func (s *OnboardingStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = OnboardingStatus(v)
	case []byte:
		*s = OnboardingStatus(v)
	default:
		*s = OnboardingStatusOnboarding
	}
	return nil
}

// Value implements driver.Valuer interface
func (s OnboardingStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// LandlordWallet tracks rent money owed to a landlord. Balance columns are
// only ever mutated with store-level arithmetic so concurrent webhook
// deliveries cannot lose an update.
type LandlordWallet struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	LandlordID       uuid.UUID        `gorm:"type:uuid;unique;not null" json:"landlord_id"`
	StripeAccountID  *string          `gorm:"unique;size:100" json:"stripe_account_id,omitempty"`
	PendingBalance   decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"pending_balance"`
	AvailableBalance decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"available_balance"`
	PaidOutBalance   decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"paid_out_balance"`
	OnboardingStatus OnboardingStatus `gorm:"type:onboarding_status;not null;default:'onboarding'" json:"onboarding_status"`
	CreatedAt        time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (LandlordWallet) TableName() string {
	return "landlord_wallets"
}
