package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// ReportingBatchStatus represents the state of a credit-report batch run
type ReportingBatchStatus string

const (
	ReportingBatchStatusProcessing ReportingBatchStatus = "processing"
	ReportingBatchStatusCompleted  ReportingBatchStatus = "completed"
)

// Scan implements sql.Scanner interface
func (s *ReportingBatchStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = ReportingBatchStatus(v)
	case []byte:
		*s = ReportingBatchStatus(v)
	default:
		*s = ReportingBatchStatusProcessing
	}
	return nil
}

// Value implements driver.Valuer interface
func (s ReportingBatchStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// ReportingBatch is one scheduled credit-report generation run. Immutable
// once status reaches completed.
type ReportingBatch struct {
	ID              int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportingPeriod string               `gorm:"not null;size:7;index" json:"reporting_period"`
	Status          ReportingBatchStatus `gorm:"type:reporting_batch_status;not null;default:'processing'" json:"status"`
	RecordCount     int                  `gorm:"default:0" json:"record_count"`
	CreatedAt       time.Time            `gorm:"default:now()" json:"created_at"`
	CompletedAt     *time.Time           `json:"completed_at,omitempty"`
}

// TableName specifies the table name for GORM
func (ReportingBatch) TableName() string {
	return "reporting_batches"
}

// ReportingEntry is one tenant/lease snapshot within a batch.
type ReportingEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID   int64     `gorm:"not null;index" json:"batch_id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	LeaseID   uuid.UUID `gorm:"type:uuid;not null" json:"lease_id"`
	Payload   JSONB     `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`

	// Relations
	Batch *ReportingBatch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

// TableName specifies the table name for GORM
func (ReportingEntry) TableName() string {
	return "reporting_entries"
}
