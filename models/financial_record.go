package models

import "time"

// RecordType distinguishes money coming in from money going out.
type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
)

// RecordStatus is the lifecycle state of a ledger row. Only the payment
// gateway flow creates pending rows; manual admin entries start at done.
type RecordStatus string

const (
	StatusPending RecordStatus = "pending"
	StatusDone    RecordStatus = "done"
	StatusExpired RecordStatus = "expired"
)

// FinancialRecord is one row of the community ledger. Rows created through the
// payment gateway share a ReferenceID per request batch (one row per dues
// month) so a single webhook delivery can settle the whole batch.
type FinancialRecord struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Type        RecordType   `gorm:"size:16;not null;index"`
	Category    string       `gorm:"size:128;not null"`
	Amount      int64        `gorm:"not null"` // whole rupiah
	Description string       `gorm:"size:512"`
	Date        time.Time    `gorm:"not null;index"`
	HouseBlock  string       `gorm:"size:32;index"`
	UserID      *uint        `gorm:"index"` // owning resident, nil for community-level entries
	CreatedBy   uint         `gorm:"not null"`
	Status      RecordStatus `gorm:"size:16;not null;default:'done';index"`
	PaymentURL  string       `gorm:"size:512"`
	ReferenceID string       `gorm:"size:128;index"`
}
