package models

import "time"

// PaymentProof is a transfer receipt uploaded by a resident as evidence of a
// manual dues payment. Amount is filled by OCR when extraction succeeds;
// failed extractions keep the row so an admin can review the image by hand.
type PaymentProof struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ProfileID   uint    `gorm:"index;not null"`
	Profile     Profile `gorm:"foreignKey:ProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FileName    string  `gorm:"size:255;not null"`
	StorePath   string  `gorm:"column:store_path;size:512"`
	ContentType string  `gorm:"size:128"`
	Amount      int64   `gorm:"default:0"` // OCR-extracted, 0 when unknown
	RecordID    *uint   `gorm:"index"`     // ledger row this proof settles (nullable)
	// Mark proof as failed for OCR processing (do not delete record so admin can review)
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
