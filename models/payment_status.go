package models

import "time"

// PaymentStatus marks a resident's dues as paid for one month, recorded
// manually by an admin (bank transfer received outside the gateway).
// Rows are inserted and deleted, never updated.
type PaymentStatus struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_month_year"`
	Month     int  `gorm:"not null;uniqueIndex:idx_user_month_year"`
	Year      int  `gorm:"not null;uniqueIndex:idx_user_month_year"`
	CreatedBy uint `gorm:"not null"`
}
