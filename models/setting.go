package models

import "time"

// Setting is a key/value pair for community-wide configuration.
// The payment flow reads the monthly fee from key "monthly_fee".
type Setting struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Key       string `gorm:"size:64;uniqueIndex;not null"`
	Value     string `gorm:"size:255;not null"`
}

// SettingMonthlyFee is the settings key holding the current dues amount in rupiah.
const SettingMonthlyFee = "monthly_fee"
