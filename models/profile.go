package models

import "time"

// Profile holds a resident's personal data (one-to-one with User).
// HouseBlock is the unit identifier used to group dues and directory listings.
type Profile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
	// Active indicates whether the resident still lives in the community.
	// Inactive profiles are excluded from dues statistics instead of being deleted.
	Active     bool   `gorm:"default:true;not null"`
	UserID     uint   `gorm:"uniqueIndex;not null"` // one-to-one relation
	User       User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name       string `gorm:"size:255;not null"` // mandatory
	HouseBlock string `gorm:"size:32;not null;index"`
	Address    string `gorm:"size:512"`
	Email      string `gorm:"size:255"`
	Phone      string `gorm:"size:64"`
	// Proofs is a one-to-many relation from Profile to PaymentProof
	Proofs []PaymentProof `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
