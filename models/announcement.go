package models

import "time"

// Announcement is a community notice written by an admin.
type Announcement struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
	Title     string     `gorm:"size:255;not null"`
	Content   string     `gorm:"type:text;not null"`
	Important bool       `gorm:"default:false"`
	CreatedBy uint       `gorm:"not null"`
}
