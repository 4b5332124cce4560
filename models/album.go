package models

import "time"

// Album groups gallery photos of a community event.
type Album struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:512"`
	CreatedBy   uint   `gorm:"not null"`
	Photos      []Photo `gorm:"foreignKey:AlbumID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Photo is one uploaded gallery image plus its generated thumbnail.
type Photo struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AlbumID     uint   `gorm:"index;not null"`
	Caption     string `gorm:"size:255"`
	FileName    string `gorm:"size:255;not null"`
	StorePath   string `gorm:"column:store_path;size:512;not null"`
	ThumbPath   string `gorm:"column:thumb_path;size:512"`
	ContentType string `gorm:"size:128"`
}
