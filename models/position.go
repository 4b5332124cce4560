package models

import "time"

// Position is one entry in the community organizational directory
// (ketua, sekretaris, bendahara, ...). Rank controls display order.
type Position struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Name       string `gorm:"size:255;not null"`
	Title      string `gorm:"size:128;not null"`
	HouseBlock string `gorm:"size:32"`
	Phone      string `gorm:"size:64"`
	Rank       int    `gorm:"default:0;index"`
}
