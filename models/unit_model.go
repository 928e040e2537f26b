package models

type Unit struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:64;not null" json:"name"`
	GenreID uint   `gorm:"not null;index" json:"genre_id"`
}
