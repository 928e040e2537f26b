package models

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"size:100;not null" json:"question"`
	Select1   string    `gorm:"size:40;not null" json:"select1"`
	Select2   string    `gorm:"size:40;not null" json:"select2"`
	Select3   string    `gorm:"size:40;not null" json:"select3"`
	Select4   string    `gorm:"size:40;not null" json:"select4"`
	Answer    string    `gorm:"size:40;not null" json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UnitID    uint      `gorm:"not null;index" json:"unit_id"`
}

// HasOption reports whether s is one of the four selectable options.
// The correct answer must satisfy this at every create and update.
func (p *Post) HasOption(s string) bool {
	return s == p.Select1 || s == p.Select2 || s == p.Select3 || s == p.Select4
}
