package models

import (
	"time"

	"github.com/google/uuid"
)

// AnswerSession is the immutable summary of one completed unit
// traversal: score plus timing.
type AnswerSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UnitID       uint      `gorm:"not null;index" json:"unit_id"`
	StartedAt    time.Time `gorm:"not null" json:"started_at"`
	EndedAt      time.Time `gorm:"not null" json:"ended_at"`
	CorrectCount int       `gorm:"not null" json:"correct_count"`
	TotalCount   int       `gorm:"not null" json:"total_count"`
}
