package models

import (
	"time"

	"github.com/google/uuid"
)

// AnswerRecord logs one submitted answer. Rows are insert-only; they
// are removed only when the owning user is deleted.
type AnswerRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID         uint      `gorm:"not null;index" json:"post_id"`
	SelectedAnswer string    `gorm:"size:100;not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	AnsweredAt     time.Time `gorm:"not null" json:"answered_at"`
}
