package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hsakai/quizbox/models"
	"gorm.io/gorm"
)

// QuizService drives the sequential traversal of a unit's questions.
// Question order is strictly ascending post id, i.e. creation order.
type QuizService struct {
	db       *gorm.DB
	sessions SessionStore
}

func NewQuizService(db *gorm.DB, sessions SessionStore) *QuizService {
	return &QuizService{db: db, sessions: sessions}
}

// QuestionView is one step of a traversal: the post plus its 1-based
// position in the unit's sequence. Position is 0 when the post does not
// belong to the unit's sequence (degenerate display, not an error).
type QuestionView struct {
	Post     models.Post
	Position int
	Total    int
}

// AnswerOutcome is the directive returned after recording an answer.
// A nil NextPostID means the sequence is exhausted and the caller
// should finalize.
type AnswerOutcome struct {
	Record     models.AnswerRecord
	NextPostID *uint
}

func (o AnswerOutcome) Completed() bool { return o.NextPostID == nil }

// FirstPost returns the unit's entry question, or nil for an empty
// unit. Callers must not enter the engine for units without posts.
func (s *QuizService) FirstPost(unitID uint) (*models.Post, error) {
	var unit models.Unit
	if err := s.db.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var post models.Post
	err := s.db.Where("unit_id = ?", unitID).Order("id asc").First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Question resolves a post's position within the unit's sequence.
// Landing on position 1 (re)starts the caller's traversal timer,
// discarding any prior in-flight timing.
func (s *QuizService) Question(userID uuid.UUID, unitID, postID uint) (QuestionView, error) {
	var unit models.Unit
	if err := s.db.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuestionView{}, ErrNotFound
		}
		return QuestionView{}, err
	}

	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuestionView{}, ErrNotFound
		}
		return QuestionView{}, err
	}

	var ids []uint
	if err := s.db.Model(&models.Post{}).
		Where("unit_id = ?", unitID).
		Order("id asc").
		Pluck("id", &ids).Error; err != nil {
		return QuestionView{}, err
	}

	position := 0
	for i, id := range ids {
		if id == post.ID {
			position = i + 1
			break
		}
	}

	if position == 1 {
		s.sessions.Start(userID, unitID, time.Now().UTC())
	}

	return QuestionView{Post: post, Position: position, Total: len(ids)}, nil
}

// SubmitAnswer records the answer unconditionally and resolves the next
// question: the lowest post id in the same unit greater than the
// current one. Exhaustion of the sequence is the sole completion
// trigger.
func (s *QuizService) SubmitAnswer(userID uuid.UUID, postID uint, selected string) (AnswerOutcome, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AnswerOutcome{}, ErrNotFound
		}
		return AnswerOutcome{}, err
	}

	record := models.AnswerRecord{
		UserID:         userID,
		PostID:         post.ID,
		SelectedAnswer: selected,
		IsCorrect:      selected == post.Answer,
		AnsweredAt:     time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return AnswerOutcome{}, err
	}

	var next models.Post
	err := s.db.Where("unit_id = ? AND id > ?", post.UnitID, post.ID).
		Order("id asc").
		First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AnswerOutcome{Record: record}, nil
	}
	if err != nil {
		return AnswerOutcome{}, err
	}
	return AnswerOutcome{Record: record, NextPostID: &next.ID}, nil
}
