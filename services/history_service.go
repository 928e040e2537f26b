package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hsakai/quizbox/models"
	"gorm.io/gorm"
)

// HistoryService aggregates a finished traversal into a score summary
// and serves the caller's past sessions.
type HistoryService struct {
	db       *gorm.DB
	sessions SessionStore
}

func NewHistoryService(db *gorm.DB, sessions SessionStore) *HistoryService {
	return &HistoryService{db: db, sessions: sessions}
}

// ResultSummary is the score view for one unit traversal. Elapsed is
// set only on the first finalization after a timed traversal.
type ResultSummary struct {
	Unit      models.Unit
	Correct   int
	Total     int
	Records   []models.AnswerRecord
	Incorrect []models.AnswerRecord
	Elapsed   *time.Duration
}

// Finalize scores the caller's most recent attempt at a unit: the
// newest records capped at the unit's question count, so re-attempts
// only ever count the latest pass. A live start marker means this is
// the first visit since the traversal began; the session snapshot is
// written once and the marker dropped so a revisit cannot double-write.
func (s *HistoryService) Finalize(userID uuid.UUID, unitID uint) (ResultSummary, error) {
	var unit models.Unit
	if err := s.db.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResultSummary{}, ErrNotFound
		}
		return ResultSummary{}, err
	}

	var postIDs []uint
	if err := s.db.Model(&models.Post{}).
		Where("unit_id = ?", unitID).
		Pluck("id", &postIDs).Error; err != nil {
		return ResultSummary{}, err
	}

	var records []models.AnswerRecord
	if len(postIDs) > 0 {
		if err := s.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).
			Order("answered_at desc").
			Limit(len(postIDs)).
			Find(&records).Error; err != nil {
			return ResultSummary{}, err
		}
	}

	summary := ResultSummary{Unit: unit, Total: len(records), Records: records}
	for _, r := range records {
		if r.IsCorrect {
			summary.Correct++
		} else {
			summary.Incorrect = append(summary.Incorrect, r)
		}
	}

	if active, ok := s.sessions.Get(userID); ok {
		now := time.Now().UTC()
		elapsed := now.Sub(active.StartedAt)

		snapshot := models.AnswerSession{
			UserID:       userID,
			UnitID:       unit.ID,
			StartedAt:    active.StartedAt,
			EndedAt:      now,
			CorrectCount: summary.Correct,
			TotalCount:   summary.Total,
		}
		if err := s.db.Create(&snapshot).Error; err != nil {
			return ResultSummary{}, err
		}

		s.sessions.Clear(userID)
		summary.Elapsed = &elapsed
	}

	return summary, nil
}

// History lists the caller's completed sessions, most recent first.
func (s *HistoryService) History(userID uuid.UUID) ([]models.AnswerSession, error) {
	var sessions []models.AnswerSession
	if err := s.db.Where("user_id = ?", userID).
		Order("started_at desc").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
