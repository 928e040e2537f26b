package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/hsakai/quizbox/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService owns signup, login checks, and the role-gated user
// mutations. The admin-count check and the mutation it guards always
// share one transaction.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Register creates an account. The very first account becomes the
// admin; everyone after that is a player.
func (s *AccountService) Register(username, password string) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", username).First(&existing).Error
		if err == nil {
			return ErrDuplicateUsername
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		role := models.RolePlayer
		if count == 0 {
			role = models.RoleAdmin
		}

		user = models.User{Username: username, Password: string(hashed), Role: role}
		return tx.Create(&user).Error
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *AccountService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) Users() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ChangeRole updates a user's role. Guard order: self-modification,
// then the last-admin count check, then the unconditional block on
// demoting another admin.
func (s *AccountService) ChangeRole(actorID, targetID uuid.UUID, newRole string) error {
	if newRole != models.RoleAdmin && newRole != models.RolePlayer {
		return ErrInvalidRole
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if target.ID == actorID {
			return ErrSelfModification
		}

		if target.Role == models.RoleAdmin && newRole != models.RoleAdmin {
			var admins int64
			if err := tx.Model(&models.User{}).
				Where("role = ?", models.RoleAdmin).
				Count(&admins).Error; err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdminProtected
			}
			// Stricter than the count check: demoting another admin is
			// blocked outright.
			return ErrForbiddenDemotion
		}

		return tx.Model(&target).Update("role", newRole).Error
	})
}

// DeleteUser removes an account together with its answer records.
// Completed session summaries stay behind as audit rows.
func (s *AccountService) DeleteUser(actorID, targetID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if target.ID == actorID {
			return ErrSelfDeletion
		}

		if target.Role == models.RoleAdmin {
			var admins int64
			if err := tx.Model(&models.User{}).
				Where("role = ?", models.RoleAdmin).
				Count(&admins).Error; err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdminProtected
			}
			return ErrForbiddenDeletion
		}

		if err := tx.Where("user_id = ?", target.ID).Delete(&models.AnswerRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
}
