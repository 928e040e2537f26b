package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hsakai/quizbox/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "quizbox_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Unit{},
		&models.Post{},
		&models.AnswerRecord{},
		&models.AnswerSession{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: username, Password: string(hashed), Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

// seedUnit creates a genre, a unit, and one post per answer. Every post
// has options a/b/c/d, so answers must come from that set.
func seedUnit(t *testing.T, db *gorm.DB, genreName, unitName string, answers ...string) (models.Unit, []models.Post) {
	t.Helper()

	genre := models.Genre{Name: genreName}
	if err := db.Create(&genre).Error; err != nil {
		t.Fatalf("seed genre: %v", err)
	}
	unit := models.Unit{Name: unitName, GenreID: genre.ID}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("seed unit: %v", err)
	}

	posts := make([]models.Post, 0, len(answers))
	for i, answer := range answers {
		post := models.Post{
			Question: fmt.Sprintf("question %d", i+1),
			Select1:  "a",
			Select2:  "b",
			Select3:  "c",
			Select4:  "d",
			Answer:   answer,
			UnitID:   unit.ID,
		}
		if err := db.Create(&post).Error; err != nil {
			t.Fatalf("seed post %d: %v", i+1, err)
		}
		posts = append(posts, post)
	}
	return unit, posts
}
