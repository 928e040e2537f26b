package services

import (
	"errors"
	"testing"

	"github.com/hsakai/quizbox/models"
)

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	alice, err := svc.Register("alice", "secret123")
	if err != nil {
		t.Fatalf("Register(alice): %v", err)
	}
	if alice.Role != models.RoleAdmin {
		t.Fatalf("first user role = %s, want admin", alice.Role)
	}

	bob, err := svc.Register("bob", "secret123")
	if err != nil {
		t.Fatalf("Register(bob): %v", err)
	}
	if bob.Role != models.RolePlayer {
		t.Fatalf("second user role = %s, want player", bob.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	if _, err := svc.Register("alice", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register("alice", "other456"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("duplicate register error = %v, want ErrDuplicateUsername", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	if _, err := svc.Register("alice", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate("alice", "secret123"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if _, err := svc.Authenticate("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestChangeRoleGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	admin := seedUser(t, db, "root", models.RoleAdmin)
	player := seedUser(t, db, "bob", models.RolePlayer)

	// The sole admin cannot be demoted, whoever asks.
	if err := svc.ChangeRole(player.ID, admin.ID, models.RolePlayer); !errors.Is(err, ErrLastAdminProtected) {
		t.Fatalf("demote last admin error = %v, want ErrLastAdminProtected", err)
	}

	// Nobody edits their own role.
	if err := svc.ChangeRole(admin.ID, admin.ID, models.RolePlayer); !errors.Is(err, ErrSelfModification) {
		t.Fatalf("self change error = %v, want ErrSelfModification", err)
	}

	if err := svc.ChangeRole(admin.ID, player.ID, "owner"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("bad role error = %v, want ErrInvalidRole", err)
	}

	// Promotion works.
	if err := svc.ChangeRole(admin.ID, player.ID, models.RoleAdmin); err != nil {
		t.Fatalf("promote player: %v", err)
	}
	var promoted models.User
	if err := db.First(&promoted, "id = ?", player.ID).Error; err != nil {
		t.Fatalf("reload player: %v", err)
	}
	if promoted.Role != models.RoleAdmin {
		t.Fatalf("promoted role = %s, want admin", promoted.Role)
	}

	// With two admins the count check passes but demotion of another
	// admin stays blocked.
	if err := svc.ChangeRole(admin.ID, promoted.ID, models.RolePlayer); !errors.Is(err, ErrForbiddenDemotion) {
		t.Fatalf("demote other admin error = %v, want ErrForbiddenDemotion", err)
	}
}

func TestDeleteUserGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	admin := seedUser(t, db, "root", models.RoleAdmin)
	player := seedUser(t, db, "bob", models.RolePlayer)

	if err := svc.DeleteUser(admin.ID, admin.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("self delete error = %v, want ErrSelfDeletion", err)
	}
	if err := svc.DeleteUser(player.ID, admin.ID); !errors.Is(err, ErrLastAdminProtected) {
		t.Fatalf("delete last admin error = %v, want ErrLastAdminProtected", err)
	}

	second := seedUser(t, db, "root2", models.RoleAdmin)
	if err := svc.DeleteUser(admin.ID, second.ID); !errors.Is(err, ErrForbiddenDeletion) {
		t.Fatalf("delete other admin error = %v, want ErrForbiddenDeletion", err)
	}

	// The admin count never dropped below one through any of the above.
	var admins int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	if admins < 1 {
		t.Fatalf("admin count = %d, want >= 1", admins)
	}
}

func TestDeleteUserCascadesAnswerRecords(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	admin := seedUser(t, db, "root", models.RoleAdmin)
	player := seedUser(t, db, "bob", models.RolePlayer)
	unit, posts := seedUnit(t, db, "history", "ww2", "a")

	quiz := NewQuizService(db, NewMemorySessionStore())
	if _, err := quiz.SubmitAnswer(player.ID, posts[0].ID, "a"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	session := models.AnswerSession{
		UserID: player.ID, UnitID: unit.ID,
		CorrectCount: 1, TotalCount: 1,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if err := svc.DeleteUser(admin.ID, player.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	var users, records, sessions int64
	db.Model(&models.User{}).Where("id = ?", player.ID).Count(&users)
	db.Model(&models.AnswerRecord{}).Where("user_id = ?", player.ID).Count(&records)
	db.Model(&models.AnswerSession{}).Where("user_id = ?", player.ID).Count(&sessions)
	if users != 0 {
		t.Fatalf("user still present after delete")
	}
	if records != 0 {
		t.Fatalf("answer records = %d, want 0 after cascade", records)
	}
	if sessions != 1 {
		t.Fatalf("answer sessions = %d, want 1 (audit rows survive)", sessions)
	}
}
