package service

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"financecoach/internal/models"
	"financecoach/internal/repository"
)

func TestBackupRoundTrip(t *testing.T) {
	src := openTestDB(t)
	user := createLearner(t, src, "backup@example.com")
	if err := repository.NewUserRepository(src).LinkOAuthProvider(user.ID, "google", "sub-9"); err != nil {
		t.Fatalf("LinkOAuthProvider() error = %v", err)
	}
	attempt := &models.QuizAttempt{UserID: user.ID, Correct: 8, Total: 10, Score: 80, XP: 75, Grade: "B", WeakCategories: []string{"debt"}}
	if err := repository.NewAttemptRepository(src).CreateAttempt(attempt); err != nil {
		t.Fatalf("CreateAttempt() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := NewBackupService(src).Export(path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	dst := openTestDB(t)
	if err := NewBackupService(dst).Import(path); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	restored, err := repository.NewUserRepository(dst).GetUserByOAuth("google", "sub-9")
	if err != nil || restored == nil {
		t.Fatalf("GetUserByOAuth() = %v, %v", restored, err)
	}
	if restored.ID != user.ID || restored.Email != "backup@example.com" {
		t.Errorf("restored user = %+v", restored)
	}

	stats, err := repository.NewAttemptRepository(dst).GetStats(user.ID)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Attempts != 1 || stats.TotalXP != 75 || stats.BestScore != 80 {
		t.Errorf("restored stats = %+v", stats)
	}

	// new rows must not collide with restored IDs
	if _, err := repository.NewUserRepository(dst).CreateUser("fresh@example.com", "", "Fresh"); err != nil {
		t.Errorf("CreateUser() after import error = %v", err)
	}
}

func TestImportIsAtomic(t *testing.T) {
	db := openTestDB(t)
	backup := `{
		"version": "1.0",
		"users": [
			{"id": 1, "email": "one@example.com", "name": "One"},
			{"id": 2, "email": "one@example.com", "name": "Duplicate"}
		]
	}`

	if err := NewBackupService(db).ImportFromReader(strings.NewReader(backup)); err == nil {
		t.Fatal("ImportFromReader() should fail on duplicate email")
	}

	users, err := repository.NewUserRepository(db).GetAllUsers()
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("found %d users after failed import, want 0", len(users))
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	err := NewBackupService(openTestDB(t)).ImportFromReader(bytes.NewBufferString(`{"version": "9.9"}`))
	if err == nil || !strings.Contains(err.Error(), "unsupported backup version") {
		t.Errorf("ImportFromReader() error = %v, want unsupported version", err)
	}
}
