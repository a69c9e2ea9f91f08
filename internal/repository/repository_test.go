package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"financecoach/internal/database"
	"financecoach/internal/models"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	user, err := repo.CreateUser("thandi@example.com", "hash", "Thandi Nkosi")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == 0 {
		t.Fatal("CreateUser() returned zero ID")
	}

	if _, err := repo.CreateUser("thandi@example.com", "hash", "Someone Else"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate CreateUser() error = %v, want ErrDuplicate", err)
	}

	got, err := repo.GetUserByEmail("thandi@example.com")
	if err != nil || got == nil {
		t.Fatalf("GetUserByEmail() = %v, %v", got, err)
	}
	if got.Name != "Thandi Nkosi" || got.OAuthProvider != "" {
		t.Errorf("GetUserByEmail() = %+v", got)
	}

	missing, err := repo.GetUserByID(9999)
	if err != nil || missing != nil {
		t.Errorf("GetUserByID(missing) = %v, %v, want nil, nil", missing, err)
	}

	if err := repo.LinkOAuthProvider(user.ID, "google", "sub-1"); err != nil {
		t.Fatalf("LinkOAuthProvider() error = %v", err)
	}
	if err := repo.LinkOAuthProvider(user.ID, "google", "sub-2"); err == nil {
		t.Error("linking twice should fail")
	}
	linked, err := repo.GetUserByOAuth("google", "sub-1")
	if err != nil || linked == nil || linked.ID != user.ID {
		t.Errorf("GetUserByOAuth() = %v, %v", linked, err)
	}
}

func TestUsersWithoutOAuthCoexist(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	// NULL oauth columns must not collide on the oauth unique index
	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := repo.CreateUser(email, "hash", "Learner"); err != nil {
			t.Fatalf("CreateUser(%s) error = %v", email, err)
		}
	}
	users, err := repo.GetAllUsers()
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("GetAllUsers() returned %d users, want 2", len(users))
	}
}

func TestSessions(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	user, err := repo.CreateUser("sipho@example.com", "hash", "Sipho")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if _, err := repo.CreateSession("live", user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if _, err := repo.CreateSession("stale", user.ID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	session, err := repo.GetSession("live")
	if err != nil || session == nil {
		t.Fatalf("GetSession() = %v, %v", session, err)
	}
	if session.UserID != user.ID || session.IsExpired() {
		t.Errorf("GetSession() = %+v", session)
	}

	n, err := repo.DeleteExpiredSessions()
	if err != nil {
		t.Fatalf("DeleteExpiredSessions() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpiredSessions() removed %d, want 1", n)
	}

	if err := repo.DeleteSession("live"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if session, _ := repo.GetSession("live"); session != nil {
		t.Error("session should be gone after DeleteSession()")
	}
}

func TestAttemptRepository(t *testing.T) {
	db := openTestDB(t)
	user, err := NewUserRepository(db).CreateUser("lerato@example.com", "hash", "Lerato")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	repo := NewAttemptRepository(db)

	stats, err := repo.GetStats(user.ID)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Attempts != 0 || stats.TotalXP != 0 || stats.BestScore != 0 {
		t.Errorf("empty GetStats() = %+v", stats)
	}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempts := []models.QuizAttempt{
		{UserID: user.ID, Correct: 6, Total: 10, Score: 60, XP: 25, Grade: "D", WeakCategories: []string{"investing", "debt"}, CompletedAt: base},
		{UserID: user.ID, Correct: 9, Total: 10, Score: 90, XP: 100, Grade: "A", CompletedAt: base.Add(time.Hour)},
		{UserID: user.ID, Correct: 7, Total: 10, Score: 70, XP: 50, Grade: "C", CompletedAt: base.Add(2 * time.Hour)},
	}
	for i := range attempts {
		if err := repo.CreateAttempt(&attempts[i]); err != nil {
			t.Fatalf("CreateAttempt() error = %v", err)
		}
		if attempts[i].ID == 0 {
			t.Fatal("CreateAttempt() did not set ID")
		}
	}

	stats, err = repo.GetStats(user.ID)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Attempts != 3 || stats.TotalXP != 175 || stats.BestScore != 90 {
		t.Errorf("GetStats() = %+v, want 3 attempts, 175 XP, best 90", stats)
	}

	recent, err := repo.GetRecentAttempts(user.ID, 2)
	if err != nil {
		t.Fatalf("GetRecentAttempts() error = %v", err)
	}
	if len(recent) != 2 || recent[0].Grade != "C" || recent[1].Grade != "A" {
		t.Errorf("GetRecentAttempts() = %+v, want newest first", recent)
	}

	all, err := repo.GetAllAttempts()
	if err != nil {
		t.Fatalf("GetAllAttempts() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetAllAttempts() returned %d", len(all))
	}
	if got := all[0].WeakCategories; len(got) != 2 || got[0] != "investing" || got[1] != "debt" {
		t.Errorf("WeakCategories = %v, want [investing debt]", got)
	}
	if all[1].WeakCategories != nil {
		t.Errorf("WeakCategories = %v, want nil", all[1].WeakCategories)
	}
}

func TestAttemptRequiresUser(t *testing.T) {
	repo := NewAttemptRepository(openTestDB(t))
	err := repo.CreateAttempt(&models.QuizAttempt{UserID: 42, Correct: 1, Total: 1, Score: 100, XP: 100, Grade: "A"})
	if err == nil {
		t.Error("CreateAttempt() for a missing user should fail the foreign key")
	}
}

func TestRepositoriesInsideTransaction(t *testing.T) {
	db := openTestDB(t)

	err := db.WithTx(func(tx *database.Tx) error {
		users := NewUserRepository(tx)
		if err := users.RestoreUser(models.User{ID: 7, Email: "restored@example.com", Name: "Restored", CreatedAt: time.Now(), UpdatedAt: time.Now()}); err != nil {
			return err
		}
		return users.RestoreUser(models.User{ID: 7, Email: "other@example.com", Name: "Clash", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("WithTx() error = %v, want ErrDuplicate", err)
	}

	user, err := NewUserRepository(db).GetUserByID(7)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user != nil {
		t.Error("rolled back insert should not be visible")
	}
}
