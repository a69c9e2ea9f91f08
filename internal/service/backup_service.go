package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"financecoach/internal/database"
	"financecoach/internal/models"
	"financecoach/internal/repository"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string          `json:"version"`
	ExportedAt   time.Time       `json:"exported_at"`
	DatabaseType string          `json:"database_type"`
	Users        []UserBackup    `json:"users"`
	Attempts     []AttemptBackup `json:"quiz_attempts"`
}

// UserBackup represents a learner record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AttemptBackup represents a quiz attempt for backup
type AttemptBackup struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Correct        int       `json:"correct"`
	Total          int       `json:"total"`
	Score          float64   `json:"score"`
	XP             int       `json:"xp"`
	Grade          string    `json:"grade"`
	WeakCategories []string  `json:"weak_categories"`
	CompletedAt    time.Time `json:"completed_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(file)
	if err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d quiz attempts", len(backup.Users), len(backup.Attempts))
	return nil
}

// ExportToWriter encodes a backup to w and returns what was written
func (s *BackupService) ExportToWriter(w io.Writer) (*BackupData, error) {
	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportAttempts(backup); err != nil {
		return nil, fmt.Errorf("failed to export quiz attempts: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader. Everything is
// written in one transaction; a failure leaves the database untouched.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err := s.db.WithTx(func(tx *database.Tx) error {
		if err := importUsers(repository.NewUserRepository(tx), backup.Users); err != nil {
			return fmt.Errorf("failed to import users: %w", err)
		}
		if err := importAttempts(repository.NewAttemptRepository(tx), backup.Attempts); err != nil {
			return fmt.Errorf("failed to import quiz attempts: %w", err)
		}
		return resetSequences(tx)
	})
	if err != nil {
		return err
	}

	log.Printf("Database import completed successfully: %d users, %d quiz attempts",
		len(backup.Users), len(backup.Attempts))
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	users, err := repository.NewUserRepository(s.db).GetAllUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID:            u.ID,
			Email:         u.Email,
			PasswordHash:  u.PasswordHash,
			Name:          u.Name,
			OAuthProvider: u.OAuthProvider,
			OAuthSubject:  u.OAuthSubject,
			CreatedAt:     u.CreatedAt,
			UpdatedAt:     u.UpdatedAt,
		})
	}
	return nil
}

func (s *BackupService) exportAttempts(backup *BackupData) error {
	attempts, err := repository.NewAttemptRepository(s.db).GetAllAttempts()
	if err != nil {
		return err
	}
	for _, a := range attempts {
		backup.Attempts = append(backup.Attempts, AttemptBackup{
			ID:             a.ID,
			UserID:         a.UserID,
			Correct:        a.Correct,
			Total:          a.Total,
			Score:          a.Score,
			XP:             a.XP,
			Grade:          a.Grade,
			WeakCategories: a.WeakCategories,
			CompletedAt:    a.CompletedAt,
		})
	}
	return nil
}

func importUsers(repo *repository.UserRepository, users []UserBackup) error {
	for _, u := range users {
		err := repo.RestoreUser(models.User{
			ID:            u.ID,
			Email:         u.Email,
			PasswordHash:  u.PasswordHash,
			Name:          u.Name,
			OAuthProvider: u.OAuthProvider,
			OAuthSubject:  u.OAuthSubject,
			CreatedAt:     u.CreatedAt,
			UpdatedAt:     u.UpdatedAt,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func importAttempts(repo *repository.AttemptRepository, attempts []AttemptBackup) error {
	for _, a := range attempts {
		err := repo.RestoreAttempt(models.QuizAttempt{
			ID:             a.ID,
			UserID:         a.UserID,
			Correct:        a.Correct,
			Total:          a.Total,
			Score:          a.Score,
			XP:             a.XP,
			Grade:          a.Grade,
			WeakCategories: a.WeakCategories,
			CompletedAt:    a.CompletedAt,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// resetSequences moves postgres id sequences past restored rows. SQLite and
// MySQL advance their counters on explicit inserts.
func resetSequences(tx *database.Tx) error {
	if tx.GetDialect().DriverName() != "postgres" {
		return nil
	}
	for _, table := range []string{"users", "quiz_attempts"} {
		query := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s", table, table)
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}
	return nil
}
