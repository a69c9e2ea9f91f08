package repository

import (
	"database/sql"
	"fmt"
	"time"

	"financecoach/internal/database"
	"financecoach/internal/models"
)

// AttemptRepository stores submitted quiz attempts
type AttemptRepository struct {
	db database.DBTX
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db database.DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// CreateAttempt records a submitted quiz and fills in the attempt's ID
func (r *AttemptRepository) CreateAttempt(a *models.QuizAttempt) error {
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO quiz_attempts (user_id, correct, total, score, xp, grade, weak_categories, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, a.UserID, a.Correct, a.Total, a.Score, a.XP, a.Grade,
		models.JoinCategories(a.WeakCategories), a.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	a.ID = id
	return nil
}

// RestoreAttempt inserts an attempt with a known ID, used by backup import
func (r *AttemptRepository) RestoreAttempt(a models.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (id, user_id, correct, total, score, xp, grade, weak_categories, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, a.ID, a.UserID, a.Correct, a.Total, a.Score, a.XP, a.Grade,
		models.JoinCategories(a.WeakCategories), a.CompletedAt)
	if r.db.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to restore quiz attempt %d: %w", a.ID, err)
	}
	return nil
}

// GetRecentAttempts returns the learner's latest attempts, newest first
func (r *AttemptRepository) GetRecentAttempts(userID int64, limit int) ([]models.QuizAttempt, error) {
	query := `
		SELECT id, user_id, correct, total, score, xp, grade, weak_categories, completed_at
		FROM quiz_attempts
		WHERE user_id = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`
	return r.queryAttempts(query, userID, limit)
}

// GetAllAttempts returns every attempt ordered by ID
func (r *AttemptRepository) GetAllAttempts() ([]models.QuizAttempt, error) {
	query := `
		SELECT id, user_id, correct, total, score, xp, grade, weak_categories, completed_at
		FROM quiz_attempts
		ORDER BY id
	`
	return r.queryAttempts(query)
}

func (r *AttemptRepository) queryAttempts(query string, args ...interface{}) ([]models.QuizAttempt, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		var weak string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Correct, &a.Total, &a.Score, &a.XP, &a.Grade, &weak, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		a.WeakCategories = models.SplitCategories(weak)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// GetStats aggregates the learner's attempts
func (r *AttemptRepository) GetStats(userID int64) (models.QuizStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(xp), 0), COALESCE(MAX(score), 0)
		FROM quiz_attempts
		WHERE user_id = ?
	`
	var stats models.QuizStats
	var best sql.NullFloat64
	if err := r.db.QueryRow(query, userID).Scan(&stats.Attempts, &stats.TotalXP, &best); err != nil {
		return stats, fmt.Errorf("failed to get quiz stats: %w", err)
	}
	stats.BestScore = best.Float64
	return stats, nil
}
