package models

import (
	"strings"
	"time"
)

// QuizAttempt is one submitted literacy quiz
type QuizAttempt struct {
	ID             int64
	UserID         int64
	Correct        int
	Total          int
	Score          float64
	XP             int
	Grade          string
	WeakCategories []string
	CompletedAt    time.Time
}

// JoinCategories stores a category list in one column
func JoinCategories(categories []string) string {
	return strings.Join(categories, ",")
}

// SplitCategories reverses JoinCategories
func SplitCategories(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// QuizStats aggregates a learner's quiz history
type QuizStats struct {
	Attempts  int
	TotalXP   int
	BestScore float64
	Recent    []QuizAttempt
}

// Level turns accumulated XP into a learner level. Every 100 XP is a level,
// starting at 1.
func (s QuizStats) Level() int {
	return s.TotalXP/100 + 1
}

// XPToNextLevel is how much XP is missing for the next level
func (s QuizStats) XPToNextLevel() int {
	return 100 - s.TotalXP%100
}
