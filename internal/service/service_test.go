package service

import (
	"path/filepath"
	"testing"

	"financecoach/internal/database"
	"financecoach/internal/models"
	"financecoach/internal/quiz"
	"financecoach/internal/repository"
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

func createLearner(t *testing.T, db *database.DB, email string) *models.User {
	t.Helper()
	user, err := repository.NewUserRepository(db).CreateUser(email, "", "Test Learner")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

// testBank has one budgeting and two investing questions
func testBank() *quiz.Bank {
	return quiz.MustBank([]quiz.Question{
		{
			Prompt:        "What is the 50/30/20 rule?",
			Options:       []string{"A budget split", "A tax bracket", "A loan term", "An index"},
			CorrectOption: "A budget split",
			Explanation:   "50% needs, 30% wants, 20% savings.",
			Category:      "budgeting",
		},
		{
			Prompt:        "Which is usually riskiest?",
			Options:       []string{"Savings account", "Money market", "Single share", "Government bond"},
			CorrectOption: "Single share",
			Explanation:   "One company's share can fall sharply.",
			Category:      "investing",
		},
		{
			Prompt:        "What does diversification reduce?",
			Options:       []string{"Fees", "Concentration risk", "Tax", "Inflation"},
			CorrectOption: "Concentration risk",
			Explanation:   "Spreading holdings limits the damage of one loss.",
			Category:      "investing",
		},
	})
}
