package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// OptionsPerQuestion is the number of candidate answers every question carries
const OptionsPerQuestion = 4

var (
	ErrEmptyBank     = errors.New("question bank must contain at least one question")
	ErrEmptyPrompt   = errors.New("question prompt is required")
	ErrOptionCount   = fmt.Errorf("question must have exactly %d options", OptionsPerQuestion)
	ErrDuplicate     = errors.New("question options must be distinct")
	ErrMissingAnswer = errors.New("correct option must be one of the options")
)

// Question is a single multiple-choice question with exactly one correct option
type Question struct {
	Prompt        string
	Options       []string
	CorrectOption string
	Explanation   string
	Category      string
}

// Validate checks the question invariants
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return ErrEmptyPrompt
	}
	if len(q.Options) != OptionsPerQuestion {
		return ErrOptionCount
	}

	seen := make(map[string]bool, len(q.Options))
	for _, option := range q.Options {
		if seen[option] {
			return ErrDuplicate
		}
		seen[option] = true
	}

	if !seen[q.CorrectOption] {
		return ErrMissingAnswer
	}
	return nil
}

// HasOption reports whether option is one of the question's options
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// IsCorrect reports whether option is the correct answer
func (q Question) IsCorrect(option string) bool {
	return option == q.CorrectOption
}

// Bank is a fixed, ordered question sequence. It is never mutated after
// construction and may be shared by any number of sessions.
type Bank struct {
	questions []Question
}

// NewBank validates the questions and returns an immutable bank
func NewBank(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}

	copied := make([]Question, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		q.Options = append([]string(nil), q.Options...)
		copied[i] = q
	}

	return &Bank{questions: copied}, nil
}

// MustBank is like NewBank but panics on invalid input. It is intended for
// compiled-in question data.
func MustBank(questions []Question) *Bank {
	bank, err := NewBank(questions)
	if err != nil {
		panic("quiz: " + err.Error())
	}
	return bank
}

// Len returns the number of questions
func (b *Bank) Len() int {
	return len(b.questions)
}

// Question returns the question at index i
func (b *Bank) Question(i int) (Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	q := b.questions[i]
	q.Options = append([]string(nil), q.Options...)
	return q, true
}

// Categories returns the distinct categories in order of first appearance
func (b *Bank) Categories() []string {
	var categories []string
	seen := make(map[string]bool)
	for _, q := range b.questions {
		if q.Category == "" || seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		categories = append(categories, q.Category)
	}
	return categories
}
