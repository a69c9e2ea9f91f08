package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"financecoach/internal/models"
	"financecoach/internal/quiz"
	"financecoach/internal/repository"

	"github.com/patrickmn/go-cache"
)

var (
	ErrNoVisitor    = errors.New("visitor id is required")
	ErrNotSubmitted = errors.New("quiz has not been submitted")
)

// RecentAttemptsLimit is how many attempts the dashboard shows
const RecentAttemptsLimit = 5

// quizEntry is one visitor's session. mu serialises every request that
// touches the session.
type quizEntry struct {
	mu       sync.Mutex
	session  *quiz.Session
	scoredBy int64 // learner logged in when the session was scored, 0 if anonymous
	recorded bool
	attempt  *models.QuizAttempt
}

// QuizView is a snapshot of a session taken while holding its lock
type QuizView struct {
	State     string         `json:"state"`
	Index     int            `json:"current_index"`
	Total     int            `json:"total"`
	Answered  int            `json:"answered"`
	Question  *QuestionView  `json:"question,omitempty"`
	Answers   map[int]string `json:"answers"`
	IsFirst   bool           `json:"is_first"`
	IsLast    bool           `json:"is_last"`
	Submitted bool           `json:"submitted"`

	// Score and XP are nil until the session is submitted
	Score          *float64          `json:"score,omitempty"`
	XP             *int              `json:"xp,omitempty"`
	Result         *quiz.Result      `json:"-"`
	Review         []quiz.ReviewItem `json:"review,omitempty"`
	WeakCategories []string          `json:"weak_categories,omitempty"`
	AttemptID      int64             `json:"attempt_id,omitempty"`
}

// QuestionView is the displayed question without its answer key
type QuestionView struct {
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
	Selected string   `json:"selected,omitempty"`
}

// SubmitOutcome reports what a submit request did
type SubmitOutcome struct {
	View QuizView
	// First is true only for the request that scored the session
	First bool
	// Recorded is true when this request stored the learner's attempt
	Recorded bool
}

// QuizService keeps one quiz session per visitor and records submitted
// attempts for logged-in learners
type QuizService struct {
	bank     *quiz.Bank
	attempts *repository.AttemptRepository
	email    *EmailService
	store    *cache.Cache
	create   sync.Mutex
	debug    bool
}

// NewQuizService creates a quiz service. Sessions untouched for ttl are
// discarded. attempts and email may be nil.
func NewQuizService(bank *quiz.Bank, attempts *repository.AttemptRepository, email *EmailService, ttl time.Duration, debug bool) *QuizService {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &QuizService{
		bank:     bank,
		attempts: attempts,
		email:    email,
		store:    cache.New(ttl, cleanup),
		debug:    debug,
	}
}

// Bank returns the question bank sessions run over
func (s *QuizService) Bank() *quiz.Bank {
	return s.bank
}

// entry returns the visitor's session, creating one when none is live.
// Reading it refreshes its expiry.
func (s *QuizService) entry(visitorID string) *quizEntry {
	s.create.Lock()
	defer s.create.Unlock()

	if v, ok := s.store.Get(visitorID); ok {
		e := v.(*quizEntry)
		s.store.SetDefault(visitorID, e)
		return e
	}

	return s.replace(visitorID)
}

// replace stores a fresh session for the visitor. Callers hold s.create.
func (s *QuizService) replace(visitorID string) *quizEntry {
	e := &quizEntry{session: quiz.NewSession(s.bank)}
	s.store.SetDefault(visitorID, e)
	if s.debug {
		log.Printf("[DEBUG] Started quiz session for visitor %s", visitorID)
	}
	return e
}

func (s *QuizService) with(visitorID string, fn func(e *quizEntry)) (QuizView, error) {
	if visitorID == "" {
		return QuizView{}, ErrNoVisitor
	}
	e := s.entry(visitorID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e)
	return snapshot(e), nil
}

// Start discards the visitor's session and begins a fresh one
func (s *QuizService) Start(visitorID string) (QuizView, error) {
	if visitorID == "" {
		return QuizView{}, ErrNoVisitor
	}
	s.create.Lock()
	e := s.replace(visitorID)
	s.create.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e), nil
}

// View returns the visitor's session, starting one if needed
func (s *QuizService) View(visitorID string) (QuizView, error) {
	return s.with(visitorID, func(*quizEntry) {})
}

// Answer records option for question index
func (s *QuizService) Answer(visitorID string, index int, option string) (QuizView, error) {
	return s.with(visitorID, func(e *quizEntry) {
		e.session.SelectAnswer(index, option)
	})
}

// Next moves to the next question
func (s *QuizService) Next(visitorID string) (QuizView, error) {
	return s.with(visitorID, func(e *quizEntry) {
		e.session.Advance()
	})
}

// Prev moves to the previous question
func (s *QuizService) Prev(visitorID string) (QuizView, error) {
	return s.with(visitorID, func(e *quizEntry) {
		e.session.Retreat()
	})
}

// Submit scores the visitor's session. When userID is non-zero the attempt
// is stored once; a failed store is retried by the next submit. A session
// scored anonymously is never recorded, even if the visitor logs in later.
func (s *QuizService) Submit(visitorID string, userID int64) (SubmitOutcome, error) {
	if visitorID == "" {
		return SubmitOutcome{}, ErrNoVisitor
	}

	e := s.entry(visitorID)
	e.mu.Lock()
	defer e.mu.Unlock()

	var out SubmitOutcome
	out.First = !e.session.Submitted()
	e.session.Submit()
	if out.First {
		e.scoredBy = userID
	}

	if userID != 0 && userID == e.scoredBy && s.attempts != nil && !e.recorded {
		result, _ := e.session.Result()
		attempt := &models.QuizAttempt{
			UserID:         userID,
			Correct:        result.Correct,
			Total:          result.Total,
			Score:          result.Score,
			XP:             result.XP,
			Grade:          result.Grade,
			WeakCategories: result.WeakCategories(),
			CompletedAt:    time.Now().UTC(),
		}
		if err := s.attempts.CreateAttempt(attempt); err != nil {
			out.View = snapshot(e)
			return out, fmt.Errorf("failed to record quiz attempt: %w", err)
		}
		e.recorded = true
		e.attempt = attempt
		out.Recorded = true
		log.Printf("Recorded quiz attempt %d for user %d: %d/%d", attempt.ID, userID, attempt.Correct, attempt.Total)
	}

	out.View = snapshot(e)
	return out, nil
}

// Drop discards the visitor's session
func (s *QuizService) Drop(visitorID string) {
	s.create.Lock()
	defer s.create.Unlock()
	s.store.Delete(visitorID)
}

// ActiveSessions returns the number of live sessions
func (s *QuizService) ActiveSessions() int {
	return s.store.ItemCount()
}

// EmailResult sends the visitor's submitted result to the learner
func (s *QuizService) EmailResult(ctx context.Context, visitorID string, user *models.User) error {
	if s.email == nil || !s.email.IsEnabled() {
		return nil
	}
	view, err := s.View(visitorID)
	if err != nil {
		return err
	}
	if view.Result == nil {
		return ErrNotSubmitted
	}

	return s.email.SendQuizResultEmail(ctx, user.Email, QuizResultEmail{
		Name:           user.FirstName(),
		Correct:        view.Result.Correct,
		Total:          view.Result.Total,
		Score:          view.Result.Score,
		Grade:          view.Result.Grade,
		XP:             view.Result.XP,
		Overall:        view.Result.Overall,
		Specific:       view.Result.Specific(),
		WeakCategories: view.WeakCategories,
	})
}

// Stats aggregates a learner's recorded attempts
func (s *QuizService) Stats(userID int64) (models.QuizStats, error) {
	if s.attempts == nil {
		return models.QuizStats{}, nil
	}
	stats, err := s.attempts.GetStats(userID)
	if err != nil {
		return stats, err
	}
	stats.Recent, err = s.attempts.GetRecentAttempts(userID, RecentAttemptsLimit)
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func snapshot(e *quizEntry) QuizView {
	sess := e.session
	v := QuizView{
		State:     sess.State().String(),
		Index:     sess.CurrentIndex(),
		Total:     sess.Len(),
		Answered:  sess.AnsweredCount(),
		Answers:   sess.Answers(),
		IsFirst:   sess.IsFirst(),
		IsLast:    sess.IsLast(),
		Submitted: sess.Submitted(),
	}

	if !v.Submitted {
		q := sess.Current()
		selected, _ := sess.Answer(v.Index)
		v.Question = &QuestionView{
			Prompt:   q.Prompt,
			Options:  append([]string(nil), q.Options...),
			Category: q.Category,
			Selected: selected,
		}
		return v
	}

	result, _ := sess.Result()
	review, _ := sess.Review()
	v.Result = &result
	v.Review = review
	v.Score = &result.Score
	v.XP = &result.XP
	v.WeakCategories = result.WeakCategories()
	if e.attempt != nil {
		v.AttemptID = e.attempt.ID
	}
	return v
}
