package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"financecoach/internal/content"
	"financecoach/internal/service"
)

// QuizHandler maps quiz page events onto the visitor's quiz session. Every
// POST answers with the session as JSON when the client asks for it and
// redirects back to the quiz page otherwise.
type QuizHandler struct {
	quizService  *service.QuizService
	emailEnabled bool
	metrics      *Metrics
	renderer     *Renderer
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService, emailService *service.EmailService, metrics *Metrics, renderer *Renderer) *QuizHandler {
	return &QuizHandler{
		quizService:  quizService,
		emailEnabled: emailService != nil && emailService.IsEnabled(),
		metrics:      metrics,
		renderer:     renderer,
	}
}

var quizNotices = map[string]string{
	"emailed": "We emailed your result.",
}

// Show renders the current question, or the results and review once submitted
func (h *QuizHandler) Show(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizService.View(GetVisitorID(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Quiz session unavailable", "", err)
		return
	}

	data := QuizViewData{
		PageData:     h.renderer.Page(r, "Literacy Quiz"),
		Quiz:         view,
		EmailEnabled: h.emailEnabled,
		Notice:       quizNotices[r.URL.Query().Get("notice")],
	}
	if view.Total > 0 {
		data.Progress = (view.Index + 1) * 100 / view.Total
	}

	if view.Submitted {
		data.RecommendedTips = content.RecommendForWeak(view.WeakCategories)
		data.Resources = content.RecommendedResources(view.WeakCategories)
		if user := data.User; user != nil {
			if stats, err := h.quizService.Stats(user.ID); err != nil {
				log.Printf("Failed to load quiz stats for user %d: %v", user.ID, err)
			} else {
				data.Stats = &stats
			}
		}
	}

	h.renderer.Render(w, http.StatusOK, "quiz.tmpl", data)
}

// State returns the visitor's session as JSON
func (h *QuizHandler) State(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizService.View(GetVisitorID(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Quiz session unavailable", "", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Start discards the visitor's session and begins a new one
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizService.Start(GetVisitorID(r.Context()))
	h.respond(w, r, view, err)
}

// Answer records the selected option for a question
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}

	view, err := h.quizService.Answer(GetVisitorID(r.Context()), index, r.FormValue("option"))
	h.respond(w, r, view, err)
}

// Next moves to the next question
func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizService.Next(GetVisitorID(r.Context()))
	h.respond(w, r, view, err)
}

// Prev moves to the previous question
func (h *QuizHandler) Prev(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizService.Prev(GetVisitorID(r.Context()))
	h.respond(w, r, view, err)
}

// Submit scores the quiz and records the attempt for logged-in learners
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if user := GetUserFromContext(r.Context()); user != nil {
		userID = user.ID
	}

	out, err := h.quizService.Submit(GetVisitorID(r.Context()), userID)
	if errors.Is(err, service.ErrNoVisitor) {
		h.respond(w, r, out.View, err)
		return
	}
	if err != nil {
		// the result is still shown; the next submit retries the write
		log.Printf("Quiz submit for user %d: %v", userID, err)
	}
	if out.First && out.View.Result != nil {
		h.metrics.QuizSubmitted(out.View.Result.Grade)
	}

	h.respond(w, r, out.View, nil)
}

// Email sends the submitted result to the logged-in learner
func (h *QuizHandler) Email(w http.ResponseWriter, r *http.Request) {
	if !h.emailEnabled {
		respondWithError(w, http.StatusServiceUnavailable, "Email is not available", "", nil)
		return
	}

	user := GetUserFromContext(r.Context())
	err := h.quizService.EmailResult(r.Context(), GetVisitorID(r.Context()), user)
	switch {
	case errors.Is(err, service.ErrNotSubmitted):
		respondWithError(w, http.StatusConflict, "Submit the quiz before emailing the result", "", nil)
		return
	case err != nil:
		respondWithError(w, http.StatusBadGateway, "Failed to send the email, please try again", "Quiz result email failed", err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
		return
	}
	http.Redirect(w, r, "/literacy/quiz?notice=emailed", http.StatusSeeOther)
}

func (h *QuizHandler) respond(w http.ResponseWriter, r *http.Request, view service.QuizView, err error) {
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Quiz session unavailable", "", err)
		return
	}
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, view)
		return
	}
	http.Redirect(w, r, "/literacy/quiz", http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
