package handlers

import (
	"net/http"
	"strings"
	"time"

	"financecoach/internal/content"
	"financecoach/internal/service"
)

// LiteracyHandler serves the learning pages
type LiteracyHandler struct {
	quizService *service.QuizService
	renderer    *Renderer
	now         func() time.Time
}

// NewLiteracyHandler creates a new literacy handler
func NewLiteracyHandler(quizService *service.QuizService, renderer *Renderer) *LiteracyHandler {
	return &LiteracyHandler{
		quizService: quizService,
		renderer:    renderer,
		now:         time.Now,
	}
}

// Menu lists the literacy sections
func (h *LiteracyHandler) Menu(w http.ResponseWriter, r *http.Request) {
	bank := h.quizService.Bank()
	h.renderer.Render(w, http.StatusOK, "literacy.tmpl", LiteracyMenuViewData{
		PageData:   h.renderer.Page(r, "Financial Literacy"),
		Categories: bank.Categories(),
		Questions:  bank.Len(),
	})
}

// Investments explains the investment ladder
func (h *LiteracyHandler) Investments(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "cards.tmpl", CardsViewData{
		PageData: h.renderer.Page(r, "Investment Types"),
		Heading:  "Investment types, from safest to riskiest",
		Cards:    content.Investments,
	})
}

// Interest explains interest concepts
func (h *LiteracyHandler) Interest(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "cards.tmpl", CardsViewData{
		PageData: h.renderer.Page(r, "Understanding Interest"),
		Heading:  "How interest works for and against you",
		Cards:    content.InterestConcepts,
	})
}

// Tips shows guidance personalised by ?level= and repeated ?interests=
func (h *LiteracyHandler) Tips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	prefs := content.Preferences{
		Level:     content.NormalizeLevel(query.Get("level")),
		Interests: parseInterests(query["interests"]),
		DailyTip:  query.Get("daily_tip") != "off",
	}

	h.renderer.Render(w, http.StatusOK, "tips.tmpl", TipsViewData{
		PageData:    h.renderer.Page(r, "Personalised Tips"),
		Preferences: prefs,
		Guidance:    content.Personalize(prefs, h.now()),
		Levels:      []string{content.LevelBeginner, content.LevelIntermediate, content.LevelAdvanced},
		Categories:  h.quizService.Bank().Categories(),
	})
}

// Resources lists books, sites, podcasts and apps filtered by the query
func (h *LiteracyHandler) Resources(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := content.ResourceFilter{
		Type:       strings.ToLower(query.Get("type")),
		Category:   strings.ToLower(query.Get("category")),
		Difficulty: strings.ToLower(query.Get("difficulty")),
	}

	h.renderer.Render(w, http.StatusOK, "resources.tmpl", ResourcesViewData{
		PageData: h.renderer.Page(r, "Learning Resources"),
		Filter:   filter,
		List:     content.FilterResources(filter),
	})
}

// parseInterests accepts repeated or comma separated values and falls back to
// the default interests
func parseInterests(values []string) []string {
	var interests []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			interests = append(interests, part)
		}
	}
	if len(interests) == 0 {
		return append([]string(nil), content.DefaultInterests...)
	}
	return interests
}
