package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"financecoach/internal/backend"
	"financecoach/internal/content"
	"financecoach/internal/models"
	"financecoach/internal/service"
)

const healthCheckTimeout = 3 * time.Second

// Backend is the analysis API the pages call. *backend.Client implements it.
type Backend interface {
	Health(ctx context.Context) (backend.Response, error)
	CreatePlan(ctx context.Context, req backend.PlanRequest) (backend.Response, error)
	PlanRecommendations(ctx context.Context, userID int64) (backend.Response, error)
	InvestmentSuggestions(ctx context.Context, req backend.InvestmentRequest) (backend.Response, error)
	AnalyzePortfolio(ctx context.Context, req backend.PortfolioRequest) (backend.Response, error)
	MarketInsights(ctx context.Context) (backend.Response, error)
	CheckAffordability(ctx context.Context, req backend.AffordabilityRequest) (backend.Response, error)
	CalculateLoan(ctx context.Context, req backend.LoanCalculationRequest) (backend.Response, error)
	LoanRecommendations(ctx context.Context, req backend.LoanRecommendationRequest) (backend.Response, error)
	DetectFraud(ctx context.Context, req backend.FraudRequest) (backend.Response, error)
	AnalyzePatterns(ctx context.Context, req backend.PatternRequest) (backend.Response, error)
	SecurityRecommendations(ctx context.Context, profile backend.SecurityProfile) (backend.Response, error)
	NewsSentiment(ctx context.Context, ticker string) (backend.Response, error)
	StockPrices(ctx context.Context, tickers []string) (backend.Response, error)
}

// DashboardHandler renders the landing dashboard
type DashboardHandler struct {
	backend     Backend
	quizService *service.QuizService
	renderer    *Renderer
	now         func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(api Backend, quizService *service.QuizService, renderer *Renderer) *DashboardHandler {
	return &DashboardHandler{
		backend:     api,
		quizService: quizService,
		renderer:    renderer,
		now:         time.Now,
	}
}

// Dashboard shows backend health, the daily tip and, for learners, quiz progress
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := DashboardViewData{
		PageData: h.renderer.Page(r, "Dashboard"),
		DailyTip: content.DailyTip(content.LevelBeginner, h.now()),
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()
	if resp, err := h.backend.Health(ctx); err != nil {
		log.Printf("Backend health check failed: %v", err)
		data.BackendStatus = "unavailable"
	} else {
		data.BackendHealthy = true
		data.BackendStatus = "healthy"
		if status, ok := resp["status"].(string); ok && status != "" {
			data.BackendStatus = status
		}
	}

	if user := data.User; user != nil {
		stats, err := h.quizService.Stats(user.ID)
		if err != nil {
			log.Printf("Failed to load quiz stats for user %d: %v", user.ID, err)
			stats = models.QuizStats{}
		}
		data.Stats = stats
	}

	h.renderer.Render(w, http.StatusOK, "dashboard.tmpl", data)
}

// Healthz reports liveness for load balancers
func Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
