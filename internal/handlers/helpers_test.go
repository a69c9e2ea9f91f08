package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"financecoach/internal/backend"
	"financecoach/internal/config"
	"financecoach/internal/content"
	"financecoach/internal/database"
	"financecoach/internal/models"
	"financecoach/internal/repository"
	"financecoach/internal/security"
	"financecoach/internal/service"
)

const testVisitor = "visitor-test-1"

var allFeatures = config.Features{
	FinancialPlanning:         true,
	InvestmentRecommendations: true,
	LoanAnalysis:              true,
	FraudDetection:            true,
	NewsAnalyzer:              true,
}

// fakeBackend records every call and answers with resp or err
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	last  any
	resp  backend.Response
	err   error
}

func (f *fakeBackend) record(op string, req any) (backend.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	f.last = req
	return f.resp, f.err
}

func (f *fakeBackend) Health(ctx context.Context) (backend.Response, error) {
	return f.record("health", nil)
}

func (f *fakeBackend) CreatePlan(ctx context.Context, req backend.PlanRequest) (backend.Response, error) {
	return f.record("create_plan", req)
}

func (f *fakeBackend) PlanRecommendations(ctx context.Context, userID int64) (backend.Response, error) {
	return f.record("plan_recommendations", userID)
}

func (f *fakeBackend) InvestmentSuggestions(ctx context.Context, req backend.InvestmentRequest) (backend.Response, error) {
	return f.record("investment_suggestions", req)
}

func (f *fakeBackend) AnalyzePortfolio(ctx context.Context, req backend.PortfolioRequest) (backend.Response, error) {
	return f.record("analyze_portfolio", req)
}

func (f *fakeBackend) MarketInsights(ctx context.Context) (backend.Response, error) {
	return f.record("market_insights", nil)
}

func (f *fakeBackend) CheckAffordability(ctx context.Context, req backend.AffordabilityRequest) (backend.Response, error) {
	return f.record("check_affordability", req)
}

func (f *fakeBackend) CalculateLoan(ctx context.Context, req backend.LoanCalculationRequest) (backend.Response, error) {
	return f.record("calculate_loan", req)
}

func (f *fakeBackend) LoanRecommendations(ctx context.Context, req backend.LoanRecommendationRequest) (backend.Response, error) {
	return f.record("loan_recommendations", req)
}

func (f *fakeBackend) DetectFraud(ctx context.Context, req backend.FraudRequest) (backend.Response, error) {
	return f.record("detect_fraud", req)
}

func (f *fakeBackend) AnalyzePatterns(ctx context.Context, req backend.PatternRequest) (backend.Response, error) {
	return f.record("analyze_patterns", req)
}

func (f *fakeBackend) SecurityRecommendations(ctx context.Context, profile backend.SecurityProfile) (backend.Response, error) {
	return f.record("security_recommendations", profile)
}

func (f *fakeBackend) NewsSentiment(ctx context.Context, ticker string) (backend.Response, error) {
	return f.record("news_sentiment", ticker)
}

func (f *fakeBackend) StockPrices(ctx context.Context, tickers []string) (backend.Response, error) {
	return f.record("stock_prices", tickers)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type testEnv struct {
	db       *database.DB
	auth     *service.AuthService
	quiz     *service.QuizService
	csrf     *security.CSRFGenerator
	mw       *Middleware
	renderer *Renderer
	metrics  *Metrics
	backend  *fakeBackend
}

func newTestEnv(t *testing.T, features config.Features) *testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	templates, err := LoadTemplates("../templates")
	if err != nil {
		t.Fatalf("LoadTemplates() error = %v", err)
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), time.Hour)
	csrf := security.NewCSRFGenerator("test-secret")
	mw := NewMiddleware(auth, csrf, security.NewRateLimiter(100, time.Minute))

	return &testEnv{
		db:       db,
		auth:     auth,
		quiz:     service.NewQuizService(content.DefaultBank(), repository.NewAttemptRepository(db), nil, time.Hour, false),
		csrf:     csrf,
		mw:       mw,
		renderer: NewRenderer(templates, mw, features),
		metrics:  NewMetrics(),
		backend:  &fakeBackend{resp: backend.Response{"status": "healthy"}},
	}
}

// serve runs h behind the visitor and user middleware, as the server does
func (e *testEnv) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mw.Visitor(e.mw.LoadUser(h)).ServeHTTP(rec, req)
	return rec
}

// request builds a request from testVisitor. POST forms carry a valid CSRF
// token.
func (e *testEnv) request(t *testing.T, method, target string, form url.Values) *http.Request {
	t.Helper()

	var req *http.Request
	if method == http.MethodPost {
		if form == nil {
			form = url.Values{}
		}
		token, err := e.csrf.GenerateToken(testVisitor)
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		form.Set(CSRFFormField, token)
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: VisitorCookieName, Value: testVisitor})
	return req
}

// login registers a learner and attaches their session cookie to req
func (e *testEnv) login(t *testing.T, req *http.Request) *models.User {
	t.Helper()
	user, err := e.auth.Register("thandi@example.com", "password123", "Thandi Nkosi")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	session, _, err := e.auth.Login("thandi@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
	return user
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
