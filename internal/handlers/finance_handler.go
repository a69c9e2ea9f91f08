package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"financecoach/internal/backend"
	"financecoach/internal/config"
	"financecoach/internal/content"
	"financecoach/internal/validation"
)

// FinanceHandler serves the backend-driven tools. Each page sits behind a
// feature flag and answers 404 when it is switched off.
type FinanceHandler struct {
	backend  Backend
	features config.Features
	metrics  *Metrics
	renderer *Renderer
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(api Backend, features config.Features, metrics *Metrics, renderer *Renderer) *FinanceHandler {
	return &FinanceHandler{
		backend:  api,
		features: features,
		metrics:  metrics,
		renderer: renderer,
	}
}

var (
	planFields       = []string{"monthly_income", "monthly_expenses", "current_savings", "total_debt", "age", "dependents", "risk_tolerance"}
	investmentFields = []string{"age", "monthly_income", "current_savings", "investment_amount", "risk_tolerance", "investment_experience", "investment_timeline", "holdings"}
	loanFields       = []string{"monthly_income", "monthly_debt_payments", "loan_amount", "interest_rate", "loan_term_months", "credit_score", "employment_years", "loan_type", "loan_purpose"}
	fraudFields      = []string{"amount", "hour", "merchant_category", "location", "transactions", "has_2fa", "has_transaction_alerts", "recent_suspicious_activity"}
)

// Planner shows the financial plan form
func (h *FinanceHandler) Planner(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.FinancialPlanning) {
		return
	}
	h.render(w, r, http.StatusOK, "planner.tmpl", "Financial Planner", FinanceViewData{
		Form: map[string]string{"age": "30", "risk_tolerance": "moderate"},
	})
}

// PlannerAction creates a plan or, for a logged-in learner, fetches advice
// on the plans the backend already holds
func (h *FinanceHandler) PlannerAction(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.FinancialPlanning) {
		return
	}
	f := parseForm(r, planFields)
	data := FinanceViewData{Form: f.values, Action: r.FormValue("action")}

	if data.Action == "recommendations" {
		user := GetUserFromContext(r.Context())
		if user == nil {
			data.Error = ErrLoginForPlans
			h.render(w, r, http.StatusUnauthorized, "planner.tmpl", "Financial Planner", data)
			return
		}
		resp, err := h.backend.PlanRecommendations(r.Context(), user.ID)
		h.finish(w, r, "planner.tmpl", "Financial Planner", "plan_recommendations", data, resp, err)
		return
	}
	data.Action = "create"

	req := backend.PlanRequest{
		MonthlyIncome:   f.amount("monthly_income", true),
		MonthlyExpenses: f.amount("monthly_expenses", true),
		CurrentSavings:  f.number("current_savings"),
		TotalDebt:       f.number("total_debt"),
		Age:             f.integer("age", 30),
		Dependents:      f.integer("dependents", 0),
		RiskTolerance:   f.choice("risk_tolerance", "moderate", "conservative", "moderate", "aggressive"),
	}
	if f.err != nil {
		data.Error = formError(f.err)
		h.render(w, r, http.StatusBadRequest, "planner.tmpl", "Financial Planner", data)
		return
	}

	resp, err := h.backend.CreatePlan(r.Context(), req)
	h.finish(w, r, "planner.tmpl", "Financial Planner", "create_plan", data, resp, err)
}

// Investment shows the investment form and broker directory
func (h *FinanceHandler) Investment(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.InvestmentRecommendations) {
		return
	}
	h.render(w, r, http.StatusOK, "investment.tmpl", "Investments", FinanceViewData{
		Form: map[string]string{"risk_tolerance": "moderate", "investment_experience": "beginner", "investment_timeline": "5"},
	})
}

// InvestmentAction handles suggestions, portfolio analysis and market insights
func (h *FinanceHandler) InvestmentAction(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.InvestmentRecommendations) {
		return
	}
	f := parseForm(r, investmentFields)
	data := FinanceViewData{Form: f.values, Action: r.FormValue("action")}

	var call func(ctx context.Context) (backend.Response, error)
	switch data.Action {
	case "insights":
		call = h.backend.MarketInsights
	case "portfolio":
		holdings, err := parseHoldings(f.values["holdings"])
		if err != nil {
			f.fail(err)
			break
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.AnalyzePortfolio(ctx, backend.PortfolioRequest{Holdings: holdings})
		}
	default:
		data.Action = "suggestions"
		req := backend.InvestmentRequest{
			Age:                  f.integer("age", 30),
			MonthlyIncome:        f.amount("monthly_income", true),
			CurrentSavings:       f.number("current_savings"),
			InvestmentAmount:     f.amount("investment_amount", true),
			RiskTolerance:        f.choice("risk_tolerance", "moderate", "conservative", "moderate", "aggressive"),
			InvestmentExperience: f.choice("investment_experience", "beginner", "beginner", "intermediate", "advanced"),
			InvestmentTimeline:   f.integer("investment_timeline", 5),
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.InvestmentSuggestions(ctx, req)
		}
	}
	if f.err != nil {
		data.Error = formError(f.err)
		h.render(w, r, http.StatusBadRequest, "investment.tmpl", "Investments", data)
		return
	}

	resp, err := call(r.Context())
	h.finish(w, r, "investment.tmpl", "Investments", "investment_"+data.Action, data, resp, err)
}

// Loan shows the loan tools
func (h *FinanceHandler) Loan(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.LoanAnalysis) {
		return
	}
	h.render(w, r, http.StatusOK, "loan.tmpl", "Loan Analysis", FinanceViewData{
		Form: map[string]string{"loan_term_months": "60", "loan_type": "personal", "loan_purpose": "personal"},
	})
}

// LoanAction handles affordability, repayment and product recommendations
func (h *FinanceHandler) LoanAction(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.LoanAnalysis) {
		return
	}
	f := parseForm(r, loanFields)
	data := FinanceViewData{Form: f.values, Action: r.FormValue("action")}

	var call func(ctx context.Context) (backend.Response, error)
	switch data.Action {
	case "calculate":
		req := backend.LoanCalculationRequest{
			Principal: f.amount("loan_amount", true),
			Rate:      f.number("interest_rate"),
			Term:      f.integer("loan_term_months", 60),
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.CalculateLoan(ctx, req)
		}
	case "recommendations":
		req := backend.LoanRecommendationRequest{
			MonthlyIncome: f.amount("monthly_income", true),
			CreditScore:   f.integer("credit_score", 650),
			LoanPurpose:   f.choice("loan_purpose", "personal", "personal", "home", "car", "education", "business"),
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.LoanRecommendations(ctx, req)
		}
	default:
		data.Action = "affordability"
		req := backend.AffordabilityRequest{
			MonthlyIncome:       f.amount("monthly_income", true),
			MonthlyDebtPayments: f.number("monthly_debt_payments"),
			LoanAmount:          f.amount("loan_amount", true),
			InterestRate:        f.number("interest_rate"),
			LoanTermMonths:      f.integer("loan_term_months", 60),
			CreditScore:         f.integer("credit_score", 650),
			EmploymentYears:     f.integer("employment_years", 0),
			LoanType:            f.choice("loan_type", "personal", "personal", "home", "car", "education", "business"),
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.CheckAffordability(ctx, req)
		}
	}
	if f.err != nil {
		data.Error = formError(f.err)
		h.render(w, r, http.StatusBadRequest, "loan.tmpl", "Loan Analysis", data)
		return
	}

	resp, err := call(r.Context())
	h.finish(w, r, "loan.tmpl", "Loan Analysis", "loan_"+data.Action, data, resp, err)
}

// Fraud shows the transaction check form
func (h *FinanceHandler) Fraud(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.FraudDetection) {
		return
	}
	h.render(w, r, http.StatusOK, "fraud.tmpl", "Fraud Check", FinanceViewData{
		Form: map[string]string{"hour": "12", "merchant_category": "retail"},
	})
}

// FraudAction scores one transaction, scans a transaction history or
// suggests account protections
func (h *FinanceHandler) FraudAction(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.FraudDetection) {
		return
	}
	f := parseForm(r, fraudFields)
	data := FinanceViewData{Form: f.values, Action: r.FormValue("action")}

	var call func(ctx context.Context) (backend.Response, error)
	op := "detect_fraud"
	switch data.Action {
	case "patterns":
		op = "analyze_patterns"
		transactions, err := parseTransactions(f.values["transactions"])
		if err != nil {
			f.fail(err)
			break
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.AnalyzePatterns(ctx, backend.PatternRequest{Transactions: transactions})
		}
	case "security":
		op = "security_recommendations"
		profile := backend.SecurityProfile{
			Has2FA:                   f.checked("has_2fa"),
			HasTransactionAlerts:     f.checked("has_transaction_alerts"),
			RecentSuspiciousActivity: f.checked("recent_suspicious_activity"),
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.SecurityRecommendations(ctx, profile)
		}
	default:
		data.Action = "detect"
		req := backend.FraudRequest{
			Amount:           f.amount("amount", true),
			Hour:             f.integer("hour", 12),
			MerchantCategory: f.choice("merchant_category", "retail", "retail", "grocery", "online", "travel", "entertainment", "atm"),
			Location:         strings.TrimSpace(f.values["location"]),
		}
		if f.err == nil && (req.Hour < 0 || req.Hour > 23) {
			f.fail(validation.ValidationError{Field: "hour", Message: "must be between 0 and 23"})
		}
		call = func(ctx context.Context) (backend.Response, error) {
			return h.backend.DetectFraud(ctx, req)
		}
	}
	if f.err != nil {
		data.Error = formError(f.err)
		h.render(w, r, http.StatusBadRequest, "fraud.tmpl", "Fraud Check", data)
		return
	}

	resp, err := call(r.Context())
	h.finish(w, r, "fraud.tmpl", "Fraud Check", op, data, resp, err)
}

// News shows sentiment and prices for ?ticker=
func (h *FinanceHandler) News(w http.ResponseWriter, r *http.Request) {
	if !h.gate(w, r, h.features.NewsAnalyzer) {
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	data := NewsViewData{
		PageData: h.renderer.Page(r, "News Analyzer"),
		Ticker:   ticker,
	}
	if ticker == "" {
		h.renderer.Render(w, http.StatusOK, "news.tmpl", data)
		return
	}
	if err := validation.ValidateTicker(ticker); err != nil {
		data.Error = err.Error()
		h.renderer.Render(w, http.StatusBadRequest, "news.tmpl", data)
		return
	}

	sentiment, err := h.backend.NewsSentiment(r.Context(), ticker)
	if err != nil {
		status, msg := h.backendError("news_sentiment", err)
		data.Error = msg
		h.renderer.Render(w, status, "news.tmpl", data)
		return
	}
	data.Sentiment = sentiment

	// prices are a nice-to-have next to the sentiment
	if prices, err := h.backend.StockPrices(r.Context(), []string{ticker}); err != nil {
		h.metrics.BackendFailed("stock_prices")
		log.Printf("Stock prices for %s failed: %v", ticker, err)
	} else {
		data.Prices = prices
	}

	h.renderer.Render(w, http.StatusOK, "news.tmpl", data)
}

func (h *FinanceHandler) gate(w http.ResponseWriter, r *http.Request, enabled bool) bool {
	if !enabled {
		http.NotFound(w, r)
		return false
	}
	return true
}

func (h *FinanceHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data FinanceViewData) {
	data.PageData = h.renderer.Page(r, title)
	if name == "investment.tmpl" {
		data.Brokers = content.Brokers()
	}
	h.renderer.Render(w, status, name, data)
}

func (h *FinanceHandler) finish(w http.ResponseWriter, r *http.Request, name, title, operation string, data FinanceViewData, resp backend.Response, err error) {
	if err != nil {
		status, msg := h.backendError(operation, err)
		data.Error = msg
		h.render(w, r, status, name, title, data)
		return
	}
	data.Result = resp
	h.render(w, r, http.StatusOK, name, title, data)
}

// backendError maps a client error to a status and a message safe to show
func (h *FinanceHandler) backendError(operation string, err error) (int, string) {
	h.metrics.BackendFailed(operation)
	log.Printf("Backend %s failed: %v", operation, err)

	var apiErr *backend.APIError
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return http.StatusBadGateway, ErrBackendUnavailable
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Message != "":
		return http.StatusBadRequest, apiErr.Message
	default:
		return http.StatusBadGateway, ErrBackendUnavailable
	}
}

// formError turns a validation error into a sentence for the page
func formError(err error) string {
	var vErr validation.ValidationError
	if errors.As(err, &vErr) {
		return humanize(vErr.Field) + " " + vErr.Message
	}
	return err.Error()
}

// financeForm reads numeric form fields and keeps the first error
type financeForm struct {
	values map[string]string
	err    error
}

func parseForm(r *http.Request, fields []string) *financeForm {
	f := &financeForm{values: make(map[string]string, len(fields))}
	if err := r.ParseForm(); err != nil {
		f.err = errors.New(ErrInvalidFormData)
		return f
	}
	for _, field := range fields {
		f.values[field] = strings.TrimSpace(r.FormValue(field))
	}
	return f
}

func (f *financeForm) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// number parses an optional non-negative amount, blank meaning zero
func (f *financeForm) number(field string) float64 {
	raw := strings.ReplaceAll(f.values[field], " ", "")
	if raw == "" {
		return 0
	}
	v, err := parseFinite(raw)
	if err != nil || v < 0 {
		f.fail(validation.ValidationError{Field: field, Message: "must be a non-negative number"})
		return 0
	}
	return v
}

// amount parses an amount that must be positive when required
func (f *financeForm) amount(field string, required bool) float64 {
	v := f.number(field)
	if required && f.err == nil {
		if err := validation.ValidateAmount(field, v); err != nil {
			f.fail(err)
		}
	}
	return v
}

func (f *financeForm) integer(field string, fallback int) int {
	raw := f.values[field]
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		f.fail(validation.ValidationError{Field: field, Message: "must be a whole number"})
		return fallback
	}
	return v
}

func (f *financeForm) checked(field string) bool {
	v := strings.ToLower(f.values[field])
	return v == "on" || v == "true" || v == "1"
}

func (f *financeForm) choice(field, fallback string, allowed ...string) string {
	v := strings.ToLower(f.values[field])
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

// parseFinite parses a float, rejecting NaN and infinities which ParseFloat accepts
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// parseHoldings reads one "SYMBOL: value" pair per line
func parseHoldings(raw string) ([]backend.Holding, error) {
	var holdings []backend.Holding
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		symbol, value, ok := strings.Cut(line, ":")
		if !ok {
			symbol, value, ok = strings.Cut(line, ",")
		}
		if !ok {
			return nil, validation.ValidationError{Field: "holdings", Message: fmt.Sprintf("line %d must look like SYMBOL: amount", i+1)}
		}
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if err := validation.ValidateTicker(symbol); err != nil {
			return nil, validation.ValidationError{Field: "holdings", Message: fmt.Sprintf("line %d: invalid symbol %q", i+1, symbol)}
		}
		amount, err := parseFinite(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
		if err != nil || amount <= 0 {
			return nil, validation.ValidationError{Field: "holdings", Message: fmt.Sprintf("line %d: amount must be positive", i+1)}
		}
		holdings = append(holdings, backend.Holding{Symbol: symbol, Value: amount})
	}
	if len(holdings) == 0 {
		return nil, validation.ValidationError{Field: "holdings", Message: "must list at least one position"}
	}
	return holdings, nil
}

// transactionLayout is how the fraud form expects timestamps
const transactionLayout = "2006-01-02 15:04"

// parseTransactions reads one "YYYY-MM-DD HH:MM, amount[, location]" entry per line
func parseTransactions(raw string) ([]backend.Transaction, error) {
	var transactions []backend.Transaction
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) < 2 {
			return nil, validation.ValidationError{Field: "transactions", Message: fmt.Sprintf("line %d must look like YYYY-MM-DD HH:MM, amount", i+1)}
		}
		at, err := time.Parse(transactionLayout, strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, validation.ValidationError{Field: "transactions", Message: fmt.Sprintf("line %d: invalid date %q", i+1, strings.TrimSpace(parts[0]))}
		}
		amount, err := parseFinite(strings.ReplaceAll(strings.TrimSpace(parts[1]), " ", ""))
		if err != nil || amount <= 0 {
			return nil, validation.ValidationError{Field: "transactions", Message: fmt.Sprintf("line %d: amount must be positive", i+1)}
		}
		tx := backend.Transaction{Timestamp: at.Format("2006-01-02T15:04:05"), Amount: amount}
		if len(parts) == 3 {
			tx.Location = strings.TrimSpace(parts[2])
		}
		transactions = append(transactions, tx)
	}
	if len(transactions) == 0 {
		return nil, validation.ValidationError{Field: "transactions", Message: "must list at least one transaction"}
	}
	return transactions, nil
}
