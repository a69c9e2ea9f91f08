// Package backend is a JSON client for the financial computation API that
// serves planning, investment, loan, fraud and market data.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultBaseURL  = "http://localhost:5000/api"
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 5 * time.Minute
)

// ErrUnauthorized is returned when the backend rejects the bearer token
var ErrUnauthorized = errors.New("backend: unauthorized")

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// Response is a decoded JSON object. Its shape is owned by the backend.
type Response map[string]any

// Options configures a Client
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	JWTSecret string
	CacheTTL  time.Duration
}

// Client talks to the backend API
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *tokenSource
	cache   *cache.Cache
}

// New creates a backend client. Zero option values fall back to defaults.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		tokens:  newTokenSource(opts.JWTSecret),
		cache:   cache.New(opts.CacheTTL, 2*opts.CacheTTL),
	}
}

// Health checks that the backend is reachable
func (c *Client) Health(ctx context.Context) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// CreatePlan asks the planner for a budget and savings plan
func (c *Client) CreatePlan(ctx context.Context, req PlanRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/planner/create", req, &out)
	return out, err
}

// PlanRecommendations returns advice for the plans the backend holds for userID
func (c *Client) PlanRecommendations(ctx context.Context, userID int64) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodGet, "/planner/recommendations/"+strconv.FormatInt(userID, 10), nil, &out)
	return out, err
}

// InvestmentSuggestions returns an allocation suggestion for the investor profile
func (c *Client) InvestmentSuggestions(ctx context.Context, req InvestmentRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/investment/suggestions", req, &out)
	return out, err
}

// AnalyzePortfolio scores an existing set of holdings
func (c *Client) AnalyzePortfolio(ctx context.Context, req PortfolioRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/investment/analyze", req, &out)
	return out, err
}

// MarketInsights returns the backend's current market commentary
func (c *Client) MarketInsights(ctx context.Context) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodGet, "/investment/insights", nil, &out)
	return out, err
}

// CheckAffordability checks whether a loan fits the applicant's budget
func (c *Client) CheckAffordability(ctx context.Context, req AffordabilityRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/loan/affordability", req, &out)
	return out, err
}

// CalculateLoan computes the repayment schedule summary for a loan
func (c *Client) CalculateLoan(ctx context.Context, req LoanCalculationRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/loan/calculate", req, &out)
	return out, err
}

// LoanRecommendations suggests loan products for the applicant
func (c *Client) LoanRecommendations(ctx context.Context, req LoanRecommendationRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/loan/recommendations", req, &out)
	return out, err
}

// DetectFraud scores a single transaction
func (c *Client) DetectFraud(ctx context.Context, req FraudRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/fraud/detect", req, &out)
	return out, err
}

// AnalyzePatterns looks for anomalies across a transaction history
func (c *Client) AnalyzePatterns(ctx context.Context, req PatternRequest) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/fraud/analyze-patterns", req, &out)
	return out, err
}

// SecurityRecommendations suggests protections missing from profile
func (c *Client) SecurityRecommendations(ctx context.Context, profile SecurityProfile) (Response, error) {
	var out Response
	err := c.do(ctx, http.MethodPost, "/fraud/security-recommendations", profile, &out)
	return out, err
}

// NewsSentiment returns scored news articles for ticker. Results are cached.
func (c *Client) NewsSentiment(ctx context.Context, ticker string) (Response, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, &APIError{Status: http.StatusBadRequest, Message: "ticker is required"}
	}
	return c.cachedGet(ctx, "news:"+ticker, "/sentiment/news/"+url.PathEscape(ticker))
}

// StockPrices returns the latest quotes for tickers. Results are cached per
// ticker set regardless of order.
func (c *Client) StockPrices(ctx context.Context, tickers []string) (Response, error) {
	var clean []string
	for _, t := range tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			clean = append(clean, t)
		}
	}
	if len(clean) == 0 {
		return nil, &APIError{Status: http.StatusBadRequest, Message: "at least one ticker is required"}
	}
	sort.Strings(clean)
	joined := strings.Join(clean, ",")

	q := url.Values{}
	q.Set("tickers", joined)
	return c.cachedGet(ctx, "prices:"+joined, "/stock-prices?"+q.Encode())
}

func (c *Client) cachedGet(ctx context.Context, key, path string) (Response, error) {
	if v, found := c.cache.Get(key); found {
		return v.(Response), nil
	}

	var out Response
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, out)
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(SubjectFrom(ctx))
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the "error" field out of a JSON error body
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}
