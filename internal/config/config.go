package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Features toggles the optional finance pages
type Features struct {
	FinancialPlanning         bool
	InvestmentRecommendations bool
	LoanAnalysis              bool
	FraudDetection            bool
	NewsAnalyzer              bool
}

// Config holds application configuration
type Config struct {
	ServerPort      string
	Debug           bool
	SessionDuration time.Duration
	StaticFilesPath string
	TemplatesPath   string
	MigrationsPath  string

	// Database
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// Backend API
	APIURL           string
	BackendTimeout   time.Duration
	BackendJWTSecret string
	BackendCacheTTL  time.Duration

	// Quiz sessions for anonymous and logged-in visitors
	QuizSessionTTL time.Duration

	// Security
	CSRFSecret         string
	RateLimitPerMinute int

	// OAuth
	OAuthRedirectBaseURL string
	GoogleClientID       string
	GoogleClientSecret   string

	// Email (Amazon SES)
	SESRegion    string
	SESFromEmail string
	SESFromName  string

	Features Features
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		Debug:           getEnvBool("DEBUG", false),
		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", ""),

		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./financecoach.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		APIURL:           getEnv("API_URL", "http://localhost:5000/api"),
		BackendTimeout:   getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		BackendJWTSecret: getEnv("BACKEND_JWT_SECRET", ""),
		BackendCacheTTL:  getEnvDuration("BACKEND_CACHE_TTL", 5*time.Minute),

		QuizSessionTTL: getEnvDuration("QUIZ_SESSION_TTL", 2*time.Hour),

		CSRFSecret:         getEnv("CSRF_SECRET", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),

		SESRegion:    getEnv("SES_REGION", "af-south-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Financial Coach"),

		Features: Features{
			FinancialPlanning:         getEnvBool("ENABLE_FINANCIAL_PLANNING", true),
			InvestmentRecommendations: getEnvBool("ENABLE_INVESTMENT_RECOMMENDATIONS", true),
			LoanAnalysis:              getEnvBool("ENABLE_LOAN_ANALYSIS", true),
			FraudDetection:            getEnvBool("ENABLE_FRAUD_DETECTION", true),
			NewsAnalyzer:              getEnvBool("ENABLE_NEWS_ANALYZER", true),
		},
	}
}

// GoogleEnabled reports whether Google sign-in is configured
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s: %q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go duration strings ("90s", "2h") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: invalid duration for %s: %q, using %v", key, value, defaultValue)
	return defaultValue
}
