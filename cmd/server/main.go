package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financecoach/internal/backend"
	"financecoach/internal/config"
	"financecoach/internal/content"
	"financecoach/internal/database"
	"financecoach/internal/handlers"
	"financecoach/internal/repository"
	"financecoach/internal/security"
	"financecoach/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	templates, err := handlers.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(context.Background(), cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.OAuthRedirectBaseURL, cfg.Debug)
	if err != nil {
		log.Printf("Warning: email disabled: %v", err)
		emailService = nil
	}
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	quizService := service.NewQuizService(content.DefaultBank(), attemptRepo, emailService, cfg.QuizSessionTTL, cfg.Debug)

	api := backend.New(backend.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.BackendTimeout,
		JWTSecret: cfg.BackendJWTSecret,
		CacheTTL:  cfg.BackendCacheTTL,
	})

	csrfSecret := cfg.CSRFSecret
	if csrfSecret == "" {
		log.Println("Warning: CSRF_SECRET not set, tokens will not survive a restart")
		csrfSecret = security.GenerateSessionID()
	}

	oauthProviders := map[string]handlers.OAuthProvider{}
	if cfg.GoogleEnabled() {
		oauthProviders["google"] = handlers.OAuthProvider{
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		}
	}

	metrics := handlers.NewMetrics()
	metrics.RegisterGauge("financecoach_quiz_active_sessions", "Quiz sessions currently held in memory.", func() float64 {
		return float64(quizService.ActiveSessions())
	})

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, security.NewCSRFGenerator(csrfSecret), security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute))
	renderer := handlers.NewRenderer(templates, middleware, cfg.Features)
	authHandler := handlers.NewAuthHandler(authService, emailService, renderer, oauthProviders, cfg.OAuthRedirectBaseURL)
	dashboardHandler := handlers.NewDashboardHandler(api, quizService, renderer)
	literacyHandler := handlers.NewLiteracyHandler(quizService, renderer)
	quizHandler := handlers.NewQuizHandler(quizService, emailService, metrics, renderer)
	financeHandler := handlers.NewFinanceHandler(api, cfg.Features, metrics, renderer)

	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", handlers.Healthz)

	// Public routes
	mux.HandleFunc("GET /{$}", dashboardHandler.Dashboard)
	mux.HandleFunc("GET /dashboard", dashboardHandler.Dashboard)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(middleware.CSRFProtect(authHandler.Login)))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(middleware.CSRFProtect(authHandler.Register)))
	mux.HandleFunc("POST /logout", middleware.CSRFProtect(authHandler.Logout))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Literacy routes
	mux.HandleFunc("GET /literacy", literacyHandler.Menu)
	mux.HandleFunc("GET /literacy/investments", literacyHandler.Investments)
	mux.HandleFunc("GET /literacy/interest", literacyHandler.Interest)
	mux.HandleFunc("GET /literacy/tips", literacyHandler.Tips)
	mux.HandleFunc("GET /literacy/resources", literacyHandler.Resources)

	// Quiz routes
	mux.HandleFunc("GET /literacy/quiz", quizHandler.Show)
	mux.HandleFunc("GET /literacy/quiz/state", quizHandler.State)
	mux.HandleFunc("POST /literacy/quiz/start", middleware.CSRFProtect(quizHandler.Start))
	mux.HandleFunc("POST /literacy/quiz/answer", middleware.CSRFProtect(quizHandler.Answer))
	mux.HandleFunc("POST /literacy/quiz/next", middleware.CSRFProtect(quizHandler.Next))
	mux.HandleFunc("POST /literacy/quiz/prev", middleware.CSRFProtect(quizHandler.Prev))
	mux.HandleFunc("POST /literacy/quiz/submit", middleware.CSRFProtect(quizHandler.Submit))
	mux.HandleFunc("POST /literacy/quiz/email", middleware.RequireAuth(middleware.CSRFProtect(quizHandler.Email)))

	// Finance tools, each behind its feature flag
	mux.HandleFunc("GET /planner", financeHandler.Planner)
	mux.HandleFunc("POST /planner", middleware.CSRFProtect(financeHandler.PlannerAction))
	mux.HandleFunc("GET /investment", financeHandler.Investment)
	mux.HandleFunc("POST /investment", middleware.CSRFProtect(financeHandler.InvestmentAction))
	mux.HandleFunc("GET /loan", financeHandler.Loan)
	mux.HandleFunc("POST /loan", middleware.CSRFProtect(financeHandler.LoanAction))
	mux.HandleFunc("GET /fraud-check", financeHandler.Fraud)
	mux.HandleFunc("POST /fraud-check", middleware.CSRFProtect(financeHandler.FraudAction))
	mux.HandleFunc("GET /news-analyzer", financeHandler.News)

	// Instrument wraps the mux directly so it sees the matched pattern
	handler := handlers.Logging(middleware.Visitor(middleware.LoadUser(metrics.Instrument(mux))))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleanupExpiredSessions(ctx, authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
		os.Exit(1)
	}
}

// cleanupExpiredSessions periodically removes expired login sessions
func cleanupExpiredSessions(ctx context.Context, authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}
}
