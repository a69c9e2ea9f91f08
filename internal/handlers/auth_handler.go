package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"financecoach/internal/security"
	"financecoach/internal/service"
	"financecoach/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	emailService         *service.EmailService
	renderer             *Renderer
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, renderer *Renderer, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		renderer:             renderer,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if GetUserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, "", "")
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	session, user, err := h.authService.Login(email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("Login failed for %s: %v", email, err)
		}
		h.renderLogin(w, r, http.StatusUnauthorized, "Invalid email or password", email)
		return
	}

	log.Printf("User %d logged in", user.ID)
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if GetUserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderRegister(w, r, http.StatusOK, "", "", "")
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")

	user, err := h.authService.Register(email, password, name)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.renderRegister(w, r, http.StatusBadRequest, vErr.Message, email, name)
		case errors.Is(err, service.ErrEmailTaken):
			h.renderRegister(w, r, http.StatusConflict, "An account with this email already exists", email, name)
		default:
			log.Printf("Registration failed for %s: %v", email, err)
			h.renderRegister(w, r, http.StatusInternalServerError, "Registration failed, please try again", email, name)
		}
		return
	}

	if h.emailService != nil && h.emailService.IsEnabled() {
		go func(email, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.emailService.SendWelcomeEmail(ctx, email, name); err != nil {
				log.Printf("Failed to send welcome email: %v", err)
			}
		}(user.Email, user.FirstName())
	}

	// Auto-login after registration
	session, _, err := h.authService.Login(email, password)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			log.Printf("Logout failed: %v", err)
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, errMsg, email string) {
	h.renderer.Render(w, status, "login.tmpl", LoginViewData{
		PageData:       h.renderer.Page(r, "Login"),
		OAuthProviders: h.oauthProviderViews(),
		Error:          errMsg,
		Email:          email,
	})
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, status int, errMsg, email, name string) {
	h.renderer.Render(w, status, "register.tmpl", RegisterViewData{
		PageData:       h.renderer.Page(r, "Register"),
		OAuthProviders: h.oauthProviderViews(),
		Error:          errMsg,
		Email:          email,
		Name:           name,
	})
}
