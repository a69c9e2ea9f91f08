package handlers

const (
	SessionCookieName = "session_id"
	VisitorCookieName = "visitor_id"
	CSRFFormField     = "csrf_token"
	CSRFHeader        = "X-CSRF-Token"

	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrTooManyRequests     = "Too many requests, please slow down"
	ErrInternalServerError = "Internal server error"
	ErrBackendUnavailable  = "The analysis service is unavailable right now. Please try again shortly."
	ErrLoginForPlans       = "Log in to see recommendations for your saved plans"
)
