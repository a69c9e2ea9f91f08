// Package validation checks user-supplied form values
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	tickerRegex = regexp.MustCompile(`^[A-Z0-9]{1,10}(\.[A-Z]{1,4})?$`)
)

// ValidationError represents a validation error on one form field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	if len(password) > 72 {
		// bcrypt ignores anything past 72 bytes
		return ValidationError{Field: "password", Message: "password must be at most 72 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if len(name) > 100 {
		return ValidationError{Field: "name", Message: "name must be at most 100 characters"}
	}
	return nil
}

// ValidateTicker checks a share code such as "SBK.JO" or "AAPL"
func ValidateTicker(ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return ValidationError{Field: "ticker", Message: "ticker is required"}
	}
	if !tickerRegex.MatchString(ticker) {
		return ValidationError{Field: "ticker", Message: "invalid ticker format"}
	}
	return nil
}

// ValidateAmount checks that a rand amount is positive
func ValidateAmount(field string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ValidationError{Field: field, Message: "must be a finite number"}
	}
	if amount <= 0 {
		return ValidationError{Field: field, Message: "must be greater than zero"}
	}
	return nil
}
