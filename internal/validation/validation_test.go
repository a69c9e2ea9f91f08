package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "thandi@example.co.za"},
		{name: "valid email with plus", email: "thandi+quiz@example.com"},
		{name: "surrounding spaces", email: "  thandi@example.com  "},
		{name: "missing @", email: "thandiexample.com", wantErr: true},
		{name: "missing domain", email: "thandi@", wantErr: true},
		{name: "missing local part", email: "@example.com", wantErr: true},
		{name: "empty string", email: "", wantErr: true},
		{name: "spaces in email", email: "thandi @example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "Thandi Nkosi"},
		{name: "name with hyphen", input: "Mary-Jane"},
		{name: "name with apostrophe", input: "O'Brien"},
		{name: "empty name", input: "   ", wantErr: true},
		{name: "name too short", input: "T", wantErr: true},
		{name: "name too long", input: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "password123"},
		{name: "exactly 8 characters", password: "pass1234"},
		{name: "too short", password: "pass123", wantErr: true},
		{name: "empty", password: "", wantErr: true},
		{name: "72 bytes", password: strings.Repeat("x", 72)},
		{name: "over bcrypt limit", password: strings.Repeat("x", 73), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTicker(t *testing.T) {
	tests := []struct {
		ticker  string
		wantErr bool
	}{
		{ticker: "AAPL"},
		{ticker: "sbk.jo"},
		{ticker: "NED.JO"},
		{ticker: "", wantErr: true},
		{ticker: "DROP TABLE", wantErr: true},
		{ticker: "../admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			err := ValidateTicker(tt.ticker)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTicker(%q) error = %v, wantErr %v", tt.ticker, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorField(t *testing.T) {
	err := ValidateAmount("loan_amount", 0)
	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if vErr.Field != "loan_amount" {
		t.Errorf("Field = %q, want loan_amount", vErr.Field)
	}
	if ValidateAmount("loan_amount", 1500) != nil {
		t.Error("positive amount should be valid")
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if ValidateAmount("loan_amount", v) == nil {
			t.Errorf("ValidateAmount(%v) should fail", v)
		}
	}
}
