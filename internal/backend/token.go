package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 5 * time.Minute

// AnonymousSubject is used for visitors who are not logged in
const AnonymousSubject = "anonymous"

type subjectKey struct{}

// WithSubject attaches the learner identifier used in backend tokens
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFrom returns the token subject carried by ctx
func SubjectFrom(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey{}).(string); ok && s != "" {
		return s
	}
	return AnonymousSubject
}

// tokenSource mints short-lived HS256 bearer tokens
type tokenSource struct {
	secret []byte
	now    func() time.Time
}

func newTokenSource(secret string) *tokenSource {
	return &tokenSource{secret: []byte(secret), now: time.Now}
}

// Token returns a signed token for subject, or "" when no secret is configured
func (s *tokenSource) Token(subject string) (string, error) {
	if len(s.secret) == 0 {
		return "", nil
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "financecoach",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign backend token: %w", err)
	}
	return signed, nil
}
