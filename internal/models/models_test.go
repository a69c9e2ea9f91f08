package models

import (
	"reflect"
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{name: "future expiration", expiresAt: time.Now().Add(1 * time.Hour), want: false},
		{name: "just expired", expiresAt: time.Now().Add(-1 * time.Second), want: true},
		{name: "expired yesterday", expiresAt: time.Now().Add(-24 * time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{ID: "test-session", UserID: 1, ExpiresAt: tt.expiresAt}
			if got := session.IsExpired(); got != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Thandi Nkosi", want: "Thandi"},
		{name: "Sipho", want: "Sipho"},
		{name: "", want: ""},
	}
	for _, tt := range tests {
		u := User{Name: tt.name}
		if got := u.FirstName(); got != tt.want {
			t.Errorf("FirstName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCategoriesRoundTrip(t *testing.T) {
	if got := SplitCategories(""); got != nil {
		t.Errorf("SplitCategories(\"\") = %v, want nil", got)
	}
	in := []string{"debt", "interest"}
	if got := SplitCategories(JoinCategories(in)); !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestQuizStatsLevel(t *testing.T) {
	tests := []struct {
		xp        int
		wantLevel int
		wantNext  int
	}{
		{xp: 0, wantLevel: 1, wantNext: 100},
		{xp: 30, wantLevel: 1, wantNext: 70},
		{xp: 100, wantLevel: 2, wantNext: 100},
		{xp: 250, wantLevel: 3, wantNext: 50},
	}
	for _, tt := range tests {
		s := QuizStats{TotalXP: tt.xp}
		if s.Level() != tt.wantLevel || s.XPToNextLevel() != tt.wantNext {
			t.Errorf("xp %d: Level() = %d, XPToNextLevel() = %d, want %d, %d", tt.xp, s.Level(), s.XPToNextLevel(), tt.wantLevel, tt.wantNext)
		}
	}
}
