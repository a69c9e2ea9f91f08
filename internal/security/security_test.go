package security

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCSRFGenerator(t *testing.T) {
	g := NewCSRFGenerator("secret")

	token, err := g.GenerateToken("visitor-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name    string
		visitor string
		token   string
		want    bool
	}{
		{name: "matching token", visitor: "visitor-1", token: token, want: true},
		{name: "other visitor", visitor: "visitor-2", token: token},
		{name: "empty token", visitor: "visitor-1", token: ""},
		{name: "empty visitor", visitor: "", token: token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ValidateToken(tt.visitor, tt.token); got != tt.want {
				t.Errorf("ValidateToken() = %v, want %v", got, tt.want)
			}
		})
	}

	if NewCSRFGenerator("other").ValidateToken("visitor-1", token) {
		t.Error("token should not validate under a different secret")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request inside the window should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("a different client should have its own bucket")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "192.0.2.7:5123", want: "192.0.2.7"},
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, remote: "10.0.0.1:80", want: "203.0.113.9"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, remote: "10.0.0.1:80", want: "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCookiesFollowScheme(t *testing.T) {
	plain := httptest.NewRequest("GET", "/", nil)
	if c := CreateSessionCookie(plain, "session_id", "abc", time.Now().Add(time.Hour)); c.Secure {
		t.Error("cookie over http should not be Secure")
	}

	proxied := httptest.NewRequest("GET", "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if c := CreateSessionCookie(proxied, "session_id", "abc", time.Now().Add(time.Hour)); !c.Secure || !c.HttpOnly {
		t.Errorf("proxied https cookie = %+v, want Secure and HttpOnly", c)
	}

	direct := httptest.NewRequest("GET", "/", nil)
	direct.TLS = &tls.ConnectionState{}
	if c := CreateDeleteCookie(direct, "session_id"); !c.Secure || c.MaxAge != -1 {
		t.Errorf("delete cookie = %+v", c)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("rand-savings-2026")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "rand-savings-2026" {
		t.Fatal("hash should not equal the password")
	}
	if !CheckPassword("rand-savings-2026", hash) {
		t.Error("CheckPassword() should accept the right password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword() should reject a wrong password")
	}
	if CheckPassword("anything", "") {
		t.Error("CheckPassword() should reject an empty hash")
	}
}

func TestGenerateSessionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateSessionID()
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}
