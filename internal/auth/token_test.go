package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	token, err := sessions.Issue("guest@example.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := sessions.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if claims.Email != "guest@example.com" {
		t.Errorf("expected email 'guest@example.com', got %q", claims.Email)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected expiry to be set")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("expected expiry within one hour, got %s", ttl)
	}
}

func TestVerify_UniformRejection(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	expired, err := NewSessions("test-secret", -time.Minute).Issue("guest@example.com")
	if err != nil {
		t.Fatalf("issuing expired token: %v", err)
	}
	otherSecret, err := NewSessions("other-secret", time.Hour).Issue("guest@example.com")
	if err != nil {
		t.Fatalf("issuing foreign token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"malformed token", "not-a-jwt"},
		{"expired token", expired},
		{"wrong signing secret", otherSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := sessions.Verify(tt.token)
			if err != ErrUnauthenticated {
				t.Errorf("Verify() error = %v, want ErrUnauthenticated", err)
			}
			if claims != nil {
				t.Errorf("Verify() should not return claims on failure")
			}
		})
	}
}
