package auth

import (
	"net/http"
	"net/http/httptest"
	"rhr/pkg/logger"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestRequireAuth(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)
	token, err := sessions.Issue("guest@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	expiredToken, err := NewSessions("test-secret", -time.Minute).Issue("guest@example.com")
	if err != nil {
		t.Fatalf("issuing expired token: %v", err)
	}

	tests := []struct {
		name       string
		setRequest func(r *http.Request)
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "missing credential",
			setRequest: func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
			wantCalled: false,
		},
		{
			name: "valid cookie",
			setRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
			},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name: "valid bearer header",
			setRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name: "expired cookie",
			setRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: expiredToken})
			},
			wantStatus: http.StatusUnauthorized,
			wantCalled: false,
		},
		{
			name: "malformed bearer header",
			setRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Token "+token)
			},
			wantStatus: http.StatusUnauthorized,
			wantCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var identity string
			protected := RequireAuth(sessions, testLogger())(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				called = true
				identity, _ = Identity(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/booked", nil)
			tt.setRequest(req)
			rec := httptest.NewRecorder()

			protected(rec, req, nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantCalled && identity != "guest@example.com" {
				t.Errorf("identity = %q, want 'guest@example.com'", identity)
			}
		})
	}
}
