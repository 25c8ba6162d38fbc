package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"astrodesk/pkg/logger"
	"astrodesk/pkg/token"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewService("test-secret", 1*time.Hour)
	valid, err := tokens.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	expiredSvc := token.NewService("test-secret", -1*time.Hour)
	expired, err := expiredSvc.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	var gotIdentity string
	protected := RequireAuth(tokens, testLogger())(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotIdentity = Identity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIdentity = ""
			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			protected(w, req, httprouter.Params{})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && gotIdentity != "admin" {
				t.Errorf("expected identity 'admin', got %q", gotIdentity)
			}
		})
	}
}
