package token

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	raw, err := svc.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	username, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %v", err)
	}
	if username != "admin" {
		t.Errorf("expected username 'admin', got %q", username)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService("test-secret", -1*time.Minute)

	raw, err := svc.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	if _, err := svc.Verify(raw); err != ErrExpired {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	raw, err := svc.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	if _, err := svc.Verify(tampered); err != ErrInvalid {
		t.Errorf("expected ErrInvalid for tampered token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewService("secret-a", 24*time.Hour)
	verifier := NewService("secret-b", 24*time.Hour)

	raw, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	if _, err := verifier.Verify(raw); err != ErrInvalid {
		t.Errorf("expected ErrInvalid for wrong secret, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); err != ErrInvalid {
			t.Errorf("Verify(%q): expected ErrInvalid, got %v", raw, err)
		}
	}
}
