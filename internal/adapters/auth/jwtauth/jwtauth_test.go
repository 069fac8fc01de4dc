package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"zoo-care-service/internal/ports/auth"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	cfg := Config{Secret: "test-secret", TTL: time.Hour}
	issuer := NewIssuer(cfg)
	verifier := NewVerifier(cfg)

	token, err := issuer.Issue("user-1", "ana@zoo.example", auth.RoleVet)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := verifier.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ana@zoo.example" || claims.Role != auth.RoleVet {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer(Config{Secret: "secret-a"})
	verifier := NewVerifier(Config{Secret: "secret-b"})

	token, err := issuer.Issue("user-1", "", auth.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	cfg := Config{Secret: "test-secret", TTL: time.Minute}
	issuer := NewIssuer(cfg)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	verifier := NewVerifier(cfg)

	token, err := issuer.Issue("user-1", "", auth.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestIssuer_NotConfigured(t *testing.T) {
	issuer := NewIssuer(Config{})
	if issuer.IsConfigured() {
		t.Fatal("issuer without secret must not be configured")
	}
	if _, err := issuer.Issue("user-1", "", auth.RoleUser); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	verifier := NewVerifier(Config{Secret: "test-secret"})
	if _, err := verifier.Verify(context.Background(), ""); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}
