package utils

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	raw, err := GenerateToken(42, "client@example.com", "client", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
	if claims.Email != "client@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Role != "client" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
}

func TestParseExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	raw, err := GenerateToken(42, "client@example.com", "client", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = ParseToken(raw)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseWrongSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	raw, err := GenerateToken(42, "client@example.com", "client", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = ParseToken(raw)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestParseMalformedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := ParseToken(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("ParseToken(%q): expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}
