package util

import (
	"testing"
	"time"
)

func TestSessionJWTRoundTrip(t *testing.T) {
	token, err := GenerateSessionJWT("abc-123", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionJWT() error = %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.SessionID != "abc-123" {
		t.Errorf("SessionID = %q, want abc-123", claims.SessionID)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateSessionJWT("abc-123", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionJWT() error = %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("ParseJWT() should reject a token signed with a different secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateSessionJWT("abc-123", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionJWT() error = %v", err)
	}

	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Error("ParseJWT() should reject an expired token")
	}
}
