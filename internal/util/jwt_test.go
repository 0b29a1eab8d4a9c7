package util

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := CreateAccessToken("User@Example.COM", secret, time.Hour)
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	email, err := ParseAccessToken(token, secret)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("expected lowercased subject, got %s", email)
	}
}

func TestParseAccessTokenRejections(t *testing.T) {
	secret := "test-secret"

	t.Run("wrong secret", func(t *testing.T) {
		token, err := CreateAccessToken("user@example.com", secret, time.Hour)
		if err != nil {
			t.Fatalf("CreateAccessToken failed: %v", err)
		}
		if _, err := ParseAccessToken(token, "other-secret"); err == nil {
			t.Fatal("expected error for wrong secret")
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, err := CreateAccessToken("user@example.com", secret, -time.Minute)
		if err != nil {
			t.Fatalf("CreateAccessToken failed: %v", err)
		}
		if _, err := ParseAccessToken(token, secret); err == nil {
			t.Fatal("expected error for expired token")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseAccessToken("not-a-token", secret); err == nil {
			t.Fatal("expected error for malformed token")
		}
	})
}
