package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefrontz-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefrontz-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: userID})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.ID == "" {
		t.Fatalf("expected generated jti")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	bad := cfg
	bad.Secret = "other-secret"
	if _, err := ParseAccessToken(bad, token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestMintValidatesConfig(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()}); err == nil {
		t.Fatalf("expected error without secret")
	}

	cfg = testJWTConfig()
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatalf("expected error without user id")
	}
}
