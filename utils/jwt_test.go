package utils_test

import (
	"testing"
	"time"

	"hemovida/config"
	"hemovida/utils"
)

func TestTokenRoundTripUsesConfiguredSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	token, err := utils.GenerateToken("user-1", "maria@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sub, err := utils.ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("got subject %q, want user-1", sub)
	}

	// A token signed under one secret fails validation under another.
	config.AppConfig.JWTSecret = "rotated-secret"
	if _, err := utils.ExtractIDFromToken(token); err == nil {
		t.Fatal("token validated across a secret rotation")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := utils.HashToken("some-token")
	b := utils.HashToken("some-token")
	if a != b {
		t.Fatal("hash is not deterministic")
	}
	if a == utils.HashToken("other-token") {
		t.Fatal("distinct tokens collide")
	}
	if len(a) != 64 {
		t.Fatalf("hash length %d, want 64 hex chars", len(a))
	}
}
