package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJwtSecret("test-secret")

	token, err := GenerateJWT("steve")
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT() error: %v", err)
	}
	if claims.Username != "steve" {
		t.Errorf("expected username steve, got %q", claims.Username)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	InitJwtSecret("test-secret")

	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJwtSecret("secret-a")
	token, err := GenerateJWT("steve")
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	InitJwtSecret("secret-b")
	if _, err := ParseJWT(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}
