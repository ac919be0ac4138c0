package auth

import (
	"strings"
	"testing"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key")

	userID := int64(123)
	email := "test@example.com"

	token, err := j.Generate(userID, email)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %d, want %d", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Validate() got Email %s, want %s", claims.Email, email)
	}
}

func TestJWT_TamperedToken(t *testing.T) {
	j := NewJWT("my-secret-key")

	token, err := j.Generate(1, "a@b.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".invalid-signature"
	if _, err := j.Validate(tampered); err == nil {
		t.Error("Validate() accepted tampered signature")
	}

	if _, err := j.Validate("invalid.token"); err == nil {
		t.Error("Validate() accepted malformed token")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWT("secret-one").Generate(7, "x@y.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := NewJWT("secret-two").Validate(token); err == nil {
		t.Error("Validate() accepted token signed with a different secret")
	}
}

func TestJWT_EmailToken(t *testing.T) {
	j := NewJWT("my-secret-key")

	token, err := j.GenerateEmailToken("confirm@example.com")
	if err != nil {
		t.Fatalf("GenerateEmailToken() failed: %v", err)
	}

	claims, err := j.ValidateEmailToken(token)
	if err != nil {
		t.Fatalf("ValidateEmailToken() failed: %v", err)
	}
	if claims.Email != "confirm@example.com" {
		t.Errorf("ValidateEmailToken() got Email %s, want confirm@example.com", claims.Email)
	}
}

func TestJWT_EmailTokenNotValidAsSession(t *testing.T) {
	j := NewJWT("my-secret-key")

	token, err := j.GenerateEmailToken("confirm@example.com")
	if err != nil {
		t.Fatalf("GenerateEmailToken() failed: %v", err)
	}

	// An email token has no user id; a session built from it must not carry one.
	claims, err := j.Validate(token)
	if err == nil && claims.UserID != 0 {
		t.Errorf("Validate() extracted UserID %d from an email token", claims.UserID)
	}
}
