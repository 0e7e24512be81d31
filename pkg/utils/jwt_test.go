package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	user := UserContext{ID: uuid.New(), Username: "sam", Email: "sam@example.com", Role: "worker"}

	token, err := GenerateToken(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	got, err := ValidateTokenStringToUUID("Bearer "+token, "secret")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if *got != user {
		t.Errorf("got %+v, want %+v", *got, user)
	}

	if _, err := ValidateTokenStringToUUID(token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: err = %v", err)
	}
	if _, err := ValidateTokenStringToUUID("", "secret"); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty token: err = %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateToken(UserContext{ID: uuid.New()}, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateTokenStringToUUID(token, "secret"); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if got := ExtractTokenFromHeader("Bearer abc"); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := ExtractTokenFromHeader("Basic abc"); got != "" {
		t.Errorf("got %q", got)
	}
	if got := ExtractTokenFromHeader(""); got != "" {
		t.Errorf("got %q", got)
	}
}
