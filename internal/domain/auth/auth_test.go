package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestLoginAndParseToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	token, err := Login("signing-secret", "petro@example.com", string(hash), "petro@example.com", "super-secret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	claims, err := ParseToken("signing-secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Email != "petro@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.DefaultCost)

	cases := []struct {
		email, password string
	}{
		{"petro@example.com", "wrong"},
		{"someone@example.com", "super-secret"},
	}
	for _, tc := range cases {
		if _, err := Login("signing-secret", "petro@example.com", string(hash), tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q) err = %v, want ErrInvalidCredentials", tc.email, tc.password, err)
		}
	}
}

func TestLoginRejectsWhenOperatorUnconfigured(t *testing.T) {
	if _, err := Login("signing-secret", "", "", "petro@example.com", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken("secret-a", "petro@example.com", "Petro", time.Hour)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected signature rejection")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := IssueToken("signing-secret", "petro@example.com", "Petro", -time.Minute)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := ParseToken("signing-secret", token); err == nil {
		t.Fatal("expected expiry rejection")
	}
}
