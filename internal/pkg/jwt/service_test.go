package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", "authenticated")
	uid := uuid.New()

	tok, err := svc.Sign(uid, "a@b.c", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != uid || claims.Email != "a@b.c" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", "")
	tok, err := svc.Sign(uuid.New(), "", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecretAndAudience(t *testing.T) {
	tok, err := NewHMACService("other", "").Sign(uuid.New(), "", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewHMACService("secret", "").ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}

	tok, _ = NewHMACService("secret", "").Sign(uuid.New(), "", time.Hour)
	if _, err := NewHMACService("secret", "authenticated").ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing audience, got %v", err)
	}
}

func TestHMACService_RejectsNonUUIDSubject(t *testing.T) {
	c := jwtlib.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewHMACService("secret", "").ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
