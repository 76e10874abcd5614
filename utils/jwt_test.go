package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	userID := uuid.New()
	token, err := GenerateToken(userID, "user@test.com", "customer")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "user@test.com" || claims.Role != "customer" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "foodfusion-backend" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

func TestRefreshTokenHasLongerLifetime(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	refresh, err := GenerateRefreshToken(uuid.New(), "user@test.com", "customer")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ValidateToken(refresh)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Issuer != "foodfusion-refresh" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if time.Until(claims.ExpiresAt.Time) < 6*24*time.Hour {
		t.Error("refresh token should live for roughly a week")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
	token, err := GenerateToken(uuid.New(), "user@test.com", "customer")
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "a-different-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	claims := Claims{
		UserID: uuid.New(),
		Email:  "user@test.com",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "foodfusion-backend",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key-for-unit-tests"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	claims := Claims{UserID: uuid.New()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Error("expected token signed with 'none' to be rejected")
	}
}
