package config

import (
	"strings"
	"testing"
)

func TestValidateEnvRequiresCriticalVariables(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	err := ValidateEnv()
	if err == nil {
		t.Fatal("expected error when critical variables are unset")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error should name the missing variables, got %q", err.Error())
	}
}

func TestValidateEnvPassesWithCriticalVariables(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/foodfusion")

	if err := ValidateEnv(); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://orders.example.com")
	if got := GetEnv("FRONTEND_URL", "http://localhost:3000"); got != "https://orders.example.com" {
		t.Errorf("expected override, got %q", got)
	}

	t.Setenv("FRONTEND_URL", "")
	if got := GetEnv("FRONTEND_URL", "http://localhost:3000"); got != "http://localhost:3000" {
		t.Errorf("expected default, got %q", got)
	}
}
