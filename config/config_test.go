package config

import (
	"testing"
	"time"
)

func TestPasswordPolicyValidate(t *testing.T) {
	policy := PasswordPolicy{
		MinLength:        6,
		MaxLength:        50,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}

	if err := policy.Validate("shor"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := policy.Validate("lowercase1!"); err == nil {
		t.Fatalf("expected error for missing uppercase")
	}
	if err := policy.Validate("UPPERCASE1!"); err == nil {
		t.Fatalf("expected error for missing lowercase")
	}
	if err := policy.Validate("NoNumber!"); err == nil {
		t.Fatalf("expected error for missing number")
	}
	if err := policy.Validate("NoSpecial1"); err == nil {
		t.Fatalf("expected error for missing special")
	}
	if err := policy.Validate("GoodPass1!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := getEnv("TEST_STRING", "default"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := getEnv("MISSING_STRING", "default"); got != "default" {
		t.Fatalf("expected default, got %q", got)
	}

	t.Setenv("TEST_DURATION", "30")
	if got := getDurationEnv("TEST_DURATION", 5*time.Minute); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", got)
	}
	t.Setenv("TEST_DURATION", "invalid")
	if got := getDurationEnv("TEST_DURATION", 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("expected default duration, got %v", got)
	}

	t.Setenv("TEST_BOOL", "true")
	if got := getBoolEnv("TEST_BOOL", false); got != true {
		t.Fatalf("expected true, got %v", got)
	}

	t.Setenv("TEST_INT", "42")
	if got := getIntEnv("TEST_INT", 5); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without MYSQL_DSN")
	}

	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/chirper?parseTime=true")
	t.Setenv("PASSWORD_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without PASSWORD_SECRET")
	}

	t.Setenv("PASSWORD_SECRET", "pepper")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("JWT_EMAIL_VERIFY_SECRET", "e")
	t.Setenv("JWT_FORGOT_PASSWORD_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error with missing token secret")
	}

	t.Setenv("JWT_FORGOT_PASSWORD_SECRET", "f")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("unexpected default access token TTL: %v", cfg.AccessTokenTTL)
	}
	if cfg.HTTPPort != "4000" {
		t.Fatalf("unexpected default port: %q", cfg.HTTPPort)
	}
}
