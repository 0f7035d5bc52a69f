package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost string
	HTTPPort string
	BaseURL  string
	MySQLDSN string

	LogLevel  string
	LogFormat string

	PasswordSecret string

	JWTAccessSecret         string
	JWTRefreshSecret        string
	JWTEmailVerifySecret    string
	JWTForgotPasswordSecret string

	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	EmailVerifyTokenTTL    time.Duration
	ForgotPasswordTokenTTL time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	SMTP SMTPConfig

	UploadImageDir string
	UploadVideoDir string

	PasswordPolicy PasswordPolicy
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether outbound mail is configured. When false the mailer
// logs instead of sending.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Port != "" && s.From != ""
}

type PasswordPolicy struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return fmt.Errorf("password must be at most %d characters long", p.MaxLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasNumber = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	var missing []string
	if p.RequireUppercase && !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if p.RequireLowercase && !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if p.RequireNumber && !hasNumber {
		missing = append(missing, "number")
	}
	if p.RequireSpecial && !hasSpecial {
		missing = append(missing, "special character")
	}

	if len(missing) > 0 {
		return fmt.Errorf("password must contain at least one: %s", strings.Join(missing, ", "))
	}

	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	passwordSecret := os.Getenv("PASSWORD_SECRET")
	if passwordSecret == "" {
		return nil, errors.New("PASSWORD_SECRET environment variable is required")
	}

	cfg := &Config{
		HTTPHost: getEnv("HTTP_HOST", ""),
		HTTPPort: getEnv("HTTP_PORT", "4000"),
		BaseURL:  getEnv("BASE_URL", "http://localhost:4000"),
		MySQLDSN: mysqlDSN,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		PasswordSecret: passwordSecret,

		JWTAccessSecret:         os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret:        os.Getenv("JWT_REFRESH_SECRET"),
		JWTEmailVerifySecret:    os.Getenv("JWT_EMAIL_VERIFY_SECRET"),
		JWTForgotPasswordSecret: os.Getenv("JWT_FORGOT_PASSWORD_SECRET"),

		AccessTokenTTL:         getDurationEnv("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:        getDurationEnv("REFRESH_TOKEN_TTL", 100*24*time.Hour),
		EmailVerifyTokenTTL:    getDurationEnv("EMAIL_VERIFY_TOKEN_TTL", 7*24*time.Hour),
		ForgotPasswordTokenTTL: getDurationEnv("FORGOT_PASSWORD_TOKEN_TTL", 7*24*time.Hour),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
		},

		UploadImageDir: getEnv("UPLOAD_IMAGE_DIR", "uploads/images"),
		UploadVideoDir: getEnv("UPLOAD_VIDEO_DIR", "uploads/videos"),

		PasswordPolicy: loadPasswordPolicy(),
	}

	// Each token purpose must have its own signing key so a token issued for
	// one purpose cannot be verified as another.
	for name, secret := range map[string]string{
		"JWT_ACCESS_SECRET":          cfg.JWTAccessSecret,
		"JWT_REFRESH_SECRET":         cfg.JWTRefreshSecret,
		"JWT_EMAIL_VERIFY_SECRET":    cfg.JWTEmailVerifySecret,
		"JWT_FORGOT_PASSWORD_SECRET": cfg.JWTForgotPasswordSecret,
	} {
		if secret == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func loadPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        getIntEnv("PASSWORD_MIN_LENGTH", 6),
		MaxLength:        getIntEnv("PASSWORD_MAX_LENGTH", 50),
		RequireUppercase: getBoolEnv("PASSWORD_REQUIRE_UPPERCASE", true),
		RequireLowercase: getBoolEnv("PASSWORD_REQUIRE_LOWERCASE", true),
		RequireNumber:    getBoolEnv("PASSWORD_REQUIRE_NUMBER", true),
		RequireSpecial:   getBoolEnv("PASSWORD_REQUIRE_SPECIAL", true),
	}
}
