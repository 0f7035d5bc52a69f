package service

import (
	"time"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType tags the purpose a token was signed for. Each purpose signs with
// its own secret and TTL, so a token issued for one purpose fails closed when
// verified as another.
type TokenType int

const (
	TokenTypeAccess TokenType = iota
	TokenTypeRefresh
	TokenTypeForgotPassword
	TokenTypeEmailVerify
)

type TokenClaims struct {
	UserID    string              `json:"user_id"`
	TokenType TokenType           `json:"token_type"`
	Verify    entity.VerifyStatus `json:"verify"`
	jwt.RegisteredClaims
}

type TokenService struct {
	cfg *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

func (s *TokenService) keyFor(purpose TokenType) (secret []byte, ttl time.Duration) {
	switch purpose {
	case TokenTypeRefresh:
		return []byte(s.cfg.JWTRefreshSecret), s.cfg.RefreshTokenTTL
	case TokenTypeForgotPassword:
		return []byte(s.cfg.JWTForgotPasswordSecret), s.cfg.ForgotPasswordTokenTTL
	case TokenTypeEmailVerify:
		return []byte(s.cfg.JWTEmailVerifySecret), s.cfg.EmailVerifyTokenTTL
	default:
		return []byte(s.cfg.JWTAccessSecret), s.cfg.AccessTokenTTL
	}
}

func (s *TokenService) Sign(userID string, verify entity.VerifyStatus, purpose TokenType) (string, error) {
	secret, ttl := s.keyFor(purpose)
	now := time.Now()

	claims := &TokenClaims{
		UserID:    userID,
		TokenType: purpose,
		Verify:    verify,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify checks the signature against the purpose's secret and that the
// embedded type tag matches the validator consuming it. Failures map to 401.
func (s *TokenService) Verify(tokenString string, purpose TokenType) (*TokenClaims, error) {
	secret, _ := s.keyFor(purpose)

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, apperror.Unauthorized(err.Error())
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, apperror.Unauthorized("invalid token")
	}
	if claims.TokenType != purpose {
		return nil, apperror.Unauthorized("invalid token")
	}

	return claims, nil
}
