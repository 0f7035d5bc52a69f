package middleware

import (
	"strings"

	"github.com/chirper-app/chirper/app/apperror"
	"github.com/chirper-app/chirper/app/entity"
	"github.com/chirper-app/chirper/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const principalKey = "chirper.principal"

// Principal carries the authenticated caller for the rest of the request.
// Handlers read it through PrincipalFrom instead of poking echo's context
// map directly.
type Principal struct {
	UserID string
	Verify entity.VerifyStatus
}

func setPrincipal(c echo.Context, claims *service.TokenClaims) {
	c.Set(principalKey, &Principal{UserID: claims.UserID, Verify: claims.Verify})
}

// PrincipalFrom returns the authenticated caller, or nil when the request
// went through without a token (optional-auth routes).
func PrincipalFrom(c echo.Context) *Principal {
	p, _ := c.Get(principalKey).(*Principal)
	return p
}

type accessTokenVerifier interface {
	Verify(tokenString string, purpose service.TokenType) (*service.TokenClaims, error)
}

type AuthMiddleware struct {
	tokens accessTokenVerifier
}

func NewAuthMiddleware(tokens accessTokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAccessToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.claimsFromHeader(c)
		if err != nil {
			return err
		}
		if claims == nil {
			logrus.Debug("Missing authorization header")
			return apperror.Unauthorized("Access token is required")
		}

		setPrincipal(c, claims)
		return next(c)
	}
}

// OptionalAccessToken attaches a principal when a valid bearer token is
// present but lets anonymous requests through.
func (m *AuthMiddleware) OptionalAccessToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.claimsFromHeader(c)
		if err != nil {
			return err
		}
		if claims != nil {
			setPrincipal(c, claims)
		}
		return next(c)
	}
}

// RequireVerifiedUser must run after RequireAccessToken.
func (m *AuthMiddleware) RequireVerifiedUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := PrincipalFrom(c)
		if p == nil {
			return apperror.Unauthorized("Access token is required")
		}
		if p.Verify != entity.VerifyStatusVerified {
			return apperror.Forbidden("User not verified")
		}
		return next(c)
	}
}

func (m *AuthMiddleware) claimsFromHeader(c echo.Context) (*service.TokenClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logrus.Debug("Invalid authorization header format")
		return nil, apperror.Unauthorized("Access token is invalid")
	}

	claims, err := m.tokens.Verify(parts[1], service.TokenTypeAccess)
	if err != nil {
		logrus.Debug("Invalid or expired access token")
		return nil, err
	}
	return claims, nil
}
