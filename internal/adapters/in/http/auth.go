package http

import (
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	claimsContextKey = "authClaims"
	tokenTTL         = 24 * time.Hour
)

// Claims carries the authenticated account identity inside the JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for an authenticated account.
func GenerateToken(secret []byte, userID kernel.UUID, role account.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// AuthRequired validates the bearer token and stores its claims on the
// request context.
func AuthRequired(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "authorization header required",
				})
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, "Bearer "), claims,
				func(*jwt.Token) (interface{}, error) { return secret, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid or expired token",
				})
			}

			ctx.Set(claimsContextKey, claims)
			return next(ctx)
		}
	}
}

// RoleRequired rejects callers whose token carries a different role.
// Must run after AuthRequired.
func RoleRequired(role account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, ok := ctx.Get(claimsContextKey).(*Claims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "authentication required",
				})
			}

			if claims.Role != role.String() {
				return ctx.JSON(http.StatusForbidden, errorResponse{
					Code:    http.StatusForbidden,
					Message: "access restricted to " + role.String() + " accounts",
				})
			}

			return next(ctx)
		}
	}
}

// callerID extracts the authenticated account identifier from the context.
func callerID(ctx echo.Context) (kernel.UUID, error) {
	claims, ok := ctx.Get(claimsContextKey).(*Claims)
	if !ok {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return kernel.UUIDFromString(claims.UserID)
}
