package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"diversity-shop/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// JWTIdentity parses an optional Bearer token and stores the resulting
// identity on the request. Requests without a token proceed as anonymous;
// a present but invalid token is rejected outright.
func JWTIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				c.Set(identityContextKey, model.Anonymous())
				return next(c)
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(identityContextKey, model.Authenticated(subject))
			return next(c)
		}
	}
}

// Identity returns the identity stored by JWTIdentity, anonymous when absent.
func Identity(c echo.Context) model.Identity {
	if id, ok := c.Get(identityContextKey).(model.Identity); ok {
		return id
	}
	return model.Anonymous()
}

// RequireAuth rejects anonymous requests.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Identity(c).IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			return next(c)
		}
	}
}
