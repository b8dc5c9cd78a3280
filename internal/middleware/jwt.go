package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/user-account-service/internal/utils" // token parsing helpers
)

// accessCookieName is the cookie the login handler sets alongside the JSON
// token payload.  The middleware accepts either delivery mechanism.
const accessCookieName = "accessToken"

// JWTAuth returns an Echo middleware that validates an access token taken
// from the accessToken cookie or, failing that, the Authorization header
// ("Bearer <token>").  On success the token's subject and role claims are
// injected into the request context under "user_id" and "role" so that
// handlers and downstream middleware can read them via c.Get().  On any
// failure the request is rejected with 401 and no downstream handler runs.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			// Prefer the cookie; browsers hold the session there after login.
			if ck, err := c.Cookie(accessCookieName); err == nil && ck.Value != "" {
				raw = ck.Value
			}
			// Fall back to a Bearer token for API clients.
			if raw == "" {
				auth := c.Request().Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					raw = strings.TrimPrefix(auth, "Bearer ")
				}
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing access token"})
			}

			userID, role, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", userID)
			c.Set("role", role)
			return next(c)
		}
	}
}
