package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenKeyFromHeader extracts the token key from an Authorization header of
// the form "Token <key>". It returns "" when the header is absent or not in
// the token scheme.
func TokenKeyFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "token") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// TokenAuthMiddleware authenticates requests bearing "Authorization: Token
// <key>" headers against the store and places the resolved Identity on the
// request context. Requests matched by skipper pass through unauthenticated.
func TokenAuthMiddleware(store TokenStore, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			key := TokenKeyFromHeader(header)
			if key == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			ident, err := store.Introspect(c.Request().Context(), key)
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "token lookup failed")
			}

			ctx := WithIdentity(c.Request().Context(), *ident)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// PublicPathSkipper returns a skipper that bypasses authentication for the
// given path prefixes (login, health checks).
func PublicPathSkipper(prefixes ...string) func(echo.Context) bool {
	return func(c echo.Context) bool {
		path := c.Request().URL.Path
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}
}
