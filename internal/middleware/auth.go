package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/AchintyaNigam/my-rail/internal/service"
)

const ClaimsKey = "claims"

type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's claims under ClaimsKey.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidToken.Error())
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
