package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/blog-api/internal/auth"
	"github.com/iliyamo/blog-api/internal/model"
)

// Context keys under which the gatekeeper stores what it resolved.
const (
	identityKey = "identity"
	rawTokenKey = "token"
)

// UserLoader resolves a token subject to a live user record.  The user
// repository satisfies it; tests substitute a stub.
type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Gatekeeper returns an Echo middleware that runs before every protected
// operation.  Per request it walks: bearer extraction -> token validation
// -> identity resolution against the users table -> identity attached to
// the request context.  Any failed step short-circuits with 401 and the
// corresponding message; business logic never sees token errors.  Handlers
// read the result via Identity(c) and RawToken(c).
func Gatekeeper(issuer *auth.Issuer, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			// Absence short-circuits before any crypto work.
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := issuer.Validate(c.Request().Context(), raw)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token has expired"})
				case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenRevoked):
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is invalid"})
				default:
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
				}
			}

			// The subject must still exist; a deleted user's tokens die with
			// the row even though their signature remains valid.
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token not found"})
			}

			c.Set(identityKey, auth.Identity{UserID: u.ID, Name: u.Name, Email: u.Email})
			c.Set(rawTokenKey, raw)
			return next(c)
		}
	}
}

// Identity returns the authenticated identity attached by the gatekeeper.
func Identity(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityKey).(auth.Identity)
	return id, ok
}

// RawToken returns the bearer token string the gatekeeper validated.
// Logout and refresh operate on it.
func RawToken(c echo.Context) string {
	raw, _ := c.Get(rawTokenKey).(string)
	return raw
}
