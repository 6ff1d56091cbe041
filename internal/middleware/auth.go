// Package middleware provides the auth gateway, request logging, and rate
// limiting middleware.
package middleware

import (
	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

// identityKey is the locals key the authenticated identity is stored under.
const identityKey = "identity"

// RequireAuth enforces a valid session token cookie. A missing cookie is
// rejected with 401; a present but failing token (expired, tampered,
// malformed) with 403. On success the identity is stored in request locals.
func RequireAuth(codec *auth.TokenCodec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("login required"))
		}

		ident, err := codec.Verify(tokenString)
		if err != nil {
			// Verification failures are swallowed here; the reason is never
			// propagated past the gateway.
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("invalid or expired token"))
		}

		c.Locals(identityKey, ident)
		return c.Next()
	}
}

// Identity returns the authenticated identity stored by RequireAuth.
func Identity(c *fiber.Ctx) (auth.Identity, bool) {
	ident, ok := c.Locals(identityKey).(auth.Identity)
	return ident, ok
}
