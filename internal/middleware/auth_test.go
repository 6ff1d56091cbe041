package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestApp(codec *auth.TokenCodec) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireAuth(codec), func(c *fiber.Ctx) error {
		ident, ok := Identity(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(ident)
	})
	return app
}

func TestRequireAuthMissingCookie(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret-key", time.Hour)
	app := authTestApp(codec)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRequireAuthBadToken(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret-key", time.Hour)
	app := authTestApp(codec)

	expiredCodec := auth.NewTokenCodec("test-secret-key", -time.Minute)
	expired, err := expiredCodec.Issue(1, "alice")
	require.NoError(t, err)

	// Present but failing tokens all map to 403, regardless of the reason.
	for name, value := range map[string]string{
		"garbage": "not-a-token",
		"expired": expired,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: value})

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestRequireAuthStoresIdentity(t *testing.T) {
	codec := auth.NewTokenCodec("test-secret-key", time.Hour)
	app := authTestApp(codec)

	token, err := codec.Issue(42, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
