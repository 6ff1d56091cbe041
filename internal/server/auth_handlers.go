package server

import (
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// sessionCookieMaxAge is the fixed lifetime of the session cookie. The token
// inside carries its own expiry from config; the cookie contract is 24h.
const sessionCookieMaxAge = 24 * time.Hour

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	existing, err := s.users.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Username already exists"))
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Password: digest,
	}
	if err := s.users.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Public profile only; the hash never leaves the credential store.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Login handles POST /auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.users.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	// Absent user and wrong password produce the same generic error so the
	// response does not leak which check failed.
	if user == nil || !s.hasher.Verify(req.Password, user.Password) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	s.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Profile handles GET /auth/profile. An absent or failing token resolves to
// an error body with status 200, not 401; this endpoint reports identity, it
// does not gate anything.
func (s *Server) Profile(c *fiber.Ctx) error {
	tokenString := c.Cookies(middleware.SessionCookie)
	if tokenString == "" {
		return c.JSON(fiber.Map{"error": "login required"})
	}

	ident, err := s.codec.Verify(tokenString)
	if err != nil {
		return c.JSON(fiber.Map{"error": "login required"})
	}

	return c.JSON(ident)
}

// Logout handles POST /auth/logout. It only clears the client-held cookie;
// the token itself stays valid until its natural expiry.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		Expires:  time.Now().Add(sessionCookieMaxAge),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour), // past expiry deletes the cookie
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
