package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp builds a Fiber app backed by an in-memory database, a nil Redis
// client, and a temp upload directory.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:       "0",
		JWTSecret:  "test-secret-key",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
		UploadDir:  t.TempDir(),
		Env:        "test",
	}

	srv, err := New(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return app
}

func jsonRequest(t *testing.T, method, path string, body any, cookie *http.Cookie) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// multipartRequest builds a multipart request with text fields and an optional
// file in the "files" field.
func multipartRequest(t *testing.T, method, path string, fields map[string]string, filename string, fileContent []byte, cookie *http.Cookie) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("files", filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func registerUser(t *testing.T, app *fiber.App, username, password string) {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/register", fiber.Map{
		"username": username,
		"password": password,
	}, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// loginUser registers and logs the user in, returning the session cookie.
func loginUser(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()
	registerUser(t, app, username, password)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/login", fiber.Map{
		"username": username,
		"password": password,
	}, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("login response carries no session cookie")
	return nil
}

func createTestPost(t *testing.T, app *fiber.App, cookie *http.Cookie, title string) models.Post {
	t.Helper()
	resp, err := app.Test(multipartRequest(t, http.MethodPost, "/post/", map[string]string{
		"title":   title,
		"summary": "a summary",
		"content": "some content",
	}, "", nil, cookie))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeJSON(t, resp, &post)
	require.NotZero(t, post.ID)
	return post
}
