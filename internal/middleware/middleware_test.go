package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	"newshub/internal/middleware"
	"newshub/internal/service/auth"
)

type stubAuthenticator map[string]*domain.Identity

func (s stubAuthenticator) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if identity, ok := s[token]; ok {
		return identity, nil
	}
	return nil, auth.ErrInvalidToken
}

func newApp() *fiber.App {
	authn := stubAuthenticator{
		"header-token": {UserID: 1, Name: "Header"},
		"cookie-token": {UserID: 2, Name: "Cookie"},
		"admin-token":  {UserID: 3, IsAdmin: true},
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(middleware.RequestInfo())
	app.Use(middleware.Identity(authn))

	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": middleware.CurrentUserID(c)})
	})
	app.Get("/private", middleware.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/admin", middleware.AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/meta", func(c *fiber.Ctx) error {
		return c.JSON(middleware.GetClientMeta(c))
	})
	app.Get("/fail/:kind", func(c *fiber.Ctx) error {
		switch c.Params("kind") {
		case "business":
			return domain.NewBusinessRuleError("you cannot follow yourself")
		case "notfound":
			return domain.NewNotFoundError("article 7 not found")
		case "login":
			return auth.ErrInvalidCredentials
		}
		return errors.New("boom")
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, req *http.Request) int64 {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		UserID int64 `json:"user_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.UserID
}

func TestIdentity_Precedence(t *testing.T) {
	app := newApp()

	t.Run("Bearer header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: "cookie-token"})

		assert.Equal(t, int64(1), whoami(t, app, req))
	})

	t.Run("Cookie is used without a header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: "cookie-token"})

		assert.Equal(t, int64(2), whoami(t, app, req))
	})

	t.Run("Invalid token is anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer nope")

		assert.Equal(t, int64(0), whoami(t, app, req))
	})
}

func TestAuthRequired(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAdminRequired(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRequestInfo_PrefersCloudflareHeader(t *testing.T) {
	app := newApp()
	req := httptest.NewRequest(http.MethodGet, "/meta", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var meta domain.ClientMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	assert.Equal(t, "203.0.113.7", meta.IPAddress)
	assert.Equal(t, "Mobile", meta.Device)
}

func TestErrorHandler(t *testing.T) {
	app := newApp()

	cases := []struct {
		kind   string
		status int
		code   string
	}{
		{"business", fiber.StatusUnprocessableEntity, "BUSINESS_RULE"},
		{"notfound", fiber.StatusNotFound, "NOT_FOUND"},
		{"login", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"other", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail/"+tc.kind, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}
