package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	"newshub/internal/handler"
	"newshub/internal/middleware"
	"newshub/internal/service/auth"
	"newshub/internal/service/mocks"
)

type tokenTable map[string]*domain.Identity

func (t tokenTable) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if identity, ok := t[token]; ok {
		return identity, nil
	}
	return nil, auth.ErrInvalidToken
}

func newNotificationApp(notifSvc *mocks.NotificationService) *fiber.App {
	h := handler.NewNotificationHandler(notifSvc)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(middleware.Identity(tokenTable{"alice": {UserID: 42, Name: "Alice"}}))

	notifications := app.Group("/notifications", middleware.AuthRequired())
	notifications.Get("/", h.List)
	notifications.Get("/unread-count", h.GetUnreadCount)
	notifications.Put("/read-all", h.MarkAllAsRead)
	notifications.Put("/:id/read", h.MarkAsRead)
	return app
}

func authed(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer alice")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestNotificationHandler_RequiresAuth(t *testing.T) {
	notifSvc := new(mocks.NotificationService)
	app := newNotificationApp(notifSvc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	notifSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationHandler_List(t *testing.T) {
	notifSvc := new(mocks.NotificationService)
	app := newNotificationApp(notifSvc)

	params := domain.PaginationParams{Page: 2, PageSize: 5}
	page := domain.NewPaginatedResponse([]domain.Notification{{ID: 9, UserID: 42}}, 2, 5, 6)
	notifSvc.On("List", mock.Anything, int64(42), true, params).Return(page, nil)

	resp, err := app.Test(authed(http.MethodGet, "/notifications?unread_only=true&page=2&page_size=5"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 6, data["total_items"])
	notifSvc.AssertExpectations(t)
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	notifSvc := new(mocks.NotificationService)
	app := newNotificationApp(notifSvc)
	notifSvc.On("GetUnreadCount", mock.Anything, int64(42)).Return(int64(3), nil)

	resp, err := app.Test(authed(http.MethodGet, "/notifications/unread-count"))
	require.NoError(t, err)

	body := decode(t, resp)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 3, data["count"])
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		notifSvc := new(mocks.NotificationService)
		app := newNotificationApp(notifSvc)
		notifSvc.On("MarkAsRead", mock.Anything, int64(9), int64(42)).Return(true, nil)

		resp, err := app.Test(authed(http.MethodPut, "/notifications/9/read"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("not the recipient", func(t *testing.T) {
		notifSvc := new(mocks.NotificationService)
		app := newNotificationApp(notifSvc)
		notifSvc.On("MarkAsRead", mock.Anything, int64(9), int64(42)).Return(false, nil)

		resp, err := app.Test(authed(http.MethodPut, "/notifications/9/read"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad id", func(t *testing.T) {
		notifSvc := new(mocks.NotificationService)
		app := newNotificationApp(notifSvc)

		resp, err := app.Test(authed(http.MethodPut, "/notifications/abc/read"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		notifSvc.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationHandler_MarkAllAsRead(t *testing.T) {
	notifSvc := new(mocks.NotificationService)
	app := newNotificationApp(notifSvc)
	notifSvc.On("MarkAllAsRead", mock.Anything, int64(42)).Return(int64(4), nil)

	resp, err := app.Test(authed(http.MethodPut, "/notifications/read-all"))
	require.NoError(t, err)

	body := decode(t, resp)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 4, data["updated"])
}
