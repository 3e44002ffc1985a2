package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notifService.List(c.Context(), identity.UserID, unreadOnly, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NotificationHandler) GetSummary(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	summary, err := h.notifService.GetSummary(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return ok(c, summary)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	notifID, err := paramID(c, "id", "notification")
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAsRead(c.Context(), notifID, identity.UserID)
	if err != nil {
		return err
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Notification not found",
		})
	}
	return okMessage(c, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.MarkAllAsRead(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return okMessage(c, "All notifications marked as read", fiber.Map{"updated": count})
}
