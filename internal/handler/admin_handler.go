package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/domain"
	"newshub/internal/middleware"
	"newshub/internal/service/admin"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.adminService.GetStats(c.Context(), identity)
	if err != nil {
		return err
	}
	return ok(c, stats)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.adminService.ListUsers(c.Context(), identity, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	var input domain.BanUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.adminService.BanUser(c.Context(), identity, id, input); err != nil {
		return err
	}
	return okMessage(c, "User banned", nil)
}

func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.adminService.UnbanUser(c.Context(), identity, id); err != nil {
		return err
	}
	return okMessage(c, "User unbanned", nil)
}

func (h *AdminHandler) DeleteArticle(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	var input domain.ModerationInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	if err := h.adminService.DeleteArticle(c.Context(), identity, id, input); err != nil {
		return err
	}
	return okMessage(c, "Article removed", nil)
}

func (h *AdminHandler) SendMessage(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.AdminMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	notifID, err := h.adminService.SendMessage(c.Context(), identity, input)
	if err != nil {
		return err
	}
	return created(c, fiber.Map{"notification_id": notifID})
}

func (h *AdminHandler) Broadcast(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.BroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sent, err := h.adminService.Broadcast(c.Context(), identity, input)
	if err != nil {
		return err
	}
	return okMessage(c, "Broadcast sent", fiber.Map{"recipients": sent})
}

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	status := domain.ReportStatus(c.Query("status", string(domain.ReportPending)))

	result, err := h.adminService.ListReports(c.Context(), identity, status, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *AdminHandler) ResolveReport(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "report")
	if err != nil {
		return err
	}

	var input domain.ResolveReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.adminService.ResolveReport(c.Context(), identity, id, input); err != nil {
		return err
	}
	return okMessage(c, "Report reviewed", nil)
}

type newsSyncRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *AdminHandler) GetNewsSync(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	enabled, err := h.adminService.GetNewsSyncEnabled(c.Context(), identity)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"enabled": enabled})
}

func (h *AdminHandler) SetNewsSync(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req newsSyncRequest
	if err := c.BodyParser(&req); err != nil || req.Enabled == nil {
		return middleware.BadRequest("enabled is required")
	}

	if err := h.adminService.SetNewsSyncEnabled(c.Context(), identity, *req.Enabled); err != nil {
		return err
	}
	return ok(c, fiber.Map{"enabled": *req.Enabled})
}

func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.adminService.ListAuditLogs(c.Context(), identity, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}
