package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/domain"
	"newshub/internal/middleware"
	"newshub/internal/service/block"
	"newshub/internal/service/repost"
	"newshub/internal/service/user"
)

type UserHandler struct {
	userService   user.Service
	blockService  block.Service
	repostService repost.Service
}

func NewUserHandler(userService user.Service, blockService block.Service, repostService repost.Service) *UserHandler {
	return &UserHandler{
		userService:   userService,
		blockService:  blockService,
		repostService: repostService,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		return err
	}
	return ok(c, profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), identity.UserID, input)
	if err != nil {
		return err
	}
	return ok(c, updated)
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	result, err := h.userService.Search(c.Context(), c.Query("q"), getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *UserHandler) ToggleFollow(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	result, err := h.userService.ToggleFollow(c.Context(), identity.UserID, id)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *UserHandler) ListFollowers(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	result, err := h.userService.ListFollowers(c.Context(), id, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *UserHandler) ListFollowing(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	result, err := h.userService.ListFollowing(c.Context(), id, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *UserHandler) ListReposts(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	result, err := h.repostService.ListByUser(c.Context(), id, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *UserHandler) Block(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.blockService.Block(c.Context(), identity.UserID, id); err != nil {
		return err
	}
	return okMessage(c, "User blocked", nil)
}

func (h *UserHandler) Unblock(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	removed, err := h.blockService.Unblock(c.Context(), identity.UserID, id)
	if err != nil {
		return err
	}
	if !removed {
		return middleware.NotFound("User is not blocked")
	}
	return okMessage(c, "User unblocked", nil)
}

func (h *UserHandler) ListBlocked(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	blocks, err := h.blockService.ListBlocked(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return ok(c, blocks)
}
