package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/domain"
	"newshub/internal/middleware"
	"newshub/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	articleID, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.commentService.Create(c.Context(), articleID, identity.UserID, input)
	if err != nil {
		return err
	}
	return created(c, result)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	articleID, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	result, err := h.commentService.ListByArticle(c.Context(), articleID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	var input domain.UpdateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.commentService.Update(c.Context(), identity.UserID, commentID, input)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Context(), identity, commentID); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *CommentHandler) ToggleLike(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	result, err := h.commentService.ToggleLike(c.Context(), commentID, identity.UserID)
	if err != nil {
		return err
	}
	return ok(c, result)
}
