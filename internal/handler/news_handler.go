package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/domain"
	"newshub/internal/middleware"
	"newshub/internal/service/news"
	"newshub/internal/service/repost"
	"newshub/internal/service/trending"
)

type NewsHandler struct {
	newsService     news.Service
	repostService   repost.Service
	trendingService trending.Service
}

func NewNewsHandler(newsService news.Service, repostService repost.Service, trendingService trending.Service) *NewsHandler {
	return &NewsHandler{
		newsService:     newsService,
		repostService:   repostService,
		trendingService: trendingService,
	}
}

func (h *NewsHandler) List(c *fiber.Ctx) error {
	result, err := h.newsService.List(c.Context(), c.Query("category"), getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) Search(c *fiber.Ctx) error {
	result, err := h.newsService.Search(c.Context(), c.Query("q"), getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) Feed(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.newsService.Feed(c.Context(), identity.UserID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) Trending(c *fiber.Ctx) error {
	topics, err := h.trendingService.Top(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return ok(c, topics)
}

func (h *NewsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	article, err := h.newsService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return ok(c, article)
}

func (h *NewsHandler) ListByAuthor(c *fiber.Ctx) error {
	authorID, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	result, err := h.newsService.ListByAuthor(c.Context(), authorID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.CreateArticleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	article, err := h.newsService.Create(c.Context(), identity.UserID, input)
	if err != nil {
		return err
	}
	return created(c, article)
}

func (h *NewsHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	var input domain.UpdateArticleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	article, err := h.newsService.Update(c.Context(), identity, id, input)
	if err != nil {
		return err
	}
	return ok(c, article)
}

func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	if err := h.newsService.Delete(c.Context(), identity, id); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NewsHandler) ToggleLike(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	result, err := h.newsService.ToggleLike(c.Context(), id, identity.UserID)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) ToggleSave(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	result, err := h.newsService.ToggleSave(c.Context(), id, identity.UserID)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) ListSaved(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.newsService.ListSaved(c.Context(), identity.UserID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) Repost(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	var input domain.RepostInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	result, err := h.repostService.Toggle(c.Context(), id, identity.UserID, input)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (h *NewsHandler) Report(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "article")
	if err != nil {
		return err
	}

	var input domain.CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	report, err := h.newsService.Report(c.Context(), id, identity.UserID, input)
	if err != nil {
		return err
	}
	return created(c, report)
}
