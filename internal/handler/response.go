package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/domain"
	"newshub/internal/middleware"
)

func ok(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func okMessage(c *fiber.Ctx, message string, data any) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func paramID(c *fiber.Ctx, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

// currentIdentity is only called behind AuthRequired.
func currentIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return domain.Identity{}, middleware.Unauthorized("Authentication required")
	}
	return *identity, nil
}
