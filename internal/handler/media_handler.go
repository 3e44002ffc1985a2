package handler

import (
	"github.com/gofiber/fiber/v2"

	"newshub/internal/middleware"
	"newshub/internal/service/media"
	"newshub/internal/service/news"
)

type MediaHandler struct {
	newsService news.Service
}

func NewMediaHandler(newsService news.Service) *MediaHandler {
	return &MediaHandler{newsService: newsService}
}

func (h *MediaHandler) UploadImage(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	if file.Size > media.MaxImageSize {
		return middleware.BadRequest("File size must be less than 5MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	image, err := h.newsService.UploadImage(c.Context(), identity.UserID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		return err
	}
	return created(c, image)
}
