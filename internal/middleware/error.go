package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"newshub/internal/domain"
	"newshub/internal/service/auth"
	"newshub/internal/service/news"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var sentinelStatus = []struct {
	err    error
	status int
	code   string
}{
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrInvalidToken, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrSessionInvalid, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrAccountDisabled, fiber.StatusForbidden, "ACCOUNT_DISABLED"},
	{news.ErrUploadsDisabled, fiber.StatusServiceUnavailable, "UPLOADS_DISABLED"},
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	var domainErr *domain.Error
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &domainErr):
		code = statusForKind(domainErr.Kind)
		message = domainErr.Message
		errorCode = domainErr.Kind.String()
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusUnprocessableEntity:
			errorCode = "VALIDATION_ERROR"
		}
	default:
		for _, s := range sentinelStatus {
			if errors.Is(err, s.err) {
				code, errorCode, message = s.status, s.code, s.err.Error()
				break
			}
		}
	}

	traceID := uuid.New().String()[:8]
	if code >= fiber.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed (trace %s): %v", c.Method(), c.Path(), traceID, err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Success: false,
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindAuthorization:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindBusinessRule:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
