package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/domain"
)

const ClientMetaContextKey = "client_meta"

// RequestInfo records the real client address (Cloudflare first) and user agent.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userAgent := c.Get(fiber.HeaderUserAgent)
		c.Locals(ClientMetaContextKey, domain.ClientMeta{
			IPAddress: clientIP(c),
			UserAgent: userAgent,
			Device:    deviceFromUserAgent(userAgent),
		})
		return c.Next()
	}
}

func GetClientMeta(c *fiber.Ctx) domain.ClientMeta {
	meta, ok := c.Locals(ClientMetaContextKey).(domain.ClientMeta)
	if !ok {
		return domain.ClientMeta{IPAddress: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
	}
	return meta
}

func clientIP(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	return c.IP()
}

func deviceFromUserAgent(ua string) string {
	lower := strings.ToLower(ua)
	switch {
	case lower == "":
		return "Unknown"
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		return "Tablet"
	case strings.Contains(lower, "mobile") || strings.Contains(lower, "android") || strings.Contains(lower, "iphone"):
		return "Mobile"
	default:
		return "Desktop"
	}
}
