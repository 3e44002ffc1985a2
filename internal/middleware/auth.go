package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/domain"
)

const (
	IdentityContextKey = "identity"
	TokenCookieName    = "jwtToken"
)

// Authenticator resolves a raw token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// Identity resolves the caller once per request. The bearer header wins over
// the cookie; the first token found is the only one tried. Requests without a
// valid token continue anonymously.
func Identity(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := requestToken(c)
		if token == "" {
			return c.Next()
		}

		identity, err := authn.Authenticate(c.UserContext(), token)
		if err == nil && identity != nil {
			c.Locals(IdentityContextKey, identity)
		}
		return c.Next()
	}
}

func requestToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(TokenCookieName)
}

func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentIdentity(c) == nil {
			return Unauthorized("Authentication required")
		}
		return c.Next()
	}
}

// CurrentIdentity returns the resolved caller, or nil for anonymous requests.
func CurrentIdentity(c *fiber.Ctx) *domain.Identity {
	identity, ok := c.Locals(IdentityContextKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

// CurrentUserID returns 0 for anonymous requests.
func CurrentUserID(c *fiber.Ctx) int64 {
	if identity := CurrentIdentity(c); identity != nil {
		return identity.UserID
	}
	return 0
}
