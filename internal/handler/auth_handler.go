package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"newshub/internal/config"
	"newshub/internal/domain"
	"newshub/internal/middleware"
	"newshub/internal/service/auth"
	"newshub/internal/service/oauth"
	"newshub/internal/service/user"
)

const oauthStateCookie = "oauthState"

type AuthHandler struct {
	authService  auth.Service
	oauthService oauth.Service
	userService  user.Service
	cfg          *config.Config
}

func NewAuthHandler(authService auth.Service, oauthService oauth.Service, userService user.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		userService:  userService,
		cfg:          cfg,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.userService.Register(c.Context(), input, middleware.GetClientMeta(c))
	if err != nil {
		return err
	}

	h.setTokenCookie(c, result.Token, result.ExpiresAt)
	return created(c, result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), input, middleware.GetClientMeta(c))
	if err != nil {
		return err
	}

	h.setTokenCookie(c, result.Token, result.ExpiresAt)
	return ok(c, result)
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.Environment == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.oauthService.AuthorizationURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if providerErr := c.Query("error"); providerErr != "" {
		return oauthFailure(c, domain.OAuthFailure(providerErr, c.Query("error_description")))
	}

	expected := c.Cookies(oauthStateCookie)
	c.ClearCookie(oauthStateCookie)
	if expected == "" || c.Query("state") != expected {
		return oauthFailure(c, domain.OAuthFailure(oauth.CodeInvalidRequest, "state mismatch"))
	}

	result := h.oauthService.HandleCallback(c.Context(), c.Query("code"), middleware.GetClientMeta(c))
	if !result.Success {
		return oauthFailure(c, result)
	}

	h.setTokenCookie(c, result.Auth.Token, result.Auth.ExpiresAt)
	return ok(c, result.Auth)
}

func oauthFailure(c *fiber.Ctx, result *domain.OAuthResult) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success":           false,
		"code":              result.ErrorCode,
		"message":           result.ErrorDescription,
		"error":             result.ErrorCode,
		"error_description": result.ErrorDescription,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	h.oauthService.Logout(c.Context(), identity.SessionToken, domain.LogoutManual)
	c.ClearCookie(middleware.TokenCookieName)
	return okMessage(c, "Logged out", nil)
}

func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	ended := h.oauthService.LogoutAll(c.Context(), identity.UserID, domain.LogoutManual)
	c.ClearCookie(middleware.TokenCookieName)
	return okMessage(c, "Logged out of all sessions", fiber.Map{"sessions_ended": ended})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Context(), identity.UserID, identity.UserID)
	if err != nil {
		return err
	}
	return ok(c, profile)
}

func (h *AuthHandler) LoginHistory(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return ok(c, h.oauthService.LoginHistory(c.Context(), identity.UserID, getPaginationParams(c)))
}

func (h *AuthHandler) SessionStats(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return ok(c, h.oauthService.SessionStats(c.Context(), identity.UserID))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var input domain.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.ChangePassword(c.Context(), identity.UserID, input); err != nil {
		return err
	}
	c.ClearCookie(middleware.TokenCookieName)
	return okMessage(c, "Password changed. Please sign in again.", nil)
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.Environment == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
