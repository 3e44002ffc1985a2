package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"newshub/internal/config"
	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/auth"
)

const providerGoogle = "google"

// Failure codes used when the provider did not supply its own.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeExchangeFailed   = "token_exchange_failed"
	CodeUserInfoFailed   = "userinfo_failed"
	CodeInvalidUserInfo  = "invalid_userinfo"
	CodeUserError        = "user_error"
	CodeAccountDisabled  = "account_disabled"
	CodeTokenPersistence = "token_persist_failed"
	CodeSessionError     = "session_error"
	CodeJWTError         = "jwt_error"
	CodeInternal         = "internal_error"
)

// Service runs the Google authorization-code flow and owns the session
// lifecycle. None of its methods return Go errors.
type Service interface {
	AuthorizationURL(state string) string
	HandleCallback(ctx context.Context, code string, meta domain.ClientMeta) *domain.OAuthResult
	ValidateSession(ctx context.Context, sessionToken string) bool
	Logout(ctx context.Context, sessionToken string, reason domain.LogoutReason) bool
	LogoutAll(ctx context.Context, userID int64, reason domain.LogoutReason) int64
	LoginHistory(ctx context.Context, userID int64, params domain.PaginationParams) domain.PaginatedResponse[domain.Session]
	SessionStats(ctx context.Context, userID int64) *domain.SessionStats
	CleanupExpiredSessions(ctx context.Context) int64
}

type service struct {
	oauthCfg    *oauth2.Config
	userInfoURL string
	userRepo    repository.UserRepository
	tokenRepo   repository.OAuthTokenRepository
	sessionRepo repository.SessionRepository
	authSvc     auth.Service
}

func NewService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	tokenRepo repository.OAuthTokenRepository,
	sessionRepo repository.SessionRepository,
	authSvc auth.Service,
) Service {
	endpoint := endpoints.Google
	if cfg.GoogleAuthURL != "" {
		endpoint.AuthURL = cfg.GoogleAuthURL
	}
	if cfg.GoogleTokenURL != "" {
		endpoint.TokenURL = cfg.GoogleTokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &service{
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoint,
		},
		userInfoURL: cfg.GoogleUserInfoURL,
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		sessionRepo: sessionRepo,
		authSvc:     authSvc,
	}
}

func (s *service) AuthorizationURL(state string) string {
	return s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *service) HandleCallback(ctx context.Context, code string, meta domain.ClientMeta) (result *domain.OAuthResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[OAuth] callback panicked: %v", r)
			result = domain.OAuthFailure(CodeInternal, "unexpected error during sign-in")
		}
	}()

	if strings.TrimSpace(code) == "" {
		return domain.OAuthFailure(CodeInvalidRequest, "authorization code is missing")
	}

	token, failure := s.exchange(ctx, code)
	if failure != nil {
		return failure
	}

	info, failure := s.fetchUserInfo(ctx, token)
	if failure != nil {
		return failure
	}

	user, isNew, err := s.findOrCreateUser(ctx, info)
	if err != nil {
		log.Printf("[OAuth] user lookup for %s failed: %v", info.Email, err)
		return domain.OAuthFailure(CodeUserError, "could not load or create the local account")
	}
	if !user.CanSignIn() {
		return domain.OAuthFailure(CodeAccountDisabled, "this account has been suspended")
	}

	if err := s.tokenRepo.Save(ctx, toStoredToken(user.ID, token)); err != nil {
		log.Printf("[OAuth] saving provider tokens for user %d failed: %v", user.ID, err)
		return domain.OAuthFailure(CodeTokenPersistence, "could not store provider tokens")
	}

	session, err := s.authSvc.CreateSession(ctx, user.ID, meta)
	if err != nil {
		log.Printf("[OAuth] session for user %d failed: %v", user.ID, err)
		return domain.OAuthFailure(CodeSessionError, "could not create a session")
	}

	jwtToken, expiresAt, err := s.authSvc.MintToken(user, session)
	if err != nil {
		log.Printf("[OAuth] token for user %d failed: %v", user.ID, err)
		return domain.OAuthFailure(CodeJWTError, "could not issue an access token")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("[OAuth] failed to update last login for user %d: %v", user.ID, err)
	}

	return &domain.OAuthResult{
		Success: true,
		Auth: &domain.AuthResult{
			User:      user,
			Token:     jwtToken,
			ExpiresAt: expiresAt,
			IsNewUser: isNew,
		},
	}
}

func (s *service) exchange(ctx context.Context, code string) (*oauth2.Token, *domain.OAuthResult) {
	token, err := s.oauthCfg.Exchange(ctx, code)
	if err == nil {
		return token, nil
	}

	log.Printf("[OAuth] code exchange failed: %v", err)
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode != "" {
		return nil, domain.OAuthFailure(retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
	}
	return nil, domain.OAuthFailure(CodeExchangeFailed, err.Error())
}

func (s *service) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, *domain.OAuthResult) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, domain.OAuthFailure(CodeUserInfoFailed, err.Error())
	}

	resp, err := s.oauthCfg.Client(ctx, token).Do(req)
	if err != nil {
		log.Printf("[OAuth] userinfo request failed: %v", err)
		return nil, domain.OAuthFailure(CodeUserInfoFailed, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, domain.OAuthFailure(CodeUserInfoFailed, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var providerErr struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if json.Unmarshal(body, &providerErr) == nil && providerErr.Error != "" {
			return nil, domain.OAuthFailure(providerErr.Error, providerErr.ErrorDescription)
		}
		return nil, domain.OAuthFailure(CodeUserInfoFailed, fmt.Sprintf("userinfo endpoint returned status %d", resp.StatusCode))
	}

	var info domain.GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, domain.OAuthFailure(CodeInvalidUserInfo, "userinfo payload is not valid JSON")
	}
	if info.ID == "" || info.Email == "" {
		return nil, domain.OAuthFailure(CodeInvalidUserInfo, "userinfo payload is missing id or email")
	}
	return &info, nil
}

func (s *service) findOrCreateUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, bool, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	picture := optional(info.Picture)

	user, err = s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		if err := s.userRepo.LinkGoogleAccount(ctx, user.ID, info.ID, picture); err != nil {
			return nil, false, err
		}
		user.GoogleID = &info.ID
		if user.ProfileImage == nil {
			user.ProfileImage = picture
		}
		return user, false, nil
	}

	name := info.Name
	if name == "" {
		name = strings.Split(info.Email, "@")[0]
	}
	user = &domain.User{
		Name:         name,
		Email:        info.Email,
		GoogleID:     &info.ID,
		ProfileImage: picture,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *service) ValidateSession(ctx context.Context, sessionToken string) bool {
	if _, err := s.authSvc.ValidateSession(ctx, sessionToken); err != nil {
		if !errors.Is(err, auth.ErrSessionInvalid) {
			log.Printf("[OAuth] session validation failed: %v", err)
		}
		return false
	}
	return true
}

func (s *service) Logout(ctx context.Context, sessionToken string, reason domain.LogoutReason) bool {
	if !reason.IsValid() {
		reason = domain.LogoutManual
	}

	ended, err := s.sessionRepo.End(ctx, sessionToken, reason)
	if err != nil {
		log.Printf("[OAuth] logout failed: %v", err)
		return false
	}
	return ended
}

func (s *service) LogoutAll(ctx context.Context, userID int64, reason domain.LogoutReason) int64 {
	if !reason.IsValid() {
		reason = domain.LogoutManual
	}

	count, err := s.sessionRepo.EndAllForUser(ctx, userID, reason)
	if err != nil {
		log.Printf("[OAuth] ending sessions for user %d failed: %v", userID, err)
		return 0
	}
	return count
}

func (s *service) LoginHistory(ctx context.Context, userID int64, params domain.PaginationParams) domain.PaginatedResponse[domain.Session] {
	params.Validate()
	sessions, total, err := s.sessionRepo.ListByUser(ctx, userID, params)
	if err != nil {
		log.Printf("[OAuth] login history for user %d failed: %v", userID, err)
		return domain.EmptyPage[domain.Session](params)
	}
	return domain.NewPaginatedResponse(sessions, params.Page, params.PageSize, total)
}

func (s *service) SessionStats(ctx context.Context, userID int64) *domain.SessionStats {
	stats, err := s.sessionRepo.Stats(ctx, userID)
	if err != nil || stats == nil {
		if err != nil {
			log.Printf("[OAuth] session stats for user %d failed: %v", userID, err)
		}
		return &domain.SessionStats{}
	}
	return stats
}

func (s *service) CleanupExpiredSessions(ctx context.Context) int64 {
	count, err := s.sessionRepo.ExpireStale(ctx)
	if err != nil {
		log.Printf("[OAuth] expired session cleanup failed: %v", err)
		return 0
	}
	if count > 0 {
		log.Printf("[OAuth] marked %d expired sessions inactive", count)
	}
	return count
}

func toStoredToken(userID int64, token *oauth2.Token) *domain.OAuthToken {
	stored := &domain.OAuthToken{
		UserID:       userID,
		Provider:     providerGoogle,
		AccessToken:  token.AccessToken,
		RefreshToken: optional(token.RefreshToken),
		TokenType:    token.Type(),
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC().Truncate(time.Second)
		stored.ExpiresAt = &expiry
	}
	if scope, ok := token.Extra("scope").(string); ok {
		stored.Scope = optional(scope)
	}
	return stored
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
