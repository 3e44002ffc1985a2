package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

// SessionService mocks the session half of the OAuth service.
type SessionService struct {
	mock.Mock
}

func (m *SessionService) AuthorizationURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *SessionService) HandleCallback(ctx context.Context, code string, meta domain.ClientMeta) *domain.OAuthResult {
	args := m.Called(ctx, code, meta)
	return args.Get(0).(*domain.OAuthResult)
}

func (m *SessionService) ValidateSession(ctx context.Context, sessionToken string) bool {
	args := m.Called(ctx, sessionToken)
	return args.Bool(0)
}

func (m *SessionService) Logout(ctx context.Context, sessionToken string, reason domain.LogoutReason) bool {
	args := m.Called(ctx, sessionToken, reason)
	return args.Bool(0)
}

func (m *SessionService) LogoutAll(ctx context.Context, userID int64, reason domain.LogoutReason) int64 {
	args := m.Called(ctx, userID, reason)
	return args.Get(0).(int64)
}

func (m *SessionService) LoginHistory(ctx context.Context, userID int64, params domain.PaginationParams) domain.PaginatedResponse[domain.Session] {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Session])
}

func (m *SessionService) SessionStats(ctx context.Context, userID int64) *domain.SessionStats {
	args := m.Called(ctx, userID)
	return args.Get(0).(*domain.SessionStats)
}

func (m *SessionService) CleanupExpiredSessions(ctx context.Context) int64 {
	args := m.Called(ctx)
	return args.Get(0).(int64)
}
