package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
	"newshub/internal/service/auth"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput, meta domain.ClientMeta) (*domain.AuthResult, error) {
	args := m.Called(ctx, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *AuthService) IssueToken(ctx context.Context, user *domain.User, meta domain.ClientMeta) (*domain.AuthResult, error) {
	args := m.Called(ctx, user, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *AuthService) CreateSession(ctx context.Context, userID int64, meta domain.ClientMeta) (*domain.Session, error) {
	args := m.Called(ctx, userID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *AuthService) MintToken(user *domain.User, session *domain.Session) (string, time.Time, error) {
	args := m.Called(user, session)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *AuthService) ValidateSession(ctx context.Context, sessionToken string) (*domain.Session, error) {
	args := m.Called(ctx, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.Identity, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *AuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}
