package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newshub/internal/config"
	"newshub/internal/domain"
	"newshub/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionInvalid     = errors.New("session is no longer active")
	ErrAccountDisabled    = errors.New("account is disabled")
)

type Service interface {
	Login(ctx context.Context, input domain.LoginInput, meta domain.ClientMeta) (*domain.AuthResult, error)
	// IssueToken opens a session for the user and mints a JWT bound to it.
	IssueToken(ctx context.Context, user *domain.User, meta domain.ClientMeta) (*domain.AuthResult, error)
	CreateSession(ctx context.Context, userID int64, meta domain.ClientMeta) (*domain.Session, error)
	MintToken(user *domain.User, session *domain.Session) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
	ValidateSession(ctx context.Context, sessionToken string) (*domain.Session, error)
	// Authenticate validates the JWT and then the session it names.
	Authenticate(ctx context.Context, tokenString string) (*domain.Identity, error)
	HashPassword(password string) (string, error)
}

// Claims carries the persisted JWT contract. Booleans are stringified.
type Claims struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsAdmin      string `json:"isAdmin"`
	IsGoogleUser string `json:"isGoogleUser"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() *domain.Identity {
	isAdmin, _ := strconv.ParseBool(c.IsAdmin)
	isGoogle, _ := strconv.ParseBool(c.IsGoogleUser)
	return &domain.Identity{
		UserID:       c.ID,
		Email:        c.Email,
		Name:         c.Name,
		IsAdmin:      isAdmin,
		IsGoogleUser: isGoogle,
		SessionToken: c.RegisteredClaims.ID,
	}
}

type service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	now         func() time.Time
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) Service {
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *service) Login(ctx context.Context, input domain.LoginInput, meta domain.ClientMeta) (*domain.AuthResult, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CanSignIn() {
		return nil, ErrAccountDisabled
	}

	return s.IssueToken(ctx, user, meta)
}

func (s *service) IssueToken(ctx context.Context, user *domain.User, meta domain.ClientMeta) (*domain.AuthResult, error) {
	session, err := s.CreateSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.MintToken(user, session)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("[Auth] failed to update last login for user %d: %v", user.ID, err)
	}

	return &domain.AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *service) CreateSession(ctx context.Context, userID int64, meta domain.ClientMeta) (*domain.Session, error) {
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Device:    optional(meta.Device),
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
		ExpiresAt: s.now().Add(s.cfg.SessionExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *service) MintToken(user *domain.User, session *domain.Session) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.JWTExpiry)

	claims := &Claims{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		IsAdmin:      strconv.FormatBool(user.IsAdmin),
		IsGoogleUser: strconv.FormatBool(user.IsGoogleUser()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        session.Token,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.RegisteredClaims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) ValidateSession(ctx context.Context, sessionToken string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Valid(s.now()) {
		return nil, ErrSessionInvalid
	}

	if err := s.sessionRepo.Touch(ctx, sessionToken); err != nil {
		log.Printf("[Auth] failed to touch session for user %d: %v", session.UserID, err)
	}
	return session, nil
}

func (s *service) Authenticate(ctx context.Context, tokenString string) (*domain.Identity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	session, err := s.ValidateSession(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.ID {
		return nil, ErrInvalidToken
	}

	return claims.Identity(), nil
}

func (s *service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
