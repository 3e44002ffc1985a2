package user

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/auth"
	"newshub/internal/service/email"
	"newshub/internal/service/helpers"
	"newshub/internal/service/notification"
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput, meta domain.ClientMeta) (*domain.AuthResult, error)
	GetProfile(ctx context.Context, viewerID, userID int64) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, input domain.UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, input domain.ChangePasswordInput) error
	ToggleFollow(ctx context.Context, followerID, followedID int64) (*domain.ToggleResult, error)
	ListFollowers(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error)
	ListFollowing(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error)
	Search(ctx context.Context, query string, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error)
}

type service struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	blockRepo   repository.BlockRepository
	articleRepo repository.ArticleRepository
	sessionRepo repository.SessionRepository
	authSvc     auth.Service
	notifSvc    notification.Service
	emailSvc    email.Service
}

func NewService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	blockRepo repository.BlockRepository,
	articleRepo repository.ArticleRepository,
	sessionRepo repository.SessionRepository,
	authSvc auth.Service,
	notifSvc notification.Service,
	emailSvc email.Service,
) Service {
	return &service{
		userRepo:    userRepo,
		followRepo:  followRepo,
		blockRepo:   blockRepo,
		articleRepo: articleRepo,
		sessionRepo: sessionRepo,
		authSvc:     authSvc,
		notifSvc:    notifSvc,
		emailSvc:    emailSvc,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput, meta domain.ClientMeta) (*domain.AuthResult, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewBusinessRuleError("email is already registered")
	}

	hash, err := s.authSvc.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        emailAddr,
		PasswordHash: &hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailSvc != nil {
		go func(to, name string) {
			if err := s.emailSvc.SendWelcomeEmail(context.Background(), to, name); err != nil {
				log.Printf("[User] failed to send welcome email to user %d: %v", user.ID, err)
			}
		}(user.Email, user.Name)
	}

	result, err := s.authSvc.IssueToken(ctx, user, meta)
	if err != nil {
		return nil, err
	}
	result.IsNewUser = true
	return result, nil
}

// GetProfile loads userID as seen by viewerID. A zero viewerID is an anonymous viewer.
func (s *service) GetProfile(ctx context.Context, viewerID, userID int64) (*domain.UserProfile, error) {
	user, err := helpers.RequireUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	profile := &domain.UserProfile{User: *user}

	if profile.FollowersCount, err = s.followRepo.CountFollowers(ctx, userID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.followRepo.CountFollowing(ctx, userID); err != nil {
		return nil, err
	}
	_, profile.ArticlesCount, err = s.articleRepo.List(ctx, domain.ArticleFilter{AuthorID: &userID}, domain.PaginationParams{Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}

	if viewerID != 0 && viewerID != userID {
		if profile.IsFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, userID); err != nil {
			return nil, err
		}
		if profile.IsBlocked, err = s.blockRepo.HasBlocked(ctx, viewerID, userID); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, input domain.UpdateProfileInput) (*domain.User, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	user, err := helpers.RequireUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.ProfileImage != nil {
		user.ProfileImage = input.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces a local password and ends every session of the user,
// including the caller's.
func (s *service) ChangePassword(ctx context.Context, userID int64, input domain.ChangePasswordInput) error {
	if err := domain.Validate(input); err != nil {
		return err
	}

	user, err := helpers.RequireUser(ctx, s.userRepo, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil {
		return domain.NewBusinessRuleError("this account signs in with Google and has no password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.NewValidationError("current password is incorrect")
	}

	hash, err := s.authSvc.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = &hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	ended, err := s.sessionRepo.EndAllForUser(ctx, user.ID, domain.LogoutSecurityReset)
	if err != nil {
		log.Printf("[User] failed to end sessions after password change for user %d: %v", user.ID, err)
	} else {
		log.Printf("[User] ended %d sessions for user %d after password change", ended, user.ID)
	}

	notification.BestEffort("password changed alert", func() (int64, error) {
		return s.notifSvc.CreateSecurityAlert(ctx, user.ID, "Password Changed",
			"Your password was changed and all sessions were signed out.")
	})

	return nil
}

func (s *service) ToggleFollow(ctx context.Context, followerID, followedID int64) (*domain.ToggleResult, error) {
	if followerID == followedID {
		return nil, domain.NewBusinessRuleError("you cannot follow yourself")
	}

	if _, err := helpers.RequireUser(ctx, s.userRepo, followedID); err != nil {
		return nil, err
	}

	blocked, err := s.blockRepo.IsBlockedEither(ctx, followerID, followedID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, domain.NewBusinessRuleError("you cannot follow this user")
	}

	active, err := s.followRepo.Toggle(ctx, followerID, followedID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle follow: %w", err)
	}

	count, err := s.followRepo.CountFollowers(ctx, followedID)
	if err != nil {
		log.Printf("[UserService] failed to count followers of user %d: %v", followedID, err)
		count = 0
	}

	if active {
		notification.BestEffort("follow", func() (int64, error) {
			name, err := helpers.ActorName(ctx, s.userRepo, followerID)
			if err != nil {
				return notification.NotCreated, err
			}
			return s.notifSvc.CreateFollow(ctx, followerID, followedID, name)
		})
	}

	return domain.NewToggleResult(domain.ToggleFollow, active, count), nil
}

func (s *service) ListFollowers(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error) {
	params.Validate()
	users, total, err := s.followRepo.ListFollowers(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.UserSummary]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) ListFollowing(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error) {
	params.Validate()
	users, total, err := s.followRepo.ListFollowing(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.UserSummary]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) Search(ctx context.Context, query string, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return domain.PaginatedResponse[domain.UserSummary]{}, domain.NewValidationError("search query must be at least 2 characters")
	}

	params.Validate()
	users, total, err := s.userRepo.Search(ctx, query, params)
	if err != nil {
		return domain.PaginatedResponse[domain.UserSummary]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}
