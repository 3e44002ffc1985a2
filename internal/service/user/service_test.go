package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"newshub/internal/domain"
	repomocks "newshub/internal/repository/mocks"
	"newshub/internal/service/mocks"
	"newshub/internal/service/user"
)

type fixture struct {
	svc         user.Service
	userRepo    *repomocks.UserRepository
	followRepo  *repomocks.FollowRepository
	blockRepo   *repomocks.BlockRepository
	articleRepo *repomocks.ArticleRepository
	sessionRepo *repomocks.SessionRepository
	authSvc     *mocks.AuthService
	notifSvc    *mocks.NotificationService
}

func newFixture() *fixture {
	f := &fixture{
		userRepo:    new(repomocks.UserRepository),
		followRepo:  new(repomocks.FollowRepository),
		blockRepo:   new(repomocks.BlockRepository),
		articleRepo: new(repomocks.ArticleRepository),
		sessionRepo: new(repomocks.SessionRepository),
		authSvc:     new(mocks.AuthService),
		notifSvc:    new(mocks.NotificationService),
	}
	f.svc = user.NewService(f.userRepo, f.followRepo, f.blockRepo, f.articleRepo, f.sessionRepo, f.authSvc, f.notifSvc, nil)
	return f
}

func TestUserService_ToggleFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("Self-follow is rejected before the engine is invoked", func(t *testing.T) {
		f := newFixture()

		result, err := f.svc.ToggleFollow(ctx, 42, 42)

		assert.Nil(t, result)
		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
		f.followRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
		f.notifSvc.AssertNotCalled(t, "CreateFollow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Follow then unfollow", func(t *testing.T) {
		f := newFixture()
		f.userRepo.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9, Name: "Bob"}, nil)
		f.userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Name: "Alice"}, nil)
		f.blockRepo.On("IsBlockedEither", ctx, int64(42), int64(9)).Return(false, nil)
		f.followRepo.On("Toggle", ctx, int64(42), int64(9)).Return(true, nil).Once()
		f.followRepo.On("Toggle", ctx, int64(42), int64(9)).Return(false, nil).Once()
		f.followRepo.On("CountFollowers", ctx, int64(9)).Return(int64(1), nil).Once()
		f.followRepo.On("CountFollowers", ctx, int64(9)).Return(int64(0), nil).Once()
		f.notifSvc.On("CreateFollow", ctx, int64(42), int64(9), "Alice").Return(int64(11), nil).Once()

		first, err := f.svc.ToggleFollow(ctx, 42, 9)
		require.NoError(t, err)
		assert.Equal(t, "followed", first.Status)
		assert.Equal(t, int64(1), first.Count)

		second, err := f.svc.ToggleFollow(ctx, 42, 9)
		require.NoError(t, err)
		assert.Equal(t, "unfollowed", second.Status)

		f.notifSvc.AssertNumberOfCalls(t, "CreateFollow", 1)
	})

	t.Run("Blocked pair", func(t *testing.T) {
		f := newFixture()
		f.userRepo.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9}, nil)
		f.blockRepo.On("IsBlockedEither", ctx, int64(42), int64(9)).Return(true, nil)

		_, err := f.svc.ToggleFollow(ctx, 42, 9)

		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
		f.followRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Count failure after a saved follow still notifies", func(t *testing.T) {
		f := newFixture()
		f.userRepo.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9, Name: "Bob"}, nil)
		f.userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Name: "Alice"}, nil)
		f.blockRepo.On("IsBlockedEither", ctx, int64(42), int64(9)).Return(false, nil)
		f.followRepo.On("Toggle", ctx, int64(42), int64(9)).Return(true, nil)
		f.followRepo.On("CountFollowers", ctx, int64(9)).Return(int64(0), errors.New("connection reset"))
		f.notifSvc.On("CreateFollow", ctx, int64(42), int64(9), "Alice").Return(int64(11), nil)

		result, err := f.svc.ToggleFollow(ctx, 42, 9)

		require.NoError(t, err)
		assert.Equal(t, "followed", result.Status)
		assert.Equal(t, int64(0), result.Count)
		f.notifSvc.AssertNumberOfCalls(t, "CreateFollow", 1)
	})
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	meta := domain.ClientMeta{IPAddress: "10.0.0.1"}

	t.Run("Duplicate email", func(t *testing.T) {
		f := newFixture()
		f.userRepo.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil)

		_, err := f.svc.Register(ctx, domain.RegisterInput{Name: "Alice", Email: "Alice@Example.com", Password: "password123"}, meta)

		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
	})

	t.Run("Creates the user and signs in", func(t *testing.T) {
		f := newFixture()
		f.userRepo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		f.authSvc.On("HashPassword", "password123").Return("hashed", nil)
		f.userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		}).Return(nil)
		f.authSvc.On("IssueToken", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 42 && *u.PasswordHash == "hashed" && u.IsActive
		}), meta).Return(&domain.AuthResult{Token: "jwt", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		result, err := f.svc.Register(ctx, domain.RegisterInput{Name: " Alice ", Email: "alice@example.com", Password: "password123"}, meta)

		require.NoError(t, err)
		assert.Equal(t, "jwt", result.Token)
		assert.True(t, result.IsNewUser)
	})

	t.Run("Invalid input", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Register(ctx, domain.RegisterInput{Name: "A", Email: "nope", Password: "short"}, meta)

		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Ends sessions with a security reset", func(t *testing.T) {
		f := newFixture()
		current := string(hash)
		f.userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, PasswordHash: &current}, nil)
		f.authSvc.On("HashPassword", "new-password").Return("new-hash", nil)
		f.userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		f.sessionRepo.On("EndAllForUser", ctx, int64(42), domain.LogoutSecurityReset).Return(int64(2), nil).Once()
		f.notifSvc.On("CreateSecurityAlert", ctx, int64(42), "Password Changed", mock.Anything).Return(int64(5), nil).Once()

		err := f.svc.ChangePassword(ctx, 42, domain.ChangePasswordInput{CurrentPassword: "old-password", NewPassword: "new-password"})

		require.NoError(t, err)
		f.sessionRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Wrong current password", func(t *testing.T) {
		f := newFixture()
		current := string(hash)
		f.userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, PasswordHash: &current}, nil)

		err := f.svc.ChangePassword(ctx, 42, domain.ChangePasswordInput{CurrentPassword: "guess", NewPassword: "new-password"})

		assert.True(t, domain.IsKind(err, domain.KindValidation))
		f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	authorID := int64(9)
	f.userRepo.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9, Name: "Bob"}, nil)
	f.followRepo.On("CountFollowers", ctx, int64(9)).Return(int64(3), nil)
	f.followRepo.On("CountFollowing", ctx, int64(9)).Return(int64(4), nil)
	f.articleRepo.On("List", ctx, domain.ArticleFilter{AuthorID: &authorID}, domain.PaginationParams{Page: 1, PageSize: 1}).
		Return([]domain.Article{{ID: 1}}, int64(12), nil)
	f.followRepo.On("IsFollowing", ctx, int64(42), int64(9)).Return(true, nil)
	f.blockRepo.On("HasBlocked", ctx, int64(42), int64(9)).Return(false, nil)

	profile, err := f.svc.GetProfile(ctx, 42, 9)

	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.FollowersCount)
	assert.Equal(t, int64(4), profile.FollowingCount)
	assert.Equal(t, int64(12), profile.ArticlesCount)
	assert.True(t, profile.IsFollowing)
	assert.False(t, profile.IsBlocked)
}
