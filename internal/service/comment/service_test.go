package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	repomocks "newshub/internal/repository/mocks"
	"newshub/internal/service/comment"
	"newshub/internal/service/mocks"
)

type fixture struct {
	svc         comment.Service
	commentRepo *repomocks.CommentRepository
	articleRepo *repomocks.ArticleRepository
	userRepo    *repomocks.UserRepository
	blockRepo   *repomocks.BlockRepository
	notifSvc    *mocks.NotificationService
}

func newFixture() *fixture {
	f := &fixture{
		commentRepo: new(repomocks.CommentRepository),
		articleRepo: new(repomocks.ArticleRepository),
		userRepo:    new(repomocks.UserRepository),
		blockRepo:   new(repomocks.BlockRepository),
		notifSvc:    new(mocks.NotificationService),
	}
	f.svc = comment.NewService(f.commentRepo, f.articleRepo, f.userRepo, f.blockRepo, f.notifSvc, nil, 15*time.Minute)
	return f
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	owner := int64(9)
	article := &domain.Article{ID: 7, AuthorID: &owner}

	t.Run("Notifies the article owner", func(t *testing.T) {
		f := newFixture()
		f.articleRepo.On("GetByID", ctx, int64(7)).Return(article, nil).Once()
		f.blockRepo.On("IsBlockedEither", ctx, int64(42), int64(9)).Return(false, nil).Once()
		f.commentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Comment")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Comment).ID = 55
		}).Return(nil).Once()
		f.userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Name: "Alice"}, nil).Once()
		f.notifSvc.On("CreateComment", ctx, int64(7), int64(55), int64(42), int64(9), "Alice").Return(int64(1), nil).Once()

		c, err := f.svc.Create(ctx, 7, 42, domain.CreateCommentInput{Content: "  Great read  "})

		require.NoError(t, err)
		assert.Equal(t, "Great read", c.Content)
		assert.Equal(t, "Alice", c.AuthorName)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Blocked users cannot comment", func(t *testing.T) {
		f := newFixture()
		f.articleRepo.On("GetByID", ctx, int64(7)).Return(article, nil).Once()
		f.blockRepo.On("IsBlockedEither", ctx, int64(42), int64(9)).Return(true, nil).Once()

		_, err := f.svc.Create(ctx, 7, 42, domain.CreateCommentInput{Content: "hello"})

		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
		f.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Empty content", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, 7, 42, domain.CreateCommentInput{})

		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestCommentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Within the edit window", func(t *testing.T) {
		f := newFixture()
		existing := &domain.Comment{ID: 5, ArticleID: 7, UserID: 42, Content: "old", CreatedAt: time.Now().Add(-5 * time.Minute)}
		f.commentRepo.On("GetByID", ctx, int64(5)).Return(existing, nil).Once()
		f.commentRepo.On("Update", ctx, existing).Return(nil).Once()

		c, err := f.svc.Update(ctx, 42, 5, domain.UpdateCommentInput{Content: "new"})

		require.NoError(t, err)
		assert.Equal(t, "new", c.Content)
	})

	t.Run("After the edit window", func(t *testing.T) {
		f := newFixture()
		existing := &domain.Comment{ID: 5, ArticleID: 7, UserID: 42, CreatedAt: time.Now().Add(-20 * time.Minute)}
		f.commentRepo.On("GetByID", ctx, int64(5)).Return(existing, nil).Once()

		_, err := f.svc.Update(ctx, 42, 5, domain.UpdateCommentInput{Content: "new"})

		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
		f.commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Someone else's comment", func(t *testing.T) {
		f := newFixture()
		existing := &domain.Comment{ID: 5, UserID: 9, CreatedAt: time.Now()}
		f.commentRepo.On("GetByID", ctx, int64(5)).Return(existing, nil).Once()

		_, err := f.svc.Update(ctx, 42, 5, domain.UpdateCommentInput{Content: "new"})

		assert.True(t, domain.IsKind(err, domain.KindAuthorization))
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	existing := &domain.Comment{ID: 5, ArticleID: 7, UserID: 9}

	t.Run("Admin can delete", func(t *testing.T) {
		f := newFixture()
		f.commentRepo.On("GetByID", ctx, int64(5)).Return(existing, nil).Once()
		f.commentRepo.On("Delete", ctx, existing).Return(nil).Once()

		err := f.svc.Delete(ctx, domain.Identity{UserID: 1, IsAdmin: true}, 5)

		require.NoError(t, err)
		f.commentRepo.AssertExpectations(t)
	})

	t.Run("Missing comment", func(t *testing.T) {
		f := newFixture()
		f.commentRepo.On("GetByID", ctx, int64(6)).Return(nil, nil).Once()

		err := f.svc.Delete(ctx, domain.Identity{UserID: 1}, 6)

		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestCommentService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	existing := &domain.Comment{ID: 5, ArticleID: 7, UserID: 9}
	f.commentRepo.On("GetByID", ctx, int64(5)).Return(existing, nil).Twice()
	f.commentRepo.On("ToggleLike", ctx, int64(5), int64(42)).Return(true, int64(1), nil).Once()
	f.commentRepo.On("ToggleLike", ctx, int64(5), int64(42)).Return(false, int64(0), nil).Once()
	f.userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Name: "Alice"}, nil).Once()
	f.notifSvc.On("CreateCommentLike", ctx, int64(5), int64(7), int64(42), int64(9), "Alice").Return(int64(1), nil).Once()

	first, err := f.svc.ToggleLike(ctx, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, "liked", first.Status)

	second, err := f.svc.ToggleLike(ctx, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, "unliked", second.Status)

	f.notifSvc.AssertNumberOfCalls(t, "CreateCommentLike", 1)
}
