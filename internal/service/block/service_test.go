package block_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	repomocks "newshub/internal/repository/mocks"
	"newshub/internal/service/block"
)

func TestBlockService_Block(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes follows both ways", func(t *testing.T) {
		blockRepo := new(repomocks.BlockRepository)
		followRepo := new(repomocks.FollowRepository)
		userRepo := new(repomocks.UserRepository)
		svc := block.NewService(blockRepo, followRepo, userRepo)

		userRepo.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9}, nil)
		blockRepo.On("Block", ctx, int64(42), int64(9)).Return(nil).Once()
		followRepo.On("RemoveBetween", ctx, int64(42), int64(9)).Return(nil).Once()

		require.NoError(t, svc.Block(ctx, 42, 9))
		blockRepo.AssertExpectations(t)
		followRepo.AssertExpectations(t)
	})

	t.Run("Cannot block yourself", func(t *testing.T) {
		blockRepo := new(repomocks.BlockRepository)
		svc := block.NewService(blockRepo, new(repomocks.FollowRepository), new(repomocks.UserRepository))

		err := svc.Block(ctx, 42, 42)

		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
		blockRepo.AssertNotCalled(t, "Block", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown user", func(t *testing.T) {
		userRepo := new(repomocks.UserRepository)
		svc := block.NewService(new(repomocks.BlockRepository), new(repomocks.FollowRepository), userRepo)
		userRepo.On("GetByID", ctx, int64(77)).Return(nil, nil)

		err := svc.Block(ctx, 42, 77)

		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestBlockService_ListBlocked(t *testing.T) {
	ctx := context.Background()
	blockRepo := new(repomocks.BlockRepository)
	svc := block.NewService(blockRepo, new(repomocks.FollowRepository), new(repomocks.UserRepository))
	blockRepo.On("ListBlocked", ctx, int64(42)).Return([]domain.UserBlock(nil), nil)

	blocks, err := svc.ListBlocked(ctx, 42)

	require.NoError(t, err)
	assert.NotNil(t, blocks)
	assert.Empty(t, blocks)
}
