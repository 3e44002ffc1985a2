package block

import (
	"context"
	"fmt"

	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/helpers"
)

type Service interface {
	Block(ctx context.Context, blockerID, blockedID int64) error
	Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error)
	ListBlocked(ctx context.Context, blockerID int64) ([]domain.UserBlock, error)
	IsBlocked(ctx context.Context, a, b int64) (bool, error)
}

type service struct {
	blockRepo  repository.BlockRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewService(blockRepo repository.BlockRepository, followRepo repository.FollowRepository, userRepo repository.UserRepository) Service {
	return &service{
		blockRepo:  blockRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Block records the block and drops follow edges in both directions.
func (s *service) Block(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID == blockedID {
		return domain.NewBusinessRuleError("you cannot block yourself")
	}
	if _, err := helpers.RequireUser(ctx, s.userRepo, blockedID); err != nil {
		return err
	}

	if err := s.blockRepo.Block(ctx, blockerID, blockedID); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	if err := s.followRepo.RemoveBetween(ctx, blockerID, blockedID); err != nil {
		return fmt.Errorf("failed to remove follows: %w", err)
	}
	return nil
}

func (s *service) Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	return s.blockRepo.Unblock(ctx, blockerID, blockedID)
}

func (s *service) ListBlocked(ctx context.Context, blockerID int64) ([]domain.UserBlock, error) {
	blocks, err := s.blockRepo.ListBlocked(ctx, blockerID)
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []domain.UserBlock{}
	}
	return blocks, nil
}

func (s *service) IsBlocked(ctx context.Context, a, b int64) (bool, error) {
	return s.blockRepo.IsBlockedEither(ctx, a, b)
}
