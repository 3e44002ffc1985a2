package helpers

import (
	"context"
	"fmt"

	"newshub/internal/domain"
	"newshub/internal/repository"
)

// ActorName looks up the display name used in notification text.
func ActorName(ctx context.Context, userRepo repository.UserRepository, userID int64) (string, error) {
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if user == nil {
		return "", fmt.Errorf("user %d not found", userID)
	}
	return user.Name, nil
}

// RequireUser loads a user or returns a NotFound error.
func RequireUser(ctx context.Context, userRepo repository.UserRepository, userID int64) (*domain.User, error) {
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user %d not found", userID)
	}
	return user, nil
}

// RequireArticle loads an article or returns a NotFound error.
func RequireArticle(ctx context.Context, articleRepo repository.ArticleRepository, articleID int64) (*domain.Article, error) {
	article, err := articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.NewNotFoundError("article %d not found", articleID)
	}
	return article, nil
}
