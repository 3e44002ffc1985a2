package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type OAuthTokenRepository interface {
	Save(ctx context.Context, token *domain.OAuthToken) error
}

type oauthTokenRepository struct {
	db *sqlx.DB
}

func NewOAuthTokenRepository(db *sqlx.DB) OAuthTokenRepository {
	return &oauthTokenRepository{db: db}
}

// Save upserts on (user_id, provider). A missing refresh token keeps the stored one,
// since providers only return it on the first consent.
func (r *oauthTokenRepository) Save(ctx context.Context, token *domain.OAuthToken) error {
	query := `
		INSERT INTO oauth_tokens (user_id, provider, access_token, refresh_token, token_type, expires_at, scope)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, oauth_tokens.refresh_token),
			token_type = EXCLUDED.token_type,
			expires_at = EXCLUDED.expires_at,
			scope = EXCLUDED.scope,
			updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		token.UserID, token.Provider, token.AccessToken, token.RefreshToken,
		token.TokenType, token.ExpiresAt, token.Scope,
	).Scan(&token.UpdatedAt)
}
