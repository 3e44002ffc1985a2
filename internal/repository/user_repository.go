package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	LinkGoogleAccount(ctx context.Context, userID int64, googleID string, picture *string) error
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	SetBanned(ctx context.Context, userID int64, banned bool, reason *string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Search(ctx context.Context, query string, params domain.PaginationParams) ([]domain.UserSummary, int64, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error)
	ListActiveIDs(ctx context.Context) ([]int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountBanned(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, name, email, password_hash, google_id, profile_image, bio,
	is_admin, is_active, is_banned, ban_reason, created_at, last_login_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, google_id, profile_image, bio, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.GoogleID,
		user.ProfileImage, user.Bio, user.IsAdmin, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	err := r.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `user_id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getOne(ctx, `google_id = $1`, googleID)
}

func (r *userRepository) LinkGoogleAccount(ctx context.Context, userID int64, googleID string, picture *string) error {
	query := `
		UPDATE users
		SET google_id = $2, profile_image = COALESCE(profile_image, $3)
		WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, googleID, picture)
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, bio = $3, profile_image = $4, password_hash = $5
		WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Bio, user.ProfileImage, user.PasswordHash)
	return err
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE user_id = $1`, userID)
	return err
}

func (r *userRepository) SetBanned(ctx context.Context, userID int64, banned bool, reason *string) error {
	query := `UPDATE users SET is_banned = $2, ban_reason = $3 WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, banned, reason)
	return err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) Search(ctx context.Context, q string, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	params.Validate()
	pattern := "%" + q + "%"

	var total int64
	countQuery := `SELECT COUNT(*) FROM users WHERE is_active AND NOT is_banned AND name ILIKE $1`
	if err := r.db.GetContext(ctx, &total, countQuery, pattern); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT user_id, name, profile_image FROM users
		WHERE is_active AND NOT is_banned AND name ILIKE $1
		ORDER BY name
		LIMIT $2 OFFSET $3`

	var users []domain.UserSummary
	err := r.db.SelectContext(ctx, &users, query, pattern, params.PageSize, params.Offset())
	return users, total, err
}

func (r *userRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var users []domain.User
	err := r.db.SelectContext(ctx, &users, query, params.PageSize, params.Offset())
	return users, total, err
}

func (r *userRepository) ListActiveIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	query := `SELECT user_id FROM users WHERE is_active AND NOT is_banned ORDER BY user_id`
	err := r.db.SelectContext(ctx, &ids, query)
	return ids, err
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}

func (r *userRepository) CountBanned(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE is_banned`)
	return count, err
}
