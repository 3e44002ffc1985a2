package domain

import (
	"time"
)

type User struct {
	ID           int64      `json:"id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash *string    `json:"-" db:"password_hash"`
	GoogleID     *string    `json:"-" db:"google_id"`
	ProfileImage *string    `json:"profile_image,omitempty" db:"profile_image"`
	Bio          *string    `json:"bio,omitempty" db:"bio"`
	IsAdmin      bool       `json:"is_admin" db:"is_admin"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	IsBanned     bool       `json:"is_banned" db:"is_banned"`
	BanReason    *string    `json:"ban_reason,omitempty" db:"ban_reason"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

func (u *User) IsGoogleUser() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// CanSignIn reports whether the account may open new sessions.
func (u *User) CanSignIn() bool {
	return u.IsActive && !u.IsBanned
}

type UserProfile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	ArticlesCount  int64 `json:"articles_count"`
	IsFollowing    bool  `json:"is_following"`
	IsBlocked      bool  `json:"is_blocked"`
}

type UserSummary struct {
	ID           int64   `json:"id" db:"user_id"`
	Name         string  `json:"name" db:"name"`
	ProfileImage *string `json:"profile_image,omitempty" db:"profile_image"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,url"`
}

// Identity is the caller resolved once per request from the bearer token or cookie.
type Identity struct {
	UserID       int64
	Email        string
	Name         string
	IsAdmin      bool
	IsGoogleUser bool
	SessionToken string
}

// ClientMeta describes where a login came from.
type ClientMeta struct {
	IPAddress string
	UserAgent string
	Device    string
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type BanUserInput struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type ModerationInput struct {
	Reason string `json:"reason" validate:"max=500"`
}
