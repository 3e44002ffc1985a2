package domain

import (
	"time"
)

type Comment struct {
	ID         int64      `json:"id" db:"comment_id"`
	ArticleID  int64      `json:"article_id" db:"article_id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	AuthorName string     `json:"author_name" db:"author_name"`
	Content    string     `json:"content" db:"content"`
	LikesCount int64      `json:"likes_count" db:"likes_count"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"-" db:"deleted_at"`
}

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type UpdateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type Repost struct {
	ID        int64     `json:"id" db:"repost_id"`
	ArticleID int64     `json:"article_id" db:"article_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Note      *string   `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type RepostInput struct {
	Note *string `json:"note,omitempty" validate:"omitempty,max=280"`
}

type UserBlock struct {
	BlockerID int64     `json:"blocker_id" db:"blocker_id"`
	BlockedID int64     `json:"blocked_id" db:"blocked_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
