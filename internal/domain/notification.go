package domain

import (
	"time"
)

type Notification struct {
	ID                int64            `json:"id" db:"notification_id"`
	UserID            int64            `json:"user_id" db:"user_id"`
	Type              NotificationType `json:"type" db:"type"`
	Title             string           `json:"title" db:"title"`
	Message           string           `json:"message" db:"message"`
	RelatedEntityType *string          `json:"related_entity_type,omitempty" db:"related_entity_type"`
	RelatedEntityID   *int64           `json:"related_entity_id,omitempty" db:"related_entity_id"`
	FromUserID        *int64           `json:"from_user_id,omitempty" db:"from_user_id"`
	FromUserName      *string          `json:"from_user_name,omitempty" db:"from_user_name"`
	ActionURL         *string          `json:"action_url,omitempty" db:"action_url"`
	IsRead            bool             `json:"is_read" db:"is_read"`
	ReadAt            *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}

// NotificationRequest is handed to the repository once; the repository assigns identity.
type NotificationRequest struct {
	UserID            int64
	Type              NotificationType
	Title             string
	Message           string
	RelatedEntityType *string
	RelatedEntityID   *int64
	FromUserID        *int64
	ActionURL         *string
}

type NotificationType string

const (
	NotifLike          NotificationType = "Like"
	NotifComment       NotificationType = "Comment"
	NotifFollow        NotificationType = "Follow"
	NotifPostShare     NotificationType = "PostShare"
	NotifNewPost       NotificationType = "NewPost"
	NotifAdminMessage  NotificationType = "AdminMessage"
	NotifSystemUpdate  NotificationType = "SystemUpdate"
	NotifSecurityAlert NotificationType = "SecurityAlert"
	NotifCommentLike   NotificationType = "CommentLike"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifLike, NotifComment, NotifFollow, NotifPostShare, NotifNewPost,
		NotifAdminMessage, NotifSystemUpdate, NotifSecurityAlert, NotifCommentLike:
		return true
	default:
		return false
	}
}

const (
	EntityPost    = "Post"
	EntityComment = "Comment"
	EntityUser    = "User"
	EntityAdmin   = "Admin"
	EntitySystem  = "System"
)

type NotificationSummary struct {
	UnreadCount  int64                      `json:"unread_count"`
	TotalCount   int64                      `json:"total_count"`
	UnreadByType map[NotificationType]int64 `json:"unread_by_type"`
	Recent       []Notification             `json:"recent"`
}

type TypeCount struct {
	Type  NotificationType `db:"type"`
	Count int64            `db:"count"`
}

type BroadcastInput struct {
	Title     string  `json:"title" validate:"required,min=1,max=150"`
	Message   string  `json:"message" validate:"required,min=1,max=1000"`
	ActionURL *string `json:"action_url,omitempty"`
}

type AdminMessageInput struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	Title   string `json:"title" validate:"required,min=1,max=150"`
	Message string `json:"message" validate:"required,min=1,max=1000"`
}
