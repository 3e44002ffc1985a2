package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records a moderation action taken by an admin.
type AuditLog struct {
	ID         int64           `json:"id" db:"audit_id"`
	AdminID    int64           `json:"admin_id" db:"admin_id"`
	AdminName  *string         `json:"admin_name,omitempty" db:"admin_name"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   int64           `json:"entity_id" db:"entity_id"`
	Details    json.RawMessage `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

const (
	AuditBanUser       = "BAN_USER"
	AuditUnbanUser     = "UNBAN_USER"
	AuditDeleteArticle = "DELETE_ARTICLE"
	AuditBroadcast     = "BROADCAST"
	AuditResolveReport = "RESOLVE_REPORT"
	AuditToggleSync    = "TOGGLE_NEWS_SYNC"
	AuditDirectMessage = "ADMIN_MESSAGE"
)
