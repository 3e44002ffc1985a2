package domain

import (
	"time"
)

type LogoutReason string

const (
	LogoutManual        LogoutReason = "Manual"
	LogoutExpired       LogoutReason = "Expired"
	LogoutAdminForced   LogoutReason = "AdminForced"
	LogoutSecurityReset LogoutReason = "SecurityReset"
)

func (r LogoutReason) IsValid() bool {
	switch r {
	case LogoutManual, LogoutExpired, LogoutAdminForced, LogoutSecurityReset:
		return true
	default:
		return false
	}
}

type Session struct {
	ID             int64         `json:"id" db:"session_id"`
	Token          string        `json:"-" db:"session_token"`
	UserID         int64         `json:"user_id" db:"user_id"`
	Device         *string       `json:"device,omitempty" db:"device"`
	IPAddress      *string       `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent      *string       `json:"user_agent,omitempty" db:"user_agent"`
	LoginAt        time.Time     `json:"login_at" db:"login_at"`
	LastActivityAt time.Time     `json:"last_activity_at" db:"last_activity_at"`
	ExpiresAt      time.Time     `json:"expires_at" db:"expires_at"`
	LogoutAt       *time.Time    `json:"logout_at,omitempty" db:"logout_at"`
	LogoutReason   *LogoutReason `json:"logout_reason,omitempty" db:"logout_reason"`
	IsActive       bool          `json:"is_active" db:"is_active"`
}

// Valid reports whether the session can still authenticate requests at now.
func (s *Session) Valid(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}

type SessionStats struct {
	TotalLogins    int64      `json:"total_logins" db:"total_logins"`
	ActiveSessions int64      `json:"active_sessions" db:"active_sessions"`
	UniqueDevices  int64      `json:"unique_devices" db:"unique_devices"`
	UniqueIPs      int64      `json:"unique_ips" db:"unique_ips"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

type OAuthToken struct {
	UserID       int64      `db:"user_id"`
	Provider     string     `db:"provider"`
	AccessToken  string     `db:"access_token"`
	RefreshToken *string    `db:"refresh_token"`
	TokenType    string     `db:"token_type"`
	ExpiresAt    *time.Time `db:"expires_at"`
	Scope        *string    `db:"scope"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// GoogleUserInfo is the userinfo payload returned by the provider.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type AuthResult struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	IsNewUser bool      `json:"is_new_user"`
}

// OAuthResult never carries a Go error: failures are described by ErrorCode and
// ErrorDescription, copied verbatim from the provider when it supplied them.
type OAuthResult struct {
	Success          bool        `json:"success"`
	Auth             *AuthResult `json:"auth,omitempty"`
	ErrorCode        string      `json:"error_code,omitempty"`
	ErrorDescription string      `json:"error_description,omitempty"`
}

func OAuthFailure(code, description string) *OAuthResult {
	return &OAuthResult{Success: false, ErrorCode: code, ErrorDescription: description}
}
