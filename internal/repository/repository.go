package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Follow       FollowRepository
	Block        BlockRepository
	Article      ArticleRepository
	Comment      CommentRepository
	Repost       RepostRepository
	Report       ReportRepository
	Notification NotificationRepository
	Session      SessionRepository
	OAuthToken   OAuthTokenRepository
	Setting      SettingRepository
	Trending     TrendingRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Follow:       NewFollowRepository(db),
		Block:        NewBlockRepository(db),
		Article:      NewArticleRepository(db),
		Comment:      NewCommentRepository(db),
		Repost:       NewRepostRepository(db),
		Report:       NewReportRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
		OAuthToken:   NewOAuthTokenRepository(db),
		Setting:      NewSettingRepository(db),
		Trending:     NewTrendingRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
