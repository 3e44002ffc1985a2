package service

import (
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"newshub/internal/config"
	"newshub/internal/repository"
	"newshub/internal/service/admin"
	"newshub/internal/service/audit"
	"newshub/internal/service/auth"
	"newshub/internal/service/block"
	"newshub/internal/service/comment"
	"newshub/internal/service/dashboard"
	"newshub/internal/service/email"
	"newshub/internal/service/media"
	"newshub/internal/service/news"
	"newshub/internal/service/newssync"
	"newshub/internal/service/notification"
	"newshub/internal/service/oauth"
	"newshub/internal/service/repost"
	"newshub/internal/service/trending"
	"newshub/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	OAuth        oauth.Service
	User         user.Service
	Block        block.Service
	News         news.Service
	Comment      comment.Service
	Repost       repost.Service
	Media        media.Service
	Email        email.Service
	Notification notification.Service
	Audit        audit.Service
	Dashboard    dashboard.Service
	Admin        admin.Service
	NewsSync     newssync.Service
	Trending     trending.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		emailService = email.NewService(cfg)
	} else {
		log.Println("[Services] RESEND_API_KEY not set, outgoing email disabled")
	}

	var mediaService media.Service
	if minioClient != nil {
		mediaService = media.NewService(minioClient, cfg)
	}

	authService := auth.NewService(repos.User, repos.Session, cfg)
	oauthService := oauth.NewService(cfg, repos.User, repos.OAuthToken, repos.Session, authService)
	notificationService := notification.NewService(repos.Notification, repos.Follow, repos.User, emailService, redis)

	auditService := audit.NewService(repos.AuditLog)
	dashboardService := dashboard.NewService(repos.User, repos.Article, repos.Report, repos.Setting, redis)

	userService := user.NewService(repos.User, repos.Follow, repos.Block, repos.Article, repos.Session, authService, notificationService, emailService)
	blockService := block.NewService(repos.Block, repos.Follow, repos.User)
	newsService := news.NewService(repos.Article, repos.User, repos.Report, notificationService, mediaService)
	commentService := comment.NewService(repos.Comment, repos.Article, repos.User, repos.Block, notificationService, redis, cfg.CommentEditWindow)
	repostService := repost.NewService(repos.Repost, repos.Article, repos.User, notificationService)

	adminService := admin.NewService(
		repos.User,
		repos.Article,
		repos.Report,
		repos.Setting,
		notificationService,
		oauthService,
		emailService,
		auditService,
		dashboardService,
	)

	newsSyncService := newssync.NewService(
		newssync.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.NewsAPIRatePerSecond),
		repos.Article,
		repos.Setting,
		newssync.Intervals{
			Run:     cfg.NewsSyncInterval,
			Recheck: cfg.NewsSyncRecheckInterval,
			Retry:   cfg.NewsSyncRecheckInterval,
		},
	)
	trendingService := trending.NewService(repos.Article, repos.Trending, redis, cfg.TrendingInterval, cfg.TrendingRetryInterval)

	return &Services{
		Auth:         authService,
		OAuth:        oauthService,
		User:         userService,
		Block:        blockService,
		News:         newsService,
		Comment:      commentService,
		Repost:       repostService,
		Media:        mediaService,
		Email:        emailService,
		Notification: notificationService,
		Audit:        auditService,
		Dashboard:    dashboardService,
		Admin:        adminService,
		NewsSync:     newsSyncService,
		Trending:     trendingService,
	}
}
