package handler

import (
	"newshub/internal/config"
	"newshub/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	News         *NewsHandler
	Comment      *CommentHandler
	Media        *MediaHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth, services.OAuth, services.User, cfg),
		User:         NewUserHandler(services.User, services.Block, services.Repost),
		News:         NewNewsHandler(services.News, services.Repost, services.Trending),
		Comment:      NewCommentHandler(services.Comment),
		Media:        NewMediaHandler(services.News),
		Notification: NewNotificationHandler(services.Notification),
		Admin:        NewAdminHandler(services.Admin),
	}
}
