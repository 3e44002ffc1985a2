package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"newshub/internal/config"
	"newshub/internal/handler"
	"newshub/internal/middleware"
	"newshub/internal/repository"
	"newshub/internal/service"
	"newshub/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(middleware.RequestInfo())
	app.Use(middleware.Identity(services.Auth))

	setupRoutes(app, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	loops := []*worker.Loop{
		worker.New("NewsSync", 10*time.Second, cfg.NewsSyncRecheckInterval, services.NewsSync.Tick),
		worker.New("Trending", 30*time.Second, cfg.TrendingRetryInterval, services.Trending.Tick),
		worker.New("SessionSweep", time.Minute, cfg.SessionSweepInterval, func(ctx context.Context) (time.Duration, error) {
			if n := services.OAuth.CleanupExpiredSessions(ctx); n > 0 {
				log.Printf("[SessionSweep] expired %d sessions", n)
			}
			return cfg.SessionSweepInterval, nil
		}),
	}
	for _, loop := range loops {
		wg.Add(1)
		go func(l *worker.Loop) {
			defer wg.Done()
			l.Run(ctx)
		}(loop)
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

func setupRoutes(app *fiber.App, h *handler.Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/google", h.Auth.GoogleLogin)
	auth.Get("/google/callback", h.Auth.GoogleCallback)
	auth.Post("/logout", middleware.AuthRequired(), h.Auth.Logout)
	auth.Post("/logout-all", middleware.AuthRequired(), h.Auth.LogoutAll)
	auth.Get("/me", middleware.AuthRequired(), h.Auth.Me)
	auth.Get("/sessions", middleware.AuthRequired(), h.Auth.LoginHistory)
	auth.Get("/sessions/stats", middleware.AuthRequired(), h.Auth.SessionStats)
	auth.Put("/password", middleware.AuthRequired(), h.Auth.ChangePassword)

	news := v1.Group("/news")
	news.Get("/", h.News.List)
	news.Get("/search", h.News.Search)
	news.Get("/trending", h.News.Trending)
	news.Get("/feed", middleware.AuthRequired(), h.News.Feed)
	news.Get("/saved", middleware.AuthRequired(), h.News.ListSaved)
	news.Post("/", middleware.AuthRequired(), h.News.Create)
	news.Post("/images", middleware.AuthRequired(), h.Media.UploadImage)
	news.Get("/:id", h.News.Get)
	news.Put("/:id", middleware.AuthRequired(), h.News.Update)
	news.Delete("/:id", middleware.AuthRequired(), h.News.Delete)
	news.Post("/:id/like", middleware.AuthRequired(), h.News.ToggleLike)
	news.Post("/:id/save", middleware.AuthRequired(), h.News.ToggleSave)
	news.Post("/:id/repost", middleware.AuthRequired(), h.News.Repost)
	news.Post("/:id/report", middleware.AuthRequired(), h.News.Report)

	news.Get("/:id/comments", h.Comment.List)
	news.Post("/:id/comments", middleware.AuthRequired(), h.Comment.Create)
	comments := v1.Group("/comments", middleware.AuthRequired())
	comments.Put("/:commentId", h.Comment.Update)
	comments.Delete("/:commentId", h.Comment.Delete)
	comments.Post("/:commentId/like", h.Comment.ToggleLike)

	users := v1.Group("/users")
	users.Get("/search", h.User.Search)
	users.Put("/me", middleware.AuthRequired(), h.User.UpdateProfile)
	users.Get("/me/blocked", middleware.AuthRequired(), h.User.ListBlocked)
	users.Get("/:id", h.User.GetProfile)
	users.Get("/:id/articles", h.News.ListByAuthor)
	users.Get("/:id/reposts", h.User.ListReposts)
	users.Get("/:id/followers", h.User.ListFollowers)
	users.Get("/:id/following", h.User.ListFollowing)
	users.Post("/:id/follow", middleware.AuthRequired(), h.User.ToggleFollow)
	users.Post("/:id/block", middleware.AuthRequired(), h.User.Block)
	users.Delete("/:id/block", middleware.AuthRequired(), h.User.Unblock)

	notifications := v1.Group("/notifications", middleware.AuthRequired())
	notifications.Get("/", h.Notification.List)
	notifications.Get("/summary", h.Notification.GetSummary)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)

	admin := v1.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
	admin.Get("/stats", h.Admin.GetStats)
	admin.Get("/users", h.Admin.ListUsers)
	admin.Post("/users/:id/ban", h.Admin.BanUser)
	admin.Post("/users/:id/unban", h.Admin.UnbanUser)
	admin.Delete("/news/:id", h.Admin.DeleteArticle)
	admin.Post("/messages", h.Admin.SendMessage)
	admin.Post("/broadcast", h.Admin.Broadcast)
	admin.Get("/reports", h.Admin.ListReports)
	admin.Put("/reports/:id", h.Admin.ResolveReport)
	admin.Get("/settings/news-sync", h.Admin.GetNewsSync)
	admin.Put("/settings/news-sync", h.Admin.SetNewsSync)
	admin.Get("/audit-logs", h.Admin.ListAuditLogs)
}
