package domain

import "time"

type TrendingTopic struct {
	Topic        string    `json:"topic" db:"topic"`
	Score        float64   `json:"score" db:"score"`
	ArticleCount int64     `json:"article_count" db:"article_count"`
	CalculatedAt time.Time `json:"calculated_at" db:"calculated_at"`
}

type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	BannedUsers      int64 `json:"banned_users"`
	TotalArticles    int64 `json:"total_articles"`
	ExternalArticles int64 `json:"external_articles"`
	PendingReports   int64 `json:"pending_reports"`
	NewsSyncEnabled  bool  `json:"news_sync_enabled"`
}
