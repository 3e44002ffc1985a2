package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret     string
	JWTExpiry     time.Duration
	SessionExpiry time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleAuthURL      string
	GoogleTokenURL     string
	GoogleUserInfoURL  string

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	Domain       string

	NewsAPIURL              string
	NewsAPIKey              string
	NewsAPIRatePerSecond    float64
	NewsSyncInterval        time.Duration
	NewsSyncRecheckInterval time.Duration

	TrendingInterval      time.Duration
	TrendingRetryInterval time.Duration

	SessionSweepInterval time.Duration
	CommentEditWindow    time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiry:     getDurationEnv("JWT_EXPIRY", 30*24*time.Hour),
		SessionExpiry: getDurationEnv("SESSION_EXPIRY", 24*time.Hour),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		GoogleAuthURL:      getEnv("GOOGLE_AUTH_URL", ""),
		GoogleTokenURL:     getEnv("GOOGLE_TOKEN_URL", ""),
		GoogleUserInfoURL:  getEnv("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo"),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "newshub-images"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:       getEnv("DOMAIN", "localhost:5173"),

		NewsAPIURL:              getEnv("NEWS_API_URL", "https://newsapi.org/v2/top-headlines"),
		NewsAPIKey:              getEnv("NEWS_API_KEY", ""),
		NewsAPIRatePerSecond:    getFloatEnv("NEWS_API_RATE_PER_SECOND", 1),
		NewsSyncInterval:        getDurationEnv("NEWS_SYNC_INTERVAL", 24*time.Hour),
		NewsSyncRecheckInterval: getDurationEnv("NEWS_SYNC_RECHECK_INTERVAL", 30*time.Minute),

		TrendingInterval:      getDurationEnv("TRENDING_INTERVAL", 30*time.Minute),
		TrendingRetryInterval: getDurationEnv("TRENDING_RETRY_INTERVAL", 5*time.Minute),

		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_INTERVAL", time.Hour),
		CommentEditWindow:    getDurationEnv("COMMENT_EDIT_WINDOW", 15*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
