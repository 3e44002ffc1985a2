package domain

import (
	"time"

	"github.com/lib/pq"
)

type Article struct {
	ID            int64          `json:"id" db:"article_id"`
	Title         string         `json:"title" db:"title"`
	Content       string         `json:"content" db:"content"`
	ImageURL      *string        `json:"image_url,omitempty" db:"image_url"`
	SourceURL     *string        `json:"source_url,omitempty" db:"source_url"`
	SourceName    *string        `json:"source_name,omitempty" db:"source_name"`
	Category      string         `json:"category" db:"category"`
	Tags          pq.StringArray `json:"tags" db:"tags"`
	AuthorID      *int64         `json:"author_id,omitempty" db:"author_id"`
	AuthorName    *string        `json:"author_name,omitempty" db:"author_name"`
	IsExternal    bool           `json:"is_external" db:"is_external"`
	LikesCount    int64          `json:"likes_count" db:"likes_count"`
	CommentsCount int64          `json:"comments_count" db:"comments_count"`
	RepostsCount  int64          `json:"reposts_count" db:"reposts_count"`
	PublishedAt   time.Time      `json:"published_at" db:"published_at"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time     `json:"-" db:"deleted_at"`
}

// OwnedBy reports whether userID authored the article. Synced articles have no owner.
func (a *Article) OwnedBy(userID int64) bool {
	return a.AuthorID != nil && *a.AuthorID == userID
}

type CreateArticleInput struct {
	Title     string   `json:"title" validate:"required,min=3,max=200"`
	Content   string   `json:"content" validate:"required,min=10"`
	ImageURL  *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	SourceURL *string  `json:"source_url,omitempty" validate:"omitempty,url"`
	Category  string   `json:"category" validate:"required,max=50"`
	Tags      []string `json:"tags" validate:"max=10,dive,min=1,max=30"`
}

type UpdateArticleInput struct {
	Title    *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content  *string  `json:"content,omitempty" validate:"omitempty,min=10"`
	ImageURL *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Category *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
}

type ArticleFilter struct {
	Category string
	Query    string
	AuthorID *int64
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID         int64        `json:"id" db:"report_id"`
	ArticleID  int64        `json:"article_id" db:"article_id"`
	ReporterID int64        `json:"reporter_id" db:"reporter_id"`
	Reason     string       `json:"reason" db:"reason"`
	Status     ReportStatus `json:"status" db:"status"`
	ReviewedBy *int64       `json:"reviewed_by,omitempty" db:"reviewed_by"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty" db:"reviewed_at"`
}

type CreateReportInput struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

type ResolveReportInput struct {
	Status        ReportStatus `json:"status" validate:"required,oneof=resolved dismissed"`
	DeleteArticle bool         `json:"delete_article"`
}

type UploadedImage struct {
	URL         string `json:"url"`
	StoragePath string `json:"-"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	MimeType    string `json:"mime_type"`
}
