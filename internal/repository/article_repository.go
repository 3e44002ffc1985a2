package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ArticleFilter, params domain.PaginationParams) ([]domain.Article, int64, error)
	Feed(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Article, int64, error)
	ToggleLike(ctx context.Context, articleID, userID int64) (bool, int64, error)
	ToggleSave(ctx context.Context, articleID, userID int64) (bool, error)
	ListSaved(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Article, int64, error)
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.Article, error)
	CountAll(ctx context.Context) (int64, error)
	CountExternal(ctx context.Context) (int64, error)
}

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

const articleSelect = `
	SELECT a.article_id, a.title, a.content, a.image_url, a.source_url, a.source_name,
		a.category, a.tags, a.author_id, u.name AS author_name, a.is_external,
		a.likes_count, a.comments_count, a.reposts_count,
		a.published_at, a.created_at, a.updated_at, a.deleted_at
	FROM articles a
	LEFT JOIN users u ON u.user_id = a.author_id`

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (title, content, image_url, source_url, source_name, category, tags, author_id, is_external, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING article_id, created_at, updated_at`

	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now().UTC()
	}

	return r.db.QueryRowxContext(ctx, query,
		article.Title, article.Content, article.ImageURL, article.SourceURL, article.SourceName,
		article.Category, article.Tags, article.AuthorID, article.IsExternal, article.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	query := articleSelect + ` WHERE a.article_id = $1 AND a.deleted_at IS NULL`

	err := r.db.GetContext(ctx, &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	query := `
		UPDATE articles
		SET title = $2, content = $3, image_url = $4, category = $5, tags = $6, updated_at = NOW()
		WHERE article_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		article.ID, article.Title, article.Content, article.ImageURL, article.Category, article.Tags,
	).Scan(&article.UpdatedAt)
}

func (r *articleRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE articles SET deleted_at = NOW() WHERE article_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *articleRepository) List(ctx context.Context, filter domain.ArticleFilter, params domain.PaginationParams) ([]domain.Article, int64, error) {
	params.Validate()

	conds := []string{"a.deleted_at IS NULL"}
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("a.category = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conds = append(conds, fmt.Sprintf("(a.title ILIKE $%d OR a.content ILIKE $%d)", len(args), len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, fmt.Sprintf("a.author_id = $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM articles a`+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s%s ORDER BY a.published_at DESC LIMIT $%d OFFSET $%d",
		articleSelect, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles, query, args...)
	return articles, total, err
}

func (r *articleRepository) Feed(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Article, int64, error) {
	params.Validate()

	where := `
		WHERE a.deleted_at IS NULL AND (
			a.author_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)
			OR a.article_id IN (
				SELECT rp.article_id FROM reposts rp
				WHERE rp.user_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)
			)
		)
		AND (a.author_id IS NULL OR a.author_id NOT IN (
			SELECT blocked_id FROM user_blocks WHERE blocker_id = $1
			UNION SELECT blocker_id FROM user_blocks WHERE blocked_id = $1
		))`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM articles a`+where, userID); err != nil {
		return nil, 0, err
	}

	query := articleSelect + where + ` ORDER BY a.published_at DESC LIMIT $2 OFFSET $3`
	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles, query, userID, params.PageSize, params.Offset())
	return articles, total, err
}

func (r *articleRepository) ToggleLike(ctx context.Context, articleID, userID int64) (bool, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	active, err := toggleRow(ctx, tx, "article_likes", "article_id", articleID, userID)
	if err != nil {
		return false, 0, err
	}

	delta := -1
	if active {
		delta = 1
	}
	var count int64
	err = tx.QueryRowxContext(ctx, `
		UPDATE articles SET likes_count = GREATEST(likes_count + $2, 0)
		WHERE article_id = $1
		RETURNING likes_count`, articleID, delta).Scan(&count)
	if err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return active, count, nil
}

func (r *articleRepository) ToggleSave(ctx context.Context, articleID, userID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	active, err := toggleRow(ctx, tx, "saved_articles", "article_id", articleID, userID)
	if err != nil {
		return false, err
	}
	return active, tx.Commit()
}

func (r *articleRepository) ListSaved(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Article, int64, error) {
	params.Validate()

	where := ` WHERE a.deleted_at IS NULL AND a.article_id IN (SELECT article_id FROM saved_articles WHERE user_id = $1)`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM articles a`+where, userID); err != nil {
		return nil, 0, err
	}

	query := articleSelect + where + ` ORDER BY a.published_at DESC LIMIT $2 OFFSET $3`
	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles, query, userID, params.PageSize, params.Offset())
	return articles, total, err
}

func (r *articleRepository) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM articles WHERE source_url = $1)`, sourceURL)
	return exists, err
}

func (r *articleRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Article, error) {
	query := articleSelect + ` WHERE a.deleted_at IS NULL AND a.published_at >= $1 ORDER BY a.published_at DESC`
	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles, query, since)
	return articles, err
}

func (r *articleRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM articles WHERE deleted_at IS NULL`)
	return count, err
}

func (r *articleRepository) CountExternal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM articles WHERE deleted_at IS NULL AND is_external`)
	return count, err
}

// toggleRow deletes the (entity, user) row if present, inserts it otherwise,
// and reports whether the row exists afterwards.
func toggleRow(ctx context.Context, tx *sqlx.Tx, table, entityColumn string, entityID, userID int64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, table, entityColumn), entityID, userID)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if removed > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s, user_id) VALUES ($1, $2)`, table, entityColumn), entityID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}
