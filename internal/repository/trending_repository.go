package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type TrendingRepository interface {
	ReplaceAll(ctx context.Context, topics []domain.TrendingTopic) error
	List(ctx context.Context, limit int) ([]domain.TrendingTopic, error)
}

type trendingRepository struct {
	db *sqlx.DB
}

func NewTrendingRepository(db *sqlx.DB) TrendingRepository {
	return &trendingRepository{db: db}
}

func (r *trendingRepository) ReplaceAll(ctx context.Context, topics []domain.TrendingTopic) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trending_topics`); err != nil {
		return err
	}

	if len(topics) > 0 {
		query := `
			INSERT INTO trending_topics (topic, score, article_count, calculated_at)
			VALUES (:topic, :score, :article_count, :calculated_at)`
		if _, err := tx.NamedExecContext(ctx, query, topics); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *trendingRepository) List(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	query := `SELECT * FROM trending_topics ORDER BY score DESC LIMIT $1`
	var topics []domain.TrendingTopic
	err := r.db.SelectContext(ctx, &topics, query, limit)
	return topics, err
}
