package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
)

const SettingNewsSyncEnabled = "news_sync_enabled"

// SettingRepository stores runtime toggles that background loops re-read on every tick.
type SettingRepository interface {
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}

type settingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw, `SELECT value FROM system_settings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultValue, nil
	}
	if err != nil {
		return defaultValue, err
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue, nil
	}
	return parsed, nil
}

func (r *settingRepository) SetBool(ctx context.Context, key string, value bool) error {
	query := `
		INSERT INTO system_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query, key, strconv.FormatBool(value))
	return err
}
