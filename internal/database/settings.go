package database

import (
	"context"
	"database/sql"
)

// GetSetting retrieves a settings value by key.
// Returns sql.ErrNoRows if the key doesn't exist.
func (d *Database) GetSetting(ctx context.Context, key string) (string, error) {
	done := observeQuery("get_setting")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	done(err)
	if err == sql.ErrNoRows {
		return "", sql.ErrNoRows
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting sets a settings key-value pair.
func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	done := observeQuery("set_setting")

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	done(err)
	return err
}
