package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/repository"
)

type preferenceRow struct {
	UserID string `db:"user_id"`
	Key    string `db:"pref_key"`
	Value  string `db:"pref_value"`
}

type preferenceRepository struct {
	db    *sqlx.DB
	clock func() time.Time
}

// NewPreferenceRepository returns a PreferenceRepository backed by db.
func NewPreferenceRepository(db *sqlx.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db, clock: time.Now}
}

func (r *preferenceRepository) List(ctx context.Context, userID string) ([]*entity.Preference, error) {
	var rows []preferenceRow
	err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind(`SELECT user_id, pref_key, pref_value FROM preferences WHERE user_id = ? ORDER BY pref_key`),
		userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	prefs := make([]*entity.Preference, len(rows))
	for i, row := range rows {
		prefs[i] = &entity.Preference{
			UserID: row.UserID,
			Key:    row.Key,
			Value:  json.RawMessage(row.Value),
		}
	}
	return prefs, nil
}

func (r *preferenceRepository) Set(ctx context.Context, pref *entity.Preference) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO preferences (user_id, pref_key, pref_value, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, pref_key) DO UPDATE SET
				pref_value = excluded.pref_value,
				updated_at = excluded.updated_at`),
		pref.UserID, pref.Key, string(pref.Value), r.clock())
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}
