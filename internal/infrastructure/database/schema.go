package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/michalkratky/slovicka/internal/entity"
)

// Migrate creates the schema when absent. Statements are idempotent so the
// call is safe on every startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements(db.DriverName()) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func schemaStatements(driver string) []string {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == DriverPostgres {
		pk = "BIGSERIAL PRIMARY KEY"
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS words (
			id %s,
			slovak TEXT NOT NULL,
			english TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'basic',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (slovak, english)
		)`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS synonyms (
			id %s,
			word_id INTEGER NOT NULL REFERENCES words (id) ON DELETE CASCADE,
			language TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`, pk),
		`CREATE INDEX IF NOT EXISTS idx_synonyms_word ON synonyms (word_id, language)`,
		`CREATE TABLE IF NOT EXISTS word_stats (
			word_id INTEGER NOT NULL REFERENCES words (id) ON DELETE CASCADE,
			direction TEXT NOT NULL,
			correct_count INTEGER NOT NULL DEFAULT 0,
			incorrect_count INTEGER NOT NULL DEFAULT 0,
			last_seen TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (word_id, direction)
		)`,
		// session_date deliberately carries no unique constraint: concurrent
		// writers may race a same-day insert, and the consolidation pass
		// repairs the duplicates afterwards.
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS session_stats (
			id %s,
			session_date TEXT NOT NULL,
			correct_answers INTEGER NOT NULL DEFAULT 0,
			incorrect_answers INTEGER NOT NULL DEFAULT 0,
			total_time_minutes INTEGER NOT NULL DEFAULT 0,
			words_practiced INTEGER NOT NULL DEFAULT 0
		)`, pk),
		`CREATE INDEX IF NOT EXISTS idx_session_stats_date ON session_stats (session_date)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			user_id TEXT NOT NULL,
			pref_key TEXT NOT NULL,
			pref_value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, pref_key)
		)`,
	}
}

// defaultPreferences are seeded for fresh installs so the client starts with
// a sensible drill setup.
var defaultPreferences = map[string]string{
	"translationDirections": `{"slovakToEnglish":true,"englishToSlovak":false}`,
	"enabledGroups":         `{"basic":true}`,
}

// SeedDefaults inserts the default preference rows, leaving existing values
// untouched.
func SeedDefaults(ctx context.Context, db *sqlx.DB) error {
	query := db.Rebind(`INSERT INTO preferences (user_id, pref_key, pref_value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, pref_key) DO NOTHING`)
	for key, value := range defaultPreferences {
		if _, err := db.ExecContext(ctx, query, entity.DefaultUserScope, key, value); err != nil {
			return fmt.Errorf("seed preference %s: %w", key, err)
		}
	}
	return nil
}
