package repository

import (
	"context"

	"github.com/michalkratky/slovicka/internal/entity"
)

// PreferenceRepository stores per-scope client preferences.
type PreferenceRepository interface {
	List(ctx context.Context, userID string) ([]*entity.Preference, error)
	Set(ctx context.Context, pref *entity.Preference) error
}
