package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/repository"
)

// PreferenceUsecase stores and retrieves per-scope client preferences as raw
// JSON values.
type PreferenceUsecase interface {
	All(ctx context.Context, userID string) (map[string]json.RawMessage, error)
	Set(ctx context.Context, userID, key string, value json.RawMessage) error
}

func NewPreferenceUsecase(repo repository.PreferenceRepository) PreferenceUsecase {
	return &preferenceUsecase{repo: repo}
}

type preferenceUsecase struct {
	repo repository.PreferenceRepository
}

func (u *preferenceUsecase) All(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	prefs, err := u.repo.List(ctx, entity.UserScopeOrDefault(userID))
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(prefs))
	for _, p := range prefs {
		out[p.Key] = p.Value
	}
	return out, nil
}

func (u *preferenceUsecase) Set(ctx context.Context, userID, key string, value json.RawMessage) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return entity.ErrInvalidPrefKey
	}
	if len(value) == 0 {
		value = json.RawMessage("null")
	}
	return u.repo.Set(ctx, &entity.Preference{
		UserID: entity.UserScopeOrDefault(userID),
		Key:    key,
		Value:  value,
	})
}
