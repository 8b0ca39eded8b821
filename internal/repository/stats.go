package repository

import (
	"context"

	"github.com/michalkratky/slovicka/internal/entity"
)

// StatsRepository persists per-word and per-day practice statistics.
type StatsRepository interface {
	// GetWordStat returns the stat row for (wordID, direction), or a zero-value
	// stat when the pair has never been practiced.
	GetWordStat(ctx context.Context, wordID int64, direction entity.Direction) (*entity.WordStat, error)
	// UpsertWordStat atomically accumulates one answer into the pair's counters
	// and refreshes last_seen.
	UpsertWordStat(ctx context.Context, wordID int64, direction entity.Direction, delta entity.StatDelta) error
	ListUserWordStats(ctx context.Context) ([]*entity.UserWordStat, error)

	// GetSessionStat returns the day's aggregate, or a zero-value stat when no
	// answer has been recorded for the date yet.
	GetSessionStat(ctx context.Context, date string) (*entity.SessionStat, error)
	// UpsertSessionStat applies one answer to the date's row, creating it when
	// absent. The update-or-insert runs in a single transaction.
	UpsertSessionStat(ctx context.Context, date string, delta entity.SessionDelta) error
	ListSessionHistory(ctx context.Context, days int) ([]*entity.SessionStat, error)
	// ConsolidateSessionStats collapses duplicate same-date rows into one summed
	// row per date and returns the affected dates. The pass is transactional.
	ConsolidateSessionStats(ctx context.Context) ([]*entity.SessionStat, error)
}
